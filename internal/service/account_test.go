package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pulsehub/pulsehub/internal/auth"
)

func newAccountValidationService() *AccountService {
	sessions := auth.NewSessionManager("test-secret", time.Hour)
	return NewAccountService(nil, sessions)
}

func TestAccountService_Register_InvalidEmail(t *testing.T) {
	svc := newAccountValidationService()

	for _, email := range []string{"", "plain", "no@tld", "two@@at.com", "spaces in@mail.com"} {
		_, err := svc.Register(context.Background(), RegisterInput{
			Email:    email,
			Password: "long-enough-password",
		})
		if !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("Register(%q): expected ErrInvalidEmail, got %v", email, err)
		}
	}
}

func TestAccountService_Register_WeakPassword(t *testing.T) {
	svc := newAccountValidationService()

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "someone@example.com",
		Password: "short",
	})
	if !errors.Is(err, ErrPasswordTooWeak) {
		t.Errorf("expected ErrPasswordTooWeak, got %v", err)
	}
}

func TestAccountService_SessionTTL(t *testing.T) {
	svc := newAccountValidationService()

	if got := svc.SessionTTL(); got != time.Hour {
		t.Errorf("SessionTTL() = %s, want 1h", got)
	}
}
