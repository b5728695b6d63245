package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/pulsehub/pulsehub/internal/auth"
	"github.com/pulsehub/pulsehub/internal/handler/dto"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandler_Hello(t *testing.T) {
	h := New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.Hello(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response["message"] != "Hello from PulseHub!" {
		t.Errorf("unexpected message: %s", response["message"])
	}
}

func TestHandler_NotFound(t *testing.T) {
	h := New()

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	rec := httptest.NewRecorder()

	h.NotFound(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}

	var response dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Code != "NOT_FOUND" {
		t.Errorf("unexpected error code: %s", response.Code)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := New()

	req := httptest.NewRequest(http.MethodPatch, "/polls", nil)
	rec := httptest.NewRecorder()

	h.MethodNotAllowed(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}

// withURLParams injects chi route parameters into a request context.
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestPollHandler_Vote_Unauthenticated(t *testing.T) {
	h := NewPollHandler(nil, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/polls/vote/abc/1", nil)
	rec := httptest.NewRecorder()

	h.Vote(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
}

func TestPollHandler_Vote_NonIntegerOption(t *testing.T) {
	h := NewPollHandler(nil, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/polls/vote/abc/first", nil)
	req = req.WithContext(auth.ContextWithVoter(req.Context(), "user-1"))
	req = withURLParams(req, map[string]string{"pollID": "abc", "optionID": "first"})
	rec := httptest.NewRecorder()

	h.Vote(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}

	var response dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Code != "INVALID_OPTION" {
		t.Errorf("unexpected error code: %s", response.Code)
	}
}

func TestPollHandler_Create_DecodesOptionObjects(t *testing.T) {
	h := NewPollHandler(nil, testLogger())

	body := strings.NewReader(`{"question":"","options":[{"text":"Red"},{"text":"Blue"}]}`)
	req := httptest.NewRequest(http.MethodPost, "/polls", body)
	req = req.WithContext(auth.ContextWithVoter(req.Context(), "user-1"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	// The object-shaped options must decode cleanly; the only rejection
	// left is the blank question.
	var response dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if rec.Code != http.StatusBadRequest || response.Code != "EMPTY_QUESTION" {
		t.Errorf("expected 400 EMPTY_QUESTION, got %d %s", rec.Code, response.Code)
	}
}

func TestPollHandler_Create_FiltersBlankOptionTexts(t *testing.T) {
	h := NewPollHandler(nil, testLogger())

	body := strings.NewReader(`{"question":"Favorite color?","options":[{"text":"Red"},{"text":"   "}]}`)
	req := httptest.NewRequest(http.MethodPost, "/polls", body)
	req = req.WithContext(auth.ContextWithVoter(req.Context(), "user-1"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	var response dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if rec.Code != http.StatusBadRequest || response.Code != "TOO_FEW_OPTIONS" {
		t.Errorf("expected 400 TOO_FEW_OPTIONS, got %d %s", rec.Code, response.Code)
	}
}

func TestPostHandler_Update_InvalidID(t *testing.T) {
	h := NewPostHandler(nil, testLogger())

	req := httptest.NewRequest(http.MethodPut, "/posts/abc", nil)
	req = withURLParams(req, map[string]string{"id": "abc"})
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestTaskHandler_Create_InvalidJSON(t *testing.T) {
	h := NewTaskHandler(nil, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/tasks", nil)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}
