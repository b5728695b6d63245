package dto

import "github.com/pulsehub/pulsehub/internal/model"

// OptionInput is a single poll option as submitted by the client.
type OptionInput struct {
	Text string `json:"text"`
}

// CreatePollRequest represents the request body for creating a poll.
type CreatePollRequest struct {
	Question string        `json:"question"`
	Options  []OptionInput `json:"options"`
}

// VoteResponse represents the result of a recorded vote: which option was
// chosen and the poll's full option list with updated tallies.
type VoteResponse struct {
	PollID   string         `json:"pollId"`
	OptionID int            `json:"optionId"`
	Options  []model.Option `json:"options"`
}
