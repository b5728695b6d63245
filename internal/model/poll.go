// Package model defines domain entities for the application.
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Option is one selectable choice within a poll. Options live embedded in the
// poll row as a JSONB array; ID is the 1-based sequence number assigned at
// creation time by array position. Sequence numbers are never renumbered or
// reused, so historical votes stay valid.
type Option struct {
	ID    int    `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

// Poll represents a question with an ordered list of options, owned by a user.
// Option tallies are mutated only by vote casting; polls are never edited
// after creation.
type Poll struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Question  string    `json:"question"`
	Options   []Option  `json:"options"`
	CreatedAt time.Time `json:"createdAt"`
}

// Vote is an immutable fact recording that a voter chose an option of a poll.
// At most one vote per (poll, voter) pair may exist; the storage layer
// enforces this with a unique constraint.
type Vote struct {
	ID        int64     `json:"id"`
	VoterID   string    `json:"voterId"`
	PollID    string    `json:"pollId"`
	OptionID  int       `json:"optionId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TotalVotes returns the sum of all option tallies.
func (p *Poll) TotalVotes() int {
	total := 0
	for _, opt := range p.Options {
		total += opt.Votes
	}
	return total
}

// FindOption returns the option with the given sequence number, or false if
// the poll has no such option.
func (p *Poll) FindOption(optionID int) (Option, bool) {
	for _, opt := range p.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return Option{}, false
}

// DecodeOptions parses the JSONB option document stored in a poll row.
func DecodeOptions(data []byte) ([]Option, error) {
	var opts []Option
	if err := json.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}
	return opts, nil
}

// EncodeOptions serializes an option list for storage in a poll row.
func EncodeOptions(opts []Option) ([]byte, error) {
	data, err := json.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("encode options: %w", err)
	}
	return data, nil
}
