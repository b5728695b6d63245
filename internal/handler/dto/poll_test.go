package dto

import (
	"encoding/json"
	"testing"

	"github.com/pulsehub/pulsehub/internal/model"
)

func TestVoteResponseIsNotEnveloped(t *testing.T) {
	data, err := json.Marshal(VoteResponse{
		PollID:   "poll-1",
		OptionID: 2,
		Options:  []model.Option{{ID: 1, Text: "Red"}, {ID: 2, Text: "Blue", Votes: 1}},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"pollId", "optionId", "options"} {
		if _, ok := body[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}
	for _, key := range []string{"status", "result"} {
		if _, ok := body[key]; ok {
			t.Errorf("unexpected envelope key %q", key)
		}
	}
}
