package model

import (
	"time"

	"github.com/amandanordqvist/datingapp/internal/domain/enums"
)

// SwipeDecision is one committed swipe. The per-session decision log is
// append-only; records are never mutated.
type SwipeDecision struct {
	ProfileID string         `json:"profile_id"`
	Action    enums.Decision `json:"action"`
	CreatedAt time.Time      `json:"created_at"`
}
