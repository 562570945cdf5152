package model

import (
	"time"

	"github.com/amandanordqvist/datingapp/internal/domain/rules"
)

// Moment is a time-limited image post. Likes and HasLiked toggle; every
// other field is immutable after creation. JSON tags match the persisted
// collection layout the mobile client reads.
type Moment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserImage string    `json:"userImage"`
	Image     string    `json:"image"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Likes     int       `json:"likes"`
	HasLiked  bool      `json:"hasLiked"`
}

func (m Moment) Expired(now time.Time) bool {
	return rules.Expired(m.ExpiresAt, now)
}
