package model

import "github.com/amandanordqvist/datingapp/internal/domain/enums"

// Message is one entry in a conversation's ordered message list.
type Message struct {
	ID       string       `json:"id"`
	Sender   enums.Sender `json:"sender"`
	Text     string       `json:"text"`
	MediaURL string       `json:"mediaUrl,omitempty"`
	Read     bool         `json:"read"`
	Time     string       `json:"time"`
}
