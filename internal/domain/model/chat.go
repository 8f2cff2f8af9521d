package model

import (
	"errors"
	"strings"
	"time"
)

// ChatMessage is one entry of a chat's ordered message log.
type ChatMessage struct {
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Chat is a two-party conversation between an employer and a job seeker.
// Delivery is plain request/response; real-time transport is out of scope.
type Chat struct {
	ID             string        `json:"id"              db:"id"`
	ParticipantIDs []string      `json:"participant_ids" db:"participant_ids"`
	Messages       []ChatMessage `json:"messages"        db:"messages"`
	CreatedAt      time.Time     `json:"created_at"      db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"      db:"updated_at"`
}

// HasParticipant reports whether the user takes part in the chat.
func (c *Chat) HasParticipant(userID string) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// StartChatRequest opens a conversation between the caller and one peer.
type StartChatRequest struct {
	PeerID string `json:"peer_id"`
}

// Validate validates the StartChatRequest fields.
func (r *StartChatRequest) Validate() error {
	if strings.TrimSpace(r.PeerID) == "" {
		return errors.New("peer_id is required")
	}
	return nil
}
