package chat

import "time"

// SenderUser marks messages originating from the person seeking support.
const SenderUser = "user"

// Message is one raw user utterance. Immutable once created.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
