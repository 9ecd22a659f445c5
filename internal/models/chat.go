package models

// MessageType discriminates chat message payloads.
type MessageType string

// Message kinds. Voice messages carry a duration string in Content.
const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
	MessageVoice MessageType = "voice"
)

// Message is a single chat entry owned by its parent session's list.
// Timestamp is the display string, FullTimestamp the sortable instant
// in unix milliseconds.
type Message struct {
	ID            string      `json:"id"`
	SenderID      string      `json:"sender_id"`
	Type          MessageType `json:"type"`
	Content       string      `json:"content"`
	Timestamp     string      `json:"timestamp"`
	FullTimestamp int64       `json:"full_timestamp"`
	IsMe          bool        `json:"is_me"`
	Read          bool        `json:"read"`
}

// ChatSession is one conversation row in the chat list. The session
// collection is kept ordered descending by LastActive after every send.
// IsEncrypted is a display flag only; no cryptography is attached to it.
type ChatSession struct {
	ID          string `json:"id"`
	User        User   `json:"user"`
	LastMessage string `json:"last_message"`
	Unread      int    `json:"unread"`
	Timestamp   string `json:"timestamp"`
	LastActive  int64  `json:"last_active"`
	IsOnline    bool   `json:"is_online"`
	IsEncrypted bool   `json:"is_encrypted"`
}
