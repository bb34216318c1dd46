package models

import "time"

const (
	// MaxMessageLength is the maximum number of characters in a message.
	MaxMessageLength = 140
	// DefaultListLimit bounds author timelines and the home feed.
	DefaultListLimit = 100
)

// Message represents a message row in the database
type Message struct {
	ID        int64     `json:"id" db:"id"`                 // Primary key
	Text      string    `json:"text" db:"text"`             // Message body, at most MaxMessageLength characters
	Timestamp time.Time `json:"timestamp" db:"timestamp"`   // Creation time
	AccountID int64     `json:"account_id" db:"account_id"` // Owning account
}

// PostInput holds the fields accepted when posting a message.
type PostInput struct {
	Text string `json:"text"`
}
