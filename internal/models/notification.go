package models

import (
	"time"
	"unicode/utf8"
)

// PreviewLength is the number of characters shown for a collapsed message.
const PreviewLength = 90

// Notification is a message that was sent to consumers in an area.
type Notification struct {
	ID        string    `json:"id" yaml:"id" validate:"required"`
	Title     string    `json:"title" yaml:"title" validate:"required"`
	Message   string    `json:"message" yaml:"message"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp" validate:"required"`
	Status    Status    `json:"status" yaml:"status" validate:"required,oneof=online outage maintenance warning"`
	SentTo    int       `json:"sent_to" yaml:"sent_to" validate:"gte=0"`
	Area      string    `json:"area" yaml:"area"`
	Priority  Priority  `json:"priority" yaml:"priority" validate:"required,oneof=high medium low"`
}

// Preview returns the message truncated to PreviewLength characters,
// with a trailing ellipsis when it was cut.
func (n *Notification) Preview() string {
	if utf8.RuneCountInString(n.Message) <= PreviewLength {
		return n.Message
	}
	runes := []rune(n.Message)
	return string(runes[:PreviewLength]) + "..."
}
