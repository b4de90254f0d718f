package models

import (
	"time"
)

// MessageStatus tracks the handling state of a contact message.
type MessageStatus string

const (
	StatusUnread  MessageStatus = "unread"
	StatusRead    MessageStatus = "read"
	StatusReplied MessageStatus = "replied"
)

// ValidMessageStatus returns true if s is one of the known statuses.
func ValidMessageStatus(s string) bool {
	switch MessageStatus(s) {
	case StatusUnread, StatusRead, StatusReplied:
		return true
	}
	return false
}

// ContactMessage represents a message submitted through the public
// contact form. Messages are never deleted, only marked read/replied.
type ContactMessage struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

// NewContactMessage creates a new unread ContactMessage.
func NewContactMessage(name, email, subject, message string) *ContactMessage {
	return &ContactMessage{
		Name:      name,
		Email:     email,
		Subject:   subject,
		Message:   message,
		Status:    StatusUnread,
		CreatedAt: time.Now(),
	}
}
