package models

import "time"

// Notification is the payload pushed to account holders after a transfer.
type Notification struct {
	AccountID string    `json:"accountId"`
	Message   string    `json:"message"`
	SentAt    time.Time `json:"sentAt"`
}
