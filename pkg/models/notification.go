package models

import "time"

// Notification is an ephemeral reminder emitted by the poller. Notifications
// live in memory for the current process only and are never persisted.
type Notification struct {
	ID        string       `json:"id"`
	TaskID    string       `json:"task_id"`
	Type      string       `json:"type"`
	Title     string       `json:"title"`
	Category  TaskCategory `json:"category"`
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
}

// NotificationList is the inbox payload: most-recent-first notifications and
// the unread counter.
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	Unread        int            `json:"unread"`
}
