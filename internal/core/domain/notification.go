package domain

import "time"

// NotificationKind classifies outbound messages.
type NotificationKind string

const NotificationRejection NotificationKind = "candidate_rejected"

// Notification is an outbound message addressed to a candidate.
type Notification struct {
	ID          string           `json:"id"`
	Kind        NotificationKind `json:"kind"`
	CandidateID string           `json:"candidate_id"`
	To          string           `json:"to"`
	Subject     string           `json:"subject"`
	Body        string           `json:"body"`
	CreatedAt   time.Time        `json:"created_at"`
}
