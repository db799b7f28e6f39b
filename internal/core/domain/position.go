package domain

import "time"

// PositionStatus is the open/closed state of a job position.
type PositionStatus string

const (
	PositionOpen   PositionStatus = "open"
	PositionClosed PositionStatus = "closed"
)

var positionTransitions = map[PositionStatus][]PositionStatus{
	PositionOpen:   {PositionClosed},
	PositionClosed: {PositionOpen},
}

// Valid reports whether s is a known position status.
func (s PositionStatus) Valid() bool {
	_, ok := positionTransitions[s]
	return ok
}

// CanTransitionTo reports whether a position may move from s to next.
func (s PositionStatus) CanTransitionTo(next PositionStatus) bool {
	for _, allowed := range positionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Toggled returns the opposite status.
func (s PositionStatus) Toggled() PositionStatus {
	if s == PositionOpen {
		return PositionClosed
	}
	return PositionOpen
}

// Position is a job opening owned by a Client.
type Position struct {
	ID          string         `json:"id" bson:"_id"`
	ClientID    string         `json:"client_id" bson:"client_id"`
	Title       string         `json:"title" bson:"title"`
	Description string         `json:"description" bson:"description"`
	Status      PositionStatus `json:"status" bson:"status"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	CreatedBy   string         `json:"created_by" bson:"created_by"`
}
