package domain

import "time"

// CandidateStatus is the screening state of a candidate.
type CandidateStatus string

const (
	CandidatePending  CandidateStatus = "pending"
	CandidateSelected CandidateStatus = "selected"
	CandidateRejected CandidateStatus = "rejected"
	CandidateOnHold   CandidateStatus = "on-hold"
)

// CandidateStatuses lists every candidate status in display order.
var CandidateStatuses = []CandidateStatus{
	CandidatePending,
	CandidateSelected,
	CandidateRejected,
	CandidateOnHold,
}

// Candidate statuses form a complete graph: any status may follow any other.
var candidateTransitions = map[CandidateStatus][]CandidateStatus{
	CandidatePending:  {CandidateSelected, CandidateRejected, CandidateOnHold},
	CandidateSelected: {CandidatePending, CandidateRejected, CandidateOnHold},
	CandidateRejected: {CandidatePending, CandidateSelected, CandidateOnHold},
	CandidateOnHold:   {CandidatePending, CandidateSelected, CandidateRejected},
}

// Valid reports whether s is a known candidate status.
func (s CandidateStatus) Valid() bool {
	_, ok := candidateTransitions[s]
	return ok
}

// CanTransitionTo reports whether a candidate may move from s to next.
func (s CandidateStatus) CanTransitionTo(next CandidateStatus) bool {
	for _, allowed := range candidateTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Candidate is a person applying for a Position. Resume is a file name only.
type Candidate struct {
	ID             string          `json:"id" bson:"_id"`
	Name           string          `json:"name" bson:"name"`
	Email          string          `json:"email" bson:"email"`
	Phone          string          `json:"phone,omitempty" bson:"phone,omitempty"`
	PositionID     string          `json:"position_id" bson:"position_id"`
	Status         CandidateStatus `json:"status" bson:"status"`
	Resume         string          `json:"resume,omitempty" bson:"resume,omitempty"`
	UploadedBy     string          `json:"uploaded_by" bson:"uploaded_by"`
	UploadedAt     time.Time       `json:"uploaded_at" bson:"uploaded_at"`
	InterviewNotes string          `json:"interview_notes,omitempty" bson:"interview_notes,omitempty"`
}
