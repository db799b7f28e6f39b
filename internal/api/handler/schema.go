package handler

import "github.com/hirelane/ats/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginResponse struct {
	Token string       `json:"token"`
	Actor domain.Actor `json:"actor"`
}

// --- Directory ---

type createUserAdminRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
}

type setUserActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type onboardClientRequest struct {
	Name          string `json:"name"           validate:"required"`
	Email         string `json:"email"          validate:"required"`
	ContactPerson string `json:"contact_person" validate:"required"`
	Phone         string `json:"phone"`
	Username      string `json:"username"       validate:"required"`
	Password      string `json:"password"       validate:"required"`
}

type setClientActiveRequest struct {
	Active  *bool `json:"active" validate:"required"`
	Confirm bool  `json:"confirm"`
}

// --- Positions ---

type createPositionRequest struct {
	ClientID    string `json:"client_id"`
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
}

type updatePositionRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
}

type positionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open closed"`
}

// --- Candidates ---

type uploadCandidateRequest struct {
	Name       string `json:"name"        validate:"required"`
	Email      string `json:"email"       validate:"required"`
	Phone      string `json:"phone"`
	PositionID string `json:"position_id" validate:"required"`
	Resume     string `json:"resume"`
}

type candidateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending selected rejected on-hold"`
	Notes  string `json:"notes"`
}

type candidateNotesRequest struct {
	Notes string `json:"notes"`
}

type candidateResponse struct {
	domain.Candidate
	PositionTitle string `json:"position_title"`
	ClientID      string `json:"client_id"`
	ClientName    string `json:"client_name"`
}

// --- Invoices ---

type generateInvoiceRequest struct {
	ClientID    string  `json:"client_id"    validate:"required"`
	Amount      float64 `json:"amount"       validate:"gte=0"`
	Description string  `json:"description"  validate:"required"`
	ProjectName string  `json:"project_name" validate:"required"`
	// DueDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
	DueDate string `json:"due_date" validate:"required"`
}

type invoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid"`
}

type invoiceResponse struct {
	domain.Invoice
	Label      string `json:"label"`
	ClientName string `json:"client_name"`
}

// --- Chat ---

type sendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

type inboxEntryResponse struct {
	PeerID   string              `json:"peer_id"`
	PeerName string              `json:"peer_name"`
	Received int                 `json:"received"`
	Last     *domain.ChatMessage `json:"last,omitempty"`
}
