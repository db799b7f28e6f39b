package handler

import (
	"time"

	"github.com/hirelane/ats/internal/core/ports"
)

func toCandidateResponses(views []ports.CandidateView) []candidateResponse {
	out := make([]candidateResponse, 0, len(views))
	for _, v := range views {
		out = append(out, candidateResponse{
			Candidate:     v.Candidate,
			PositionTitle: v.PositionTitle,
			ClientID:      v.ClientID,
			ClientName:    v.ClientName,
		})
	}
	return out
}

func toInvoiceResponses(views []ports.InvoiceView) []invoiceResponse {
	out := make([]invoiceResponse, 0, len(views))
	for _, v := range views {
		out = append(out, invoiceResponse{
			Invoice:    v.Invoice,
			Label:      v.Label,
			ClientName: v.ClientName,
		})
	}
	return out
}

func toInboxResponses(entries []ports.InboxEntry) []inboxEntryResponse {
	out := make([]inboxEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, inboxEntryResponse{
			PeerID:   e.PeerID,
			PeerName: e.PeerName,
			Received: e.Received,
			Last:     e.Last,
		})
	}
	return out
}

// parseDueDate accepts either a calendar date or a full RFC 3339 timestamp.
// Calendar dates are read as midnight UTC.
func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
