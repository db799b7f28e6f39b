// Package aggregate derives dashboard statistics from entity collections.
//
// Every function is total: empty or nil inputs produce zero values. Callers
// pass collections that were already scoped for an actor.
package aggregate

import (
	"time"

	"github.com/hirelane/ats/internal/core/domain"
)

// PositionCounts counts positions by status.
type PositionCounts struct {
	Open   int `json:"open"`
	Closed int `json:"closed"`
	Total  int `json:"total"`
}

// CandidateCounts counts candidates by status.
type CandidateCounts struct {
	Pending  int `json:"pending"`
	Selected int `json:"selected"`
	Rejected int `json:"rejected"`
	OnHold   int `json:"on_hold"`
	Total    int `json:"total"`
}

// Revenue sums invoice amounts by status. Overdue is a subset of Pending.
type Revenue struct {
	Total        float64 `json:"total"`
	Paid         float64 `json:"paid"`
	Pending      float64 `json:"pending"`
	Overdue      float64 `json:"overdue"`
	OverdueCount int     `json:"overdue_count"`
}

// ClientRollup is the per-client row of the analytics report.
type ClientRollup struct {
	ClientID      string  `json:"client_id"`
	ClientName    string  `json:"client_name"`
	Active        bool    `json:"active"`
	Positions     int     `json:"positions"`
	OpenPositions int     `json:"open_positions"`
	Candidates    int     `json:"candidates"`
	Selected      int     `json:"selected"`
	Revenue       float64 `json:"revenue"`
}

func CountPositions(positions []domain.Position) PositionCounts {
	var c PositionCounts
	for _, p := range positions {
		switch p.Status {
		case domain.PositionOpen:
			c.Open++
		case domain.PositionClosed:
			c.Closed++
		}
		c.Total++
	}
	return c
}

func CountCandidates(candidates []domain.Candidate) CandidateCounts {
	var c CandidateCounts
	for _, cand := range candidates {
		c.add(cand.Status)
	}
	return c
}

func (c *CandidateCounts) add(s domain.CandidateStatus) {
	switch s {
	case domain.CandidatePending:
		c.Pending++
	case domain.CandidateSelected:
		c.Selected++
	case domain.CandidateRejected:
		c.Rejected++
	case domain.CandidateOnHold:
		c.OnHold++
	}
	c.Total++
}

// CandidatesByPosition groups candidate counts by position id.
func CandidatesByPosition(candidates []domain.Candidate) map[string]CandidateCounts {
	out := make(map[string]CandidateCounts)
	for _, cand := range candidates {
		c := out[cand.PositionID]
		c.add(cand.Status)
		out[cand.PositionID] = c
	}
	return out
}

// CandidatesByClient groups candidate counts by the client owning each
// candidate's position. Candidates whose position is not in positions are
// skipped.
func CandidatesByClient(positions []domain.Position, candidates []domain.Candidate) map[string]CandidateCounts {
	owner := make(map[string]string, len(positions))
	for _, p := range positions {
		owner[p.ID] = p.ClientID
	}
	out := make(map[string]CandidateCounts)
	for _, cand := range candidates {
		clientID, ok := owner[cand.PositionID]
		if !ok {
			continue
		}
		c := out[clientID]
		c.add(cand.Status)
		out[clientID] = c
	}
	return out
}

// SummarizeRevenue sums invoice amounts. now decides which pending invoices
// are overdue.
func SummarizeRevenue(invoices []domain.Invoice, now time.Time) Revenue {
	var r Revenue
	for _, inv := range invoices {
		r.Total += inv.Amount
		switch inv.Status {
		case domain.InvoicePaid:
			r.Paid += inv.Amount
		case domain.InvoicePending:
			r.Pending += inv.Amount
			if inv.IsOverdue(now) {
				r.Overdue += inv.Amount
				r.OverdueCount++
			}
		}
	}
	return r
}

// RollupClients builds one row per client, in client order. Positions are
// attributed through ClientID, candidates through their position, so a
// position whose client is missing is never counted.
func RollupClients(clients []domain.Client, positions []domain.Position, candidates []domain.Candidate, invoices []domain.Invoice) []ClientRollup {
	rows := make([]ClientRollup, 0, len(clients))
	index := make(map[string]int, len(clients))
	for _, c := range clients {
		index[c.ID] = len(rows)
		rows = append(rows, ClientRollup{ClientID: c.ID, ClientName: c.Name, Active: c.Active})
	}

	owner := make(map[string]int, len(positions))
	for _, p := range positions {
		i, ok := index[p.ClientID]
		if !ok {
			continue
		}
		owner[p.ID] = i
		rows[i].Positions++
		if p.Status == domain.PositionOpen {
			rows[i].OpenPositions++
		}
	}

	for _, cand := range candidates {
		i, ok := owner[cand.PositionID]
		if !ok {
			continue
		}
		rows[i].Candidates++
		if cand.Status == domain.CandidateSelected {
			rows[i].Selected++
		}
	}

	for _, inv := range invoices {
		if i, ok := index[inv.ClientID]; ok {
			rows[i].Revenue += inv.Amount
		}
	}
	return rows
}
