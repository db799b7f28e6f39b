package aggregate

import (
	"time"

	"github.com/hirelane/ats/internal/core/domain"
)

// Summary is the report shown on a dashboard.
type Summary struct {
	GeneratedAt      time.Time       `json:"generated_at"`
	ActiveUserAdmins int             `json:"active_user_admins"`
	ActiveClients    int             `json:"active_clients"`
	Positions        PositionCounts  `json:"positions"`
	Candidates       CandidateCounts `json:"candidates"`
	Revenue          Revenue         `json:"revenue"`
	Clients          []ClientRollup  `json:"clients"`
}

// Summarize computes the full report over an already scoped dataset.
// d.Users may be empty for actors that cannot see staff accounts.
func Summarize(d domain.Dataset, now time.Time) Summary {
	s := Summary{
		GeneratedAt: now,
		Positions:   CountPositions(d.Positions),
		Candidates:  CountCandidates(d.Candidates),
		Revenue:     SummarizeRevenue(d.Invoices, now),
		Clients:     RollupClients(d.Clients, d.Positions, d.Candidates, d.Invoices),
	}
	for _, u := range d.Users {
		if u.Role == domain.RoleUserAdmin && u.Active {
			s.ActiveUserAdmins++
		}
	}
	for _, c := range d.Clients {
		if c.Active {
			s.ActiveClients++
		}
	}
	return s
}
