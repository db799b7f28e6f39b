package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hirelane/ats/internal/core/aggregate"
	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/service"
	"github.com/hirelane/ats/internal/infrastructure/db/memory"
)

// ReportOptions holds the flags of the report command.
type ReportOptions struct {
	Role string
	ID   string
}

// defaultActorIDs picks the demo account for each role when --id is omitted.
var defaultActorIDs = map[domain.Role]string{
	domain.RoleSuperAdmin: "1",
	domain.RoleUserAdmin:  "2",
	domain.RoleClient:     "c1",
}

// NewReportCommand prints the dashboard summary of the demo dataset as seen
// by one actor.
func NewReportCommand(root *RootOptions) *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard summary for an actor",
		Example: `  ats report
  ats report --as client --id c2 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			role := domain.Role(opts.Role)
			if !role.Valid() {
				return fmt.Errorf("invalid role %q: must be superadmin, useradmin or client", opts.Role)
			}
			id := opts.ID
			if id == "" {
				id = defaultActorIDs[role]
			}

			summary, err := demoSummary(cmd, domain.Actor{Role: role, ID: id}, time.Now().UTC())
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), root.Format, domain.Actor{Role: role, ID: id}, summary)
		},
	}

	cmd.Flags().StringVar(&opts.Role, "as", string(domain.RoleSuperAdmin), "actor role (superadmin|useradmin|client)")
	cmd.Flags().StringVar(&opts.ID, "id", "", "actor id (defaults to the demo account of the role)")

	return cmd
}

func demoSummary(cmd *cobra.Command, actor domain.Actor, now time.Time) (*aggregate.Summary, error) {
	store := memory.NewStore(memory.DemoDataset(now))
	summary, err := service.NewReportService(store, zerolog.Nop()).Summary(cmd.Context(), actor)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return summary, nil
}

func writeSummary(w io.Writer, format string, actor domain.Actor, s *aggregate.Summary) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Report for %s %s\t(generated %s)\n", actor.Role, actor.ID, s.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(tw, "Active user admins:\t%d\n", s.ActiveUserAdmins)
	fmt.Fprintf(tw, "Active clients:\t%d\n", s.ActiveClients)
	fmt.Fprintf(tw, "Positions:\t%d (open %d, closed %d)\n", s.Positions.Total, s.Positions.Open, s.Positions.Closed)
	fmt.Fprintf(tw, "Candidates:\t%d (pending %d, selected %d, rejected %d, on-hold %d)\n",
		s.Candidates.Total, s.Candidates.Pending, s.Candidates.Selected, s.Candidates.Rejected, s.Candidates.OnHold)
	fmt.Fprintf(tw, "Revenue:\t%.2f (paid %.2f, pending %.2f, overdue %.2f)\n",
		s.Revenue.Total, s.Revenue.Paid, s.Revenue.Pending, s.Revenue.Overdue)
	if len(s.Clients) > 0 {
		fmt.Fprintln(tw, "\nCLIENT\tPOSITIONS\tOPEN\tCANDIDATES\tSELECTED\tREVENUE")
		for _, c := range s.Clients {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.2f\n", c.ClientName, c.Positions, c.OpenPositions, c.Candidates, c.Selected, c.Revenue)
		}
	}
	return tw.Flush()
}
