package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/contactpicker/pkg/settings"
)

type historyEntry struct {
	ContactID         string    `json:"contact_id" yaml:"contact_id" toml:"contact_id"`
	PreviousContactID string    `json:"previous_contact_id,omitempty" yaml:"previous_contact_id,omitempty" toml:"previous_contact_id,omitempty"`
	AssignedAt        time.Time `json:"assigned_at" yaml:"assigned_at" toml:"assigned_at"`
}

type historyReport struct {
	CaseID      string         `json:"case_id" yaml:"case_id" toml:"case_id"`
	Assignments []historyEntry `json:"assignments" yaml:"assignments" toml:"assignments"`
}

func newHistoryCmd(g *globalOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the assignment history of the case",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(output, tableFormats); err != nil {
				return err
			}
			caseID := settings.CaseIDFrom(cmd.Context())
			if caseID == "" {
				return errNoCase
			}

			ctx := cmd.Context()
			st, _, err := g.openDirectory(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			list, err := st.History(ctx, caseID)
			if err != nil {
				return err
			}

			report := historyReport{CaseID: caseID, Assignments: make([]historyEntry, 0, len(list))}
			for _, a := range list {
				report.Assignments = append(report.Assignments, historyEntry{
					ContactID:         a.ContactID,
					PreviousContactID: a.PreviousContactID,
					AssignedAt:        a.AssignedAt.UTC(),
				})
			}

			out := cmd.OutOrStdout()
			switch output {
			case outputTable, outputCSV:
				tbl := grid{headers: []string{"Assigned At", "Contact", "Previous"}}
				for _, e := range report.Assignments {
					tbl.rows = append(tbl.rows, []string{e.AssignedAt.Format(time.RFC3339), e.ContactID, e.PreviousContactID})
				}
				return writeGrid(out, output, tbl)
			default:
				return writeData(out, output, report)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: "+strings.Join(tableFormats, "|"))
	return cmd
}
