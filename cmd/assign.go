package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/contactpicker/internal/directory"
	"github.com/oakwood-commons/contactpicker/pkg/settings"
)

// errNoCase is returned by commands that need a case when none is set.
var errNoCase = errors.New("no case selected: pass --case or set case.default_id")

func newAssignCmd(g *globalOptions) *cobra.Command {
	var contactID string
	cmd := &cobra.Command{
		Use:     "assign",
		Short:   "Assign a contact to the case",
		Example: "  contactpicker assign --case 500-0001 --contact 003-0007",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			caseID := settings.CaseIDFrom(cmd.Context())
			if caseID == "" {
				return errNoCase
			}
			contactID = strings.TrimSpace(contactID)
			if contactID == "" {
				return errors.New("--contact is required")
			}

			ctx := cmd.Context()
			st, svc, err := g.openDirectory(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			msg, err := svc.AssignContactToCase(ctx, directory.Assignment{ContactID: contactID, CaseID: caseID})
			if err != nil {
				return fmt.Errorf("failed to assign contact: %s", directory.MessageOf(err))
			}
			if msg == "" {
				msg = "Contact assigned successfully!"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
			return err
		},
	}
	cmd.Flags().StringVar(&contactID, "contact", "", "contact to assign")
	return cmd
}
