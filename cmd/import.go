package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/contactpicker/internal/store"
	"github.com/oakwood-commons/contactpicker/pkg/loader"
)

func newImportCmd(g *globalOptions) *cobra.Command {
	var sample bool
	cmd := &cobra.Command{
		Use:   "import [FILE|-]",
		Short: "Load accounts, contacts and cases into the directory",
		Long: `Import a dataset into the directory database. FILE may be YAML (one or
more documents), JSON, NDJSON or TOML; "-" reads standard input. Records
are upserted by id, so importing the same file twice is harmless.

--sample loads the built-in demo dataset centred on case ` + store.SampleCaseID + `.`,
		Example: "  contactpicker import --sample\n" +
			"  contactpicker import contacts.yaml\n" +
			"  cat contacts.ndjson | contactpicker import -",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := readDatasets(cmd, args, sample)
			if err != nil {
				return err
			}

			var ds store.Dataset
			for _, d := range docs {
				ds.Accounts = append(ds.Accounts, d.Accounts...)
				ds.Contacts = append(ds.Contacts, d.Contacts...)
				ds.Cases = append(ds.Cases, d.Cases...)
			}

			ctx := cmd.Context()
			st, _, err := g.openDirectory(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			stats, err := st.Import(ctx, ds)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d accounts, %d contacts and %d cases into %s\n",
				stats.Accounts, stats.Contacts, stats.Cases, st.Path())
			return err
		},
	}
	cmd.Flags().BoolVar(&sample, "sample", false, "import the built-in demo dataset")
	return cmd
}

func readDatasets(cmd *cobra.Command, args []string, sample bool) ([]store.Dataset, error) {
	switch {
	case sample && len(args) > 0:
		return nil, errors.New("--sample cannot be combined with a FILE argument")
	case sample:
		return loader.DecodeDocuments[store.Dataset](string(store.SampleDataset()))
	case len(args) == 0:
		return nil, errors.New("nothing to import: pass FILE, - or --sample")
	case args[0] == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return loader.DecodeDocuments[store.Dataset](string(data))
	default:
		return loader.DecodeFile[store.Dataset](args[0])
	}
}
