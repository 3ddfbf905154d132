package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/contactpicker/internal/config"
)

func newConfigCmd(g *globalOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the embedded defaults merged with the user config file.

Redirect the YAML output to ~/.config/contactpicker/config.yaml to start a
config of your own.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(output, dataFormats); err != nil {
				return err
			}
			return writeData(cmd.OutOrStdout(), output, g.cfg)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputYAML, "output format: "+strings.Join(dataFormats, "|"))

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config, database and log file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath := config.ResolvePath(g.configFile)
			if cfgPath == "" {
				cfgPath = "(defaults only)"
			}
			db := g.dbPath
			if db == "" {
				db = g.cfg.DatabasePath()
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "config:   %s\ndatabase: %s\nlog:      %s\n",
				cfgPath, db, g.cfg.LogFilePath())
			return err
		},
	})
	return cmd
}
