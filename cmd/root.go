package cmd

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/contactpicker/internal/config"
	"github.com/oakwood-commons/contactpicker/internal/directory"
	"github.com/oakwood-commons/contactpicker/internal/store"
	"github.com/oakwood-commons/contactpicker/internal/ui"
	"github.com/oakwood-commons/contactpicker/internal/ui/picker"
	"github.com/oakwood-commons/contactpicker/pkg/logger"
	"github.com/oakwood-commons/contactpicker/pkg/settings"
)

// globalOptions are the persistent flags plus the configuration they
// resolve to. One value is shared by a command tree.
type globalOptions struct {
	configFile string
	dbPath     string
	caseID     string
	logFile    string
	debug      bool
	noColor    bool

	cfg config.Config
	run *settings.Run
	// runTUI is replaced in tests.
	runTUI func(ctx context.Context, root *ui.RootModel) error
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{runTUI: runProgram}

	root := &cobra.Command{
		Use:   settings.CliBinaryName,
		Short: "Search a contact directory and assign contacts to cases",
		Long: `contactpicker opens a case page with a contact picker. Contacts can be
searched by name, by the billing state of their account, or by distance from
the case location, paged through, and assigned to the case.

The same searches are available non-interactively with "contactpicker search".`,
		Example: "  contactpicker import --sample\n" +
			"  contactpicker --case 500-0001\n" +
			"  contactpicker search --by name --name jordan -o json\n" +
			"  contactpicker search --by distance --radius 25 --case 500-0001 -e '_.rows.map(r, r.email)'",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       versionString(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.runInteractive(cmd.Context())
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&g.configFile, "config-file", "", "path to a YAML config file")
	pf.StringVar(&g.dbPath, "db", "", "path to the directory database (default from config)")
	pf.StringVar(&g.caseID, "case", "", "case the picker assigns contacts to (default from config)")
	pf.StringVar(&g.logFile, "log-file", "", "write logs to this file (interactive mode defaults to the state directory)")
	pf.BoolVar(&g.debug, "debug", false, "enable debug logging")
	pf.BoolVar(&g.noColor, "no-color", false, "disable color output")

	root.AddCommand(
		newSearchCmd(g),
		newAssignCmd(g),
		newHistoryCmd(g),
		newImportCmd(g),
		newConfigCmd(g),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

// setup loads configuration, initializes logging and stores both in the
// command context.
func (g *globalOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(config.ResolvePath(g.configFile))
	if err != nil {
		return err
	}
	g.cfg = cfg

	run := settings.NewCliParams()
	run.CaseID = g.caseRef()
	run.NoColor = g.noColor || cfg.UI.NoColor
	run.Interactive = cmd == cmd.Root()
	if g.debug || cfg.App.Debug {
		run.MinLogLevel = -1
	}
	// the TUI owns the terminal, so logs go to a file
	run.LogFile = g.logFile
	if run.Interactive && run.LogFile == "" {
		run.LogFile = cfg.LogFilePath()
	}
	g.run = run

	lgr := logger.Setup(logger.Options{Level: run.MinLogLevel, Path: run.LogFile})
	lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
	if run.CaseID != "" {
		lgr = logger.WithValues(lgr, logger.CaseIDKey, run.CaseID)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, lgr)
	ctx = settings.IntoContext(ctx, run)
	cmd.SetContext(ctx)

	ui.SetTheme(ui.ThemeFromConfig(cfg.ActiveTheme(), run.NoColor))
	return nil
}

// caseRef is the --case flag, else the configured default.
func (g *globalOptions) caseRef() string {
	if id := strings.TrimSpace(g.caseID); id != "" {
		return id
	}
	return strings.TrimSpace(g.cfg.Case.DefaultID)
}

// openDirectory opens the store and wraps it with the configured latency.
func (g *globalOptions) openDirectory(ctx context.Context) (*store.Store, directory.Service, error) {
	path := g.dbPath
	if path == "" {
		path = g.cfg.DatabasePath()
	}
	st, err := store.Open(ctx, path, loggerFrom(ctx))
	if err != nil {
		return nil, nil, err
	}
	var svc directory.Service = st
	if d := g.cfg.Directory.Latency(); d > 0 {
		svc = directory.WithLatency(st, d)
	}
	return st, svc, nil
}

func (g *globalOptions) runInteractive(ctx context.Context) error {
	lgr := loggerFrom(ctx)
	st, svc, err := g.openDirectory(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	caseID := settings.CaseIDFrom(ctx)
	if caseID == "" {
		lgr.Info("no case selected; the picker needs --case or case.default_id")
	}
	maker := picker.NewMaker(picker.Options{
		Service: svc,
		CaseID:  caseID,
		Picker:  g.cfg.Picker,
		Logger:  lgr,
	})
	root := ui.NewRootModel(ui.HostOptions{
		Service:       svc,
		CaseID:        caseID,
		Maker:         maker,
		Logger:        lgr,
		ToastDuration: g.cfg.Picker.ToastDuration(),
	})
	return g.runTUI(ctx, root)
}

func runProgram(ctx context.Context, root *ui.RootModel) error {
	opts, cleanup := getProgramOptions()
	defer cleanup()
	return ui.Run(ctx, root, opts...)
}

func versionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

// loggerFrom returns the command logger.
func loggerFrom(ctx context.Context) logr.Logger {
	return *logger.FromContext(ctx)
}
