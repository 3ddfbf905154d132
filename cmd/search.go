package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/contactpicker/internal/cel"
	"github.com/oakwood-commons/contactpicker/internal/contacts"
	"github.com/oakwood-commons/contactpicker/internal/pager"
	"github.com/oakwood-commons/contactpicker/internal/search"
	"github.com/oakwood-commons/contactpicker/pkg/loader"
	"github.com/oakwood-commons/contactpicker/pkg/settings"
)

var _ pflag.Value = (*contacts.SearchMode)(nil)

type searchOptions struct {
	mode     contacts.SearchMode
	name     string
	state    string
	radius   string
	page     int
	pageSize int
	output   string
	expr     string
}

// searchReport is the document written by "search" and bound to "_" for -e.
type searchReport struct {
	Mode       string         `json:"mode" yaml:"mode" toml:"mode"`
	Page       int            `json:"page" yaml:"page" toml:"page"`
	PageSize   int            `json:"page_size" yaml:"page_size" toml:"page_size"`
	TotalPages int            `json:"total_pages" yaml:"total_pages" toml:"total_pages"`
	Total      int            `json:"total" yaml:"total" toml:"total"`
	Message    string         `json:"message,omitempty" yaml:"message,omitempty" toml:"message,omitempty"`
	Rows       []contacts.Row `json:"rows" yaml:"rows" toml:"rows"`
}

func newSearchCmd(g *globalOptions) *cobra.Command {
	o := &searchOptions{}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the contact directory",
		Long: `Run one page of a name, state or distance search and print it.

Distance searches measure from the location of --case.`,
		Example: "  contactpicker search --name jordan\n" +
			"  contactpicker search --by state --state TX -o csv\n" +
			"  contactpicker search --by distance --radius 25 --case 500-0001 -o yaml\n" +
			"  contactpicker search --name lee -e '_.rows.map(r, r.email)'",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd, g, o)
		},
	}
	f := cmd.Flags()
	f.VarP(&o.mode, "by", "b", "search mode: name, state or distance")
	f.StringVar(&o.name, "name", "", "name fragment (name mode)")
	f.StringVar(&o.state, "state", "", "two-letter billing state code (state mode)")
	f.StringVar(&o.radius, "radius", "", "radius in miles from the case location (distance mode)")
	f.IntVar(&o.page, "page", 1, "page number, starting at 1")
	f.IntVar(&o.pageSize, "page-size", 0, "records per page (default from config)")
	f.StringVarP(&o.output, "output", "o", outputTable, "output format: "+strings.Join(tableFormats, "|"))
	f.StringVarP(&o.expr, "expression", "e", "", "CEL expression evaluated against the result (bound to _)")
	return cmd
}

func (o *searchOptions) criteria() search.Criteria {
	return search.Criteria{
		Name:      o.name,
		StateCode: strings.ToUpper(strings.TrimSpace(o.state)),
		Radius:    o.radius,
	}
}

func runSearch(cmd *cobra.Command, g *globalOptions, o *searchOptions) error {
	if err := checkFormat(o.output, tableFormats); err != nil {
		return err
	}
	size := o.pageSize
	if size == 0 {
		size = g.cfg.Picker.PageSize
	}
	page := pager.New(size)
	page.Number = o.page
	if err := page.Validate(); err != nil {
		return err
	}

	crit := o.criteria()
	caseID := settings.CaseIDFrom(cmd.Context())
	if o.mode == contacts.ModeState && crit.StateCode != "" && !contacts.IsStateCode(crit.StateCode) {
		return fmt.Errorf("unknown state code %q", crit.StateCode)
	}
	if err := search.Validate(o.mode, crit, caseID); err != nil {
		return err
	}

	var prg *cel.Program
	if o.expr != "" {
		ev, err := cel.NewEvaluator()
		if err != nil {
			return err
		}
		if prg, err = ev.Compile(o.expr); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	st, svc, err := g.openDirectory(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	res := search.Fetch(ctx, svc, search.Request{
		Mode:       o.mode,
		Criteria:   crit,
		CaseID:     caseID,
		PageNumber: page.Number,
		PageSize:   page.Size,
	})
	if res.RowsErr != nil {
		return errors.New(search.Message(o.mode, crit, res))
	}
	if res.CountErr != nil {
		loggerFrom(ctx).Error(res.CountErr, "count failed", "mode", o.mode.String())
	} else {
		page.SetTotal(res.Total)
	}

	report := searchReport{
		Mode:       o.mode.String(),
		Page:       page.Number,
		PageSize:   page.Size,
		TotalPages: page.TotalPages,
		Total:      page.TotalRecords,
		Message:    search.Message(o.mode, crit, res),
		Rows:       res.Rows,
	}

	out := cmd.OutOrStdout()
	if prg != nil {
		doc, err := loader.Normalize(report)
		if err != nil {
			return err
		}
		v, err := prg.Eval(doc)
		if err != nil {
			return err
		}
		format := o.output
		if format == outputTable || format == outputCSV {
			format = outputYAML
		}
		return writeData(out, format, v)
	}

	switch o.output {
	case outputTable, outputCSV:
		return writeSearchGrid(out, o.output, o.mode, report)
	default:
		return writeData(out, o.output, report)
	}
}

func writeSearchGrid(w io.Writer, format string, mode contacts.SearchMode, r searchReport) error {
	cols := contacts.ColumnsFor(mode)
	g := grid{headers: make([]string, 0, len(cols))}
	for _, c := range cols {
		g.headers = append(g.headers, c.Label)
	}
	for _, row := range r.Rows {
		cells := make([]string, 0, len(cols))
		for _, c := range cols {
			cells = append(cells, row.Cell(c.Field))
		}
		g.rows = append(g.rows, cells)
	}
	if err := writeGrid(w, format, g); err != nil {
		return err
	}
	if format != outputTable {
		return nil
	}
	if r.Message != "" {
		fmt.Fprintln(w, r.Message)
	}
	_, err := fmt.Fprintf(w, "Page %d of %d · %d contacts\n", r.Page, r.TotalPages, r.Total)
	return err
}
