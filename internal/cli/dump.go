package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/five82/sheetdash/internal/app"
	"github.com/five82/sheetdash/internal/dashboard"
)

var dumpFormats = []string{"table", "csv", "markdown", "html", "json"}

func newDumpCommand(root *rootOptions) *cobra.Command {
	var (
		query  string
		format string
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Fetch once and print the rows",
		Long: `Fetch the sheet once, optionally filter it with the same case-insensitive
search the dashboard uses, and print the result. Exits non-zero when the
fetch fails.`,
		Example: `  sheetdash dump
  sheetdash dump --query berlin --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !validFormat(format) {
				return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(dumpFormats, ", "))
			}

			env, err := app.Bootstrap(root.appOptions(), false)
			if err != nil {
				return err
			}
			defer env.Close()

			switch env.Controller.Refresh(cmd.Context(), dashboard.TriggerManual) {
			case dashboard.OutcomeFailed:
				if snapErr := env.Store.Snapshot().LastError; snapErr != nil {
					return fmt.Errorf("refresh failed: %w", snapErr)
				}
				return errors.New("refresh failed")
			case dashboard.OutcomeNoData:
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "No data available")
				return nil
			}

			headers, rows, ok := dashboard.Match(env.Store.Dataset(), query)
			if !ok {
				// header row only
				headers = env.Store.Dataset().Headers()
			}
			return renderTable(cmd.OutOrStdout(), dashboard.BuildTable(rows, headers), format)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "only print rows containing this text (case-insensitive)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format ("+strings.Join(dumpFormats, "|")+")")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return dumpFormats, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func validFormat(format string) bool {
	for _, f := range dumpFormats {
		if f == format {
			return true
		}
	}
	return false
}

func renderTable(w io.Writer, t dashboard.Table, format string) error {
	if format == "json" {
		return renderJSON(w, t)
	}

	n := t.Columns()
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	if n > 0 {
		tw.AppendHeader(toRow(t.Headers, n))
	}
	for _, r := range t.Rows {
		tw.AppendRow(toRow(r, n))
	}

	switch format {
	case "csv":
		tw.RenderCSV()
	case "markdown":
		tw.RenderMarkdown()
	case "html":
		tw.RenderHTML()
	default:
		tw.Render()
	}

	if t.IsPlaceholder() {
		_, _ = fmt.Fprintln(w, t.Placeholder)
	} else if format == "table" {
		_, _ = fmt.Fprintf(w, "(%d rows)\n", len(t.Rows))
	}
	return nil
}

// toRow pads cells to n columns so ragged rows line up.
func toRow(cells []string, n int) table.Row {
	row := make(table.Row, n)
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}

func renderJSON(w io.Writer, t dashboard.Table) error {
	out := struct {
		Headers []string   `json:"headers"`
		Rows    [][]string `json:"rows"`
	}{Headers: t.Headers, Rows: t.Rows}
	if out.Headers == nil {
		out.Headers = []string{}
	}
	if out.Rows == nil {
		out.Rows = [][]string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
