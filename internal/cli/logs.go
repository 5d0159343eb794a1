package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/five82/sheetdash/internal/config"
	"github.com/five82/sheetdash/internal/logtail"
)

func newLogsCommand(root *rootOptions) *cobra.Command {
	var (
		lines   int
		level   string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the sheetdash log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			minLevel, err := logrus.ParseLevel(level)
			if err != nil {
				return fmt.Errorf("invalid level %q: %w", level, err)
			}

			cfg, err := config.Load(root.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			entries, err := logtail.Tail(cfg.Log.File, lines)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color := !noColor && out == os.Stdout && isatty.IsTerminal(os.Stdout.Fd())
			for _, e := range logtail.Filter(entries, minLevel) {
				_, _ = fmt.Fprintln(out, logtail.Format(e, color))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 200, "number of lines to read from the end (0 for all)")
	cmd.Flags().StringVarP(&level, "level", "l", "debug", "minimum level to show (trace|debug|info|warn|error)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	return cmd
}
