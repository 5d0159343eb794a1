// Package cli provides the command-line interface for sheetdash.
package cli

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/five82/sheetdash/internal/app"
)

// Version is set at build time.
var Version = "0.1.0"

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configPath string
	prefsPath  string
	apiURL     string
	pollSecs   int
	timeout    int
}

func (o *rootOptions) appOptions() app.Options {
	return app.Options{
		ConfigPath: o.configPath,
		PrefsPath:  o.prefsPath,
		APIURL:     o.apiURL,
		PollEvery:  time.Duration(o.pollSecs) * time.Second,
		Timeout:    time.Duration(o.timeout) * time.Second,
	}
}

func (o *rootOptions) bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "config file (default: ~/.config/sheetdash/config.toml)")
	fs.StringVar(&o.prefsPath, "prefs", "", "preferences file (default: ~/.config/sheetdash/prefs.toml)")
	fs.StringVar(&o.apiURL, "url", "", "spreadsheet web app URL (overrides api_url)")
	fs.IntVar(&o.pollSecs, "poll", 0, "auto refresh interval in seconds (0 keeps refresh_seconds)")
	fs.IntVar(&o.timeout, "timeout", 0, "request timeout in seconds (0 keeps timeout_seconds)")
}

// NewRootCmd creates the root command. Without a subcommand it opens the
// terminal dashboard.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "sheetdash",
		Short: "Live dashboard for a spreadsheet web app",
		Long: `sheetdash fetches rows from a spreadsheet published as a JSON web app
and shows them as a searchable table with a live connection status.

Run without a subcommand to open the terminal dashboard.`,
		Version: Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts.appOptions())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	opts.bind(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newDumpCommand(opts))
	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newLogsCommand(opts))
	return rootCmd
}
