package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/five82/roster/internal/app"
	"github.com/five82/roster/internal/config"
	"github.com/five82/roster/internal/logtail"
)

const defaultLogLines = 50

// rootFlags are shared by every command.
type rootFlags struct {
	configPath string
	prefsPath  string
	endpoint   string
	logFile    string
	debug      bool
}

func (f rootFlags) options() app.Options {
	return app.Options{
		ConfigPath: f.configPath,
		PrefsPath:  f.prefsPath,
		Endpoint:   f.endpoint,
		LogFile:    f.logFile,
		Debug:      f.debug,
	}
}

func newRootCmd(isTerminal func() bool) *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:   "roster",
		Short: "Browse, filter and sort a people listing",
		Long: `roster loads a people listing once and lets you browse it in the terminal.

Filter by name (case-insensitive, applied after typing pauses) and by city,
sort by name, city or birthday, and highlight the oldest person of each city.

Run without arguments to start the interactive browser. When stdout is not a
terminal the full listing is printed instead, as with "roster list".`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if isTerminal != nil && !isTerminal() {
				return app.List(cmd.Context(), flags.options(), app.ListOptions{NoDelay: true}, cmd.OutOrStdout())
			}
			return app.Run(cmd.Context(), flags.options())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/roster/config.toml)")
	pf.StringVar(&flags.prefsPath, "prefs", "", "preferences file (default ~/.config/roster/prefs.toml)")
	pf.StringVar(&flags.endpoint, "endpoint", "", "people listing URL (overrides config)")
	pf.StringVar(&flags.logFile, "log-file", "", "log file (overrides config)")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")

	root.AddCommand(newListCmd(&flags))
	root.AddCommand(newLogsCmd(&flags))
	return root
}

func newListCmd(flags *rootFlags) *cobra.Command {
	var list app.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the filtered, sorted listing and exit",
		Long: `Load the people listing once and print it as a table.

Examples:
  roster list                          # Everyone, in API order
  roster list --name ann --sort city   # Names containing "ann", by city
  roster list --city paris --exact-city --sort birthday --desc
  roster list --highlight              # Mark the oldest person of each city with *`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.List(cmd.Context(), flags.options(), list, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&list.Name, "name", "", "keep names containing this text (case-insensitive)")
	f.StringVar(&list.City, "city", "", "keep cities containing this text (case-insensitive)")
	f.BoolVar(&list.ExactCity, "exact-city", false, "match --city exactly instead of as a substring")
	f.StringVar(&list.SortBy, "sort", "", "sort column: name, city or birthday")
	f.BoolVar(&list.Desc, "desc", false, "sort descending")
	f.BoolVar(&list.Highlight, "highlight", false, "mark the oldest person of each city")
	f.BoolVar(&list.NoDelay, "no-delay", false, "skip the minimum loading delay")
	return cmd
}

func newLogsCmd(flags *rootFlags) *cobra.Command {
	var (
		lines int
		level string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent entries from the roster log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			minLevel, err := zapcore.ParseLevel(level)
			if err != nil {
				return fmt.Errorf("invalid --level: %w", err)
			}

			path := flags.logFile
			if path == "" {
				cfg, err := config.Load(flags.configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				path = cfg.LogFile
			} else if path, err = config.ExpandPath(path); err != nil {
				return fmt.Errorf("log file: %w", err)
			}

			entries, err := logtail.Tail(path, lines, minLevel)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No log entries in %s\n", path)
				return nil
			}
			now := time.Now()
			for _, entry := range entries {
				fmt.Fprintln(out, entry.Format(now))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", defaultLogLines, "number of trailing lines to read (0 for all)")
	cmd.Flags().StringVar(&level, "level", "info", "minimum level: debug, info, warn or error")
	return cmd
}
