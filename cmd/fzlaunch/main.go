// Package main provides the CLI entrypoint for fzlaunch.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/fzlaunch/internal/config"
	"github.com/verte-zerg/fzlaunch/internal/history"
	"github.com/verte-zerg/fzlaunch/internal/index"
	"github.com/verte-zerg/fzlaunch/internal/launch"
	"github.com/verte-zerg/fzlaunch/internal/model"
	"github.com/verte-zerg/fzlaunch/internal/picker"
	"github.com/verte-zerg/fzlaunch/internal/report"
	"github.com/verte-zerg/fzlaunch/internal/scan"
)

const (
	defaultPrompt      = "> "
	defaultAccentColor = "magenta"
	defaultTiebreak    = "score"
	defaultStatsTop    = 20
)

var (
	launchMatchGenericName bool
	launchShowGenericName  bool
	launchNoSort           bool
	launchSortByMatcher    bool
	launchTiebreak         string
	launchPrompt           string
	launchAccentColor      string
	launchReverse          bool
	launchCommandPrefix    string
	launchTerminalCommand  string
	launchRecordRaw        bool

	statsTop int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fzlaunch",
		Short:         "Fuzzy application launcher",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runLaunchCmd,
	}

	rootCmd.Flags().BoolVar(&launchMatchGenericName, "match-generic-name", false, "include GenericName of desktop entries in the match text")
	rootCmd.Flags().BoolVar(&launchShowGenericName, "show-generic-name", false, "show GenericName of desktop entries in the list")
	rootCmd.Flags().BoolVar(&launchNoSort, "no-sort", false, "keep scan order instead of history-based ordering")
	rootCmd.Flags().BoolVar(&launchSortByMatcher, "sort-by-matcher", false, "defer ordering entirely to the fuzzy match score")
	rootCmd.Flags().StringVar(&launchTiebreak, "tiebreak", defaultTiebreak, "tie-break for equal match scores (score, index, begin)")
	rootCmd.Flags().StringVar(&launchPrompt, "prompt", defaultPrompt, "query prompt string")
	rootCmd.Flags().StringVar(&launchAccentColor, "accent-color", defaultAccentColor, "accent color (black, red, green, yellow, blue, magenta, cyan, white)")
	rootCmd.Flags().BoolVar(&launchReverse, "reverse", false, "show the prompt at the top")
	rootCmd.Flags().StringVar(&launchCommandPrefix, "command-prefix", "", "string prepended to every launched command")
	rootCmd.Flags().StringVar(&launchTerminalCommand, "terminal-command", "", "terminal launch command for Terminal=true desktop entries (default: $TERM -e)")
	rootCmd.Flags().BoolVar(&launchRecordRaw, "record-raw", false, "record raw typed commands in history")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runLaunchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := mergedConfig(cmd)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	store := history.New(config.DefaultHistoryPath())
	desktop, executables := scan.All(config.ApplicationDirs(), config.PathDirs())
	candidates := index.Merge(desktop, executables)
	ranked := index.Rank(candidates, store.Load(), cfg.Sort)

	m := picker.NewModel(cfg, ranked)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run picker: %w", err)
	}

	result := m.Result()
	switch {
	case result.Cancelled:
		// Clean cancellation: no launch, no history update.
		return nil
	case result.Index >= 0:
		selected := ranked[result.Index].Candidate
		if err := launch.Run(selected, cfg); err != nil {
			return err
		}
		if err := store.RecordUse(selected.ID); err != nil {
			logErrf("failed to save history: %v\n", err)
		}
		return nil
	case result.Query != "":
		raw := model.RawCommand(result.Query)
		if err := launch.Run(raw, cfg); err != nil {
			return err
		}
		if cfg.RecordRaw {
			if err := store.RecordUse(raw.ID); err != nil {
				logErrf("failed to save history: %v\n", err)
			}
		}
		return nil
	default:
		return nil
	}
}

func mergedConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyBoolConfig(cmd, "match-generic-name", &launchMatchGenericName, fileCfg.Launcher.MatchGenericName)
	applyBoolConfig(cmd, "show-generic-name", &launchShowGenericName, fileCfg.Launcher.ShowGenericName)
	applyBoolConfig(cmd, "no-sort", &launchNoSort, fileCfg.Launcher.NoSort)
	applyBoolConfig(cmd, "sort-by-matcher", &launchSortByMatcher, fileCfg.Launcher.SortByMatcher)
	applyStringConfig(cmd, "tiebreak", &launchTiebreak, fileCfg.Launcher.Tiebreak)
	applyStringConfig(cmd, "prompt", &launchPrompt, fileCfg.Launcher.Prompt)
	applyStringConfig(cmd, "accent-color", &launchAccentColor, fileCfg.Launcher.AccentColor)
	applyBoolConfig(cmd, "reverse", &launchReverse, fileCfg.Launcher.Reverse)
	applyStringConfig(cmd, "command-prefix", &launchCommandPrefix, fileCfg.Launcher.CommandPrefix)
	applyStringConfig(cmd, "terminal-command", &launchTerminalCommand, fileCfg.Launcher.TerminalCommand)
	applyBoolConfig(cmd, "record-raw", &launchRecordRaw, fileCfg.Launcher.RecordRaw)

	tiebreak, err := parseTiebreak(launchTiebreak)
	if err != nil {
		return model.Config{}, err
	}
	if err := validateAccentColor(launchAccentColor); err != nil {
		return model.Config{}, err
	}

	sortMode := model.SortHistory
	if launchNoSort {
		sortMode = model.SortNone
	}
	if launchSortByMatcher {
		sortMode = model.SortMatcher
	}

	return model.Config{
		MatchGenericName: launchMatchGenericName,
		ShowGenericName:  launchShowGenericName,
		Sort:             sortMode,
		Tiebreak:         tiebreak,
		Prompt:           launchPrompt,
		AccentColor:      launchAccentColor,
		Reverse:          launchReverse,
		CommandPrefix:    launchCommandPrefix,
		TerminalCommand:  launchTerminalCommand,
		RecordRaw:        launchRecordRaw,
	}, nil
}

func parseTiebreak(value string) (model.Tiebreak, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "score":
		return model.TiebreakScore, nil
	case "index":
		return model.TiebreakIndex, nil
	case "begin":
		return model.TiebreakBegin, nil
	default:
		return model.TiebreakScore, fmt.Errorf("unknown tiebreak %q (score, index, begin)", value)
	}
}

func validateAccentColor(value string) error {
	switch value {
	case "black", "red", "green", "yellow", "blue", "magenta", "cyan", "white":
		return nil
	default:
		return fmt.Errorf("unknown accent color %q", value)
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show launch history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsTop, "top", defaultStatsTop, "limit to the N most used entries (0 for all)")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	store := history.New(config.DefaultHistoryPath())
	records := store.Load()
	if len(records) == 0 {
		logErrln("no launch history yet")
		return nil
	}

	desktop, executables := scan.All(config.ApplicationDirs(), config.PathDirs())
	candidates := index.Merge(desktop, executables)
	rows := report.Build(records, candidates, statsTop)
	for _, line := range report.Render(rows) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# fzlaunch configuration
# Uncomment a value to enable it. CLI flags override config values.

[launcher]
# match-generic-name = false   # Include GenericName in the match text
# show-generic-name = false    # Show GenericName next to entry names
# no-sort = false              # Keep scan order instead of history ordering
# sort-by-matcher = false      # Defer ordering to the fuzzy match score
# tiebreak = %q            # Tie-break for equal scores (score, index, begin)
# prompt = %q                # Query prompt string
# accent-color = %q      # Accent color
# reverse = false              # Show the prompt at the top
# command-prefix = ""          # Prepended to every launched command
# terminal-command = ""        # Wrapper for Terminal=true entries (default: $TERM -e)
# record-raw = false           # Record raw typed commands in history
`,
		defaultTiebreak,
		defaultPrompt,
		defaultAccentColor,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
