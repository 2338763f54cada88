package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/yildizm/LogDelta/internal/config"
	"github.com/yildizm/LogDelta/internal/emoji"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "logdelta",
		Short: "Blue/Green Structured Log Comparison",
		Long: `LogDelta compares structured logs from a blue (baseline) deployment and a
green (candidate) deployment, scores errors with a heuristic pattern catalog,
and reports the differences that matter for a promotion decision.

It supports JSON, logfmt, plain text, and CSV log files, filters volatile
fields before comparing, and can summarize the verdict with a local LLM.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)

			return loadGlobalConfig(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (terminal, json, markdown, csv)")

	// Add subcommands
	rootCmd.AddCommand(newCompareCommand())
	rootCmd.AddCommand(newScoreCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			fmt.Printf("LogDelta %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// loadGlobalConfig resolves the effective configuration once per
// invocation: file and env layers first, then explicit flags on top.
func loadGlobalConfig(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flag("verbose").Changed {
		cfg.Output.Verbose = verbose
	} else {
		verbose = cfg.Output.Verbose
	}
	if noColor {
		cfg.Output.ColorMode = "never"
	}
	if cmd.Flag("output").Changed && outputFmt != "" {
		cfg.Output.DefaultFormat = outputFmt
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	globalConfig = cfg
	return nil
}

// GetGlobalConfig returns the configuration resolved by the root
// command, falling back to defaults when commands run in isolation.
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// Global helpers
func isVerbose() bool {
	return verbose
}

func useColor() bool {
	cfg := GetGlobalConfig()
	return cfg.Output.ColorMode != "never" && !noColor
}
