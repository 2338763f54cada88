package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/LogDelta/internal/analyzer"
	"github.com/yildizm/LogDelta/internal/common"
	"github.com/yildizm/LogDelta/internal/compare"
	"github.com/yildizm/LogDelta/internal/config"
	"github.com/yildizm/LogDelta/internal/emoji"
	"github.com/yildizm/LogDelta/internal/formatter"
	"github.com/yildizm/LogDelta/internal/ingest"
	"github.com/yildizm/LogDelta/internal/logger"
	"gopkg.in/yaml.v3"
)

var (
	compareFormat         string
	compareExclude        []string
	compareExcludePattern []string
	compareExclusionsFile string
	compareSummarize      bool
	compareDocsPath       string
	compareOutputFile     string
	compareTimeout        time.Duration
)

var compareLog = logger.NewWithCallback("compare", isVerbose)

func newCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <blue-file> <green-file>",
		Short: "Compare blue and green deployment logs",
		Long: `Compare structured logs from two deployments entry by entry.

Entries are paired by position, volatile fields are filtered out, and the
remaining differences are reported alongside per-deployment error scoring.

Examples:
  logdelta compare blue.log green.log
  logdelta compare --format json blue.json green.json
  logdelta compare --exclude hostname --exclude-pattern '^request_' blue.log green.log
  logdelta compare --summarize --docs ./docs blue.log green.log
  logdelta compare -o json --output-file report.json blue.csv green.csv`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}

	cmd.Flags().StringVarP(&compareFormat, "format", "f", "", "log format (auto, csv, json, logfmt, text)")
	cmd.Flags().StringSliceVar(&compareExclude, "exclude", nil, "field name or path segment to exclude")
	cmd.Flags().StringSliceVar(&compareExcludePattern, "exclude-pattern", nil, "regex matched against field paths to exclude")
	cmd.Flags().StringVar(&compareExclusionsFile, "exclusions-file", "", "YAML file with exclusion fields and patterns")
	cmd.Flags().BoolVar(&compareSummarize, "summarize", false, "append an AI-written verdict to the report")
	cmd.Flags().StringVar(&compareDocsPath, "docs", "", "documentation directory scanned for summarizer context")
	cmd.Flags().StringVar(&compareOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().DurationVar(&compareTimeout, "timeout", 30*time.Second, "summarization timeout")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	exclusions, err := resolveExclusions(cfg)
	if err != nil {
		return err
	}

	blue, green, err := readComparePair(args[0], args[1], cfg)
	if err != nil {
		return err
	}

	compareLog.InfoWithFields("loaded log sequences", []logger.Field{
		logger.F("blue", len(blue)),
		logger.F("green", len(green)),
	})

	report := analyzer.CompareRuns(blue, green, exclusions)

	output, err := renderReport(report, cfg)
	if err != nil {
		return err
	}

	if compareSummarize {
		summary, err := summarizeReport(cmd.Context(), cfg, report, compareDocsPath, compareTimeout)
		if err != nil {
			compareLog.Warn("summarization failed: %v", err)
			fmt.Fprintf(os.Stderr, "Warning: summarization failed: %v\n", err)
		} else if summary != "" {
			header := fmt.Sprintf("\n%s Summary\n", emoji.GetEmoji("brain"))
			output = append(output, []byte(header+summary+"\n")...)
		}
	}

	return writeOutput(output, compareOutputFile)
}

func readComparePair(bluePath, greenPath string, cfg *config.Config) (blue, green common.LogSequence, err error) {
	format := ingest.Format(cfg.Ingest.Format)
	if compareFormat != "" {
		format = ingest.Format(compareFormat)
	}

	blue, err = ingest.ReadFile(bluePath, format, cfg.Ingest.MaxLines)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read blue logs: %w", err)
	}

	green, err = ingest.ReadFile(greenPath, format, cfg.Ingest.MaxLines)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read green logs: %w", err)
	}

	return blue, green, nil
}

// resolveExclusions layers exclusion sources: config file first, then
// an explicit exclusions file, then command line flags.
func resolveExclusions(cfg *config.Config) (compare.ExclusionConfig, error) {
	exclusions := compare.ExclusionConfig{
		Fields:   append([]string(nil), cfg.Exclusions.Fields...),
		Patterns: append([]string(nil), cfg.Exclusions.Patterns...),
	}

	if compareExclusionsFile != "" {
		data, err := os.ReadFile(compareExclusionsFile) // #nosec G304 - user-supplied path
		if err != nil {
			return exclusions, fmt.Errorf("failed to read exclusions file: %w", err)
		}

		var fromFile compare.ExclusionConfig
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			return exclusions, fmt.Errorf("failed to parse exclusions file: %w", err)
		}

		exclusions.Fields = append(exclusions.Fields, fromFile.Fields...)
		exclusions.Patterns = append(exclusions.Patterns, fromFile.Patterns...)
	}

	exclusions.Fields = append(exclusions.Fields, compareExclude...)
	exclusions.Patterns = append(exclusions.Patterns, compareExcludePattern...)

	return exclusions, nil
}

func renderReport(report *analyzer.RunReport, cfg *config.Config) ([]byte, error) {
	opts := formatter.Options{
		Color:        useColor(),
		MaxDiffLines: cfg.Output.MaxDiffLines,
		MaxErrors:    cfg.Output.MaxErrors,
	}

	f, err := formatter.New(cfg.Output.DefaultFormat, opts)
	if err != nil {
		return nil, err
	}

	return f.Format(report)
}

func writeOutput(output []byte, path string) error {
	if path == "" {
		_, err := os.Stdout.Write(output)
		return err
	}

	if err := os.WriteFile(path, output, 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Output saved to: %s\n", path)
	}
	return nil
}
