package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yildizm/LogDelta/internal/emoji"
)

// watchDebounce coalesces bursts of write events into one re-compare.
const watchDebounce = 500 * time.Millisecond

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <blue-file> <green-file>",
		Short: "Re-compare whenever either log file changes",
		Long: `Watch both log files and rerun the comparison when one of them is
written to. Useful while a green deployment is still emitting logs.
Press Ctrl+C to stop watching.

Examples:
  logdelta watch blue.log green.log
  logdelta watch --exclude hostname blue.log green.log`,
		Args: cobra.ExactArgs(2),
		RunE: runWatchCompare,
	}

	cmd.Flags().StringVarP(&compareFormat, "format", "f", "", "log format (auto, csv, json, logfmt, text)")
	cmd.Flags().StringSliceVar(&compareExclude, "exclude", nil, "field name or path segment to exclude")
	cmd.Flags().StringSliceVar(&compareExcludePattern, "exclude-pattern", nil, "regex matched against field paths to exclude")
	cmd.Flags().StringVar(&compareExclusionsFile, "exclusions-file", "", "YAML file with exclusion fields and patterns")

	return cmd
}

func runWatchCompare(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("cannot watch %s: %w", path, err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer cleanupWatcher(watcher)

	for _, path := range args {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "%s Watching %s and %s\n", emoji.GetEmoji("watch"), args[0], args[1])
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop...\n\n")
	}

	// Initial comparison before waiting for changes.
	if err := runCompare(cmd, args); err != nil {
		return err
	}

	return watchLoop(cmd, args, watcher)
}

func watchLoop(cmd *cobra.Command, args []string, watcher *fsnotify.Watcher) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	var debounce *time.Timer
	rerun := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-signals:
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
			}
			return nil

		case <-rerun:
			fmt.Println()
			if err := runCompare(cmd, args); err != nil {
				compareLog.Error("comparison failed: %v", err)
			}

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			compareLog.Warn("watch error: %v", err)
		}
	}
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}
