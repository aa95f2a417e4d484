// Package cmd implements the ctrail command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ctrail/internal/analyze"
	"github.com/theirongolddev/ctrail/internal/capture"
	"github.com/theirongolddev/ctrail/internal/config"
	"github.com/theirongolddev/ctrail/internal/gitrepo"
	"github.com/theirongolddev/ctrail/internal/pipeline"
	"github.com/theirongolddev/ctrail/internal/store"
)

var (
	flagLogsDir string
	flagQuiet   bool
	flagNoCache bool
	flagEnergy  bool
)

var rootCmd = &cobra.Command{
	Use:   "ctrail [-- claude args...]",
	Short: "Claude session logging and analysis",
	Long: "Wrap interactive claude sessions with full terminal transcripts,\n" +
		"methodology metadata, git history, and retrospective quality analysis.",
	Args: cobra.ArbitraryArgs,
	RunE: runSession,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagLogsDir, "logs-dir", "d", "", "Logs directory (default ~/.claude-logs)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the metrics cache, re-analyze everything")
	rootCmd.Flags().BoolVarP(&flagEnergy, "energy", "e", false, "Prompt for a creative-energy rating after the session")
}

func runSession(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logsDir, err := resolveLogsDir(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(logsDir, 0o750); err != nil {
		return fmt.Errorf("creating logs directory %s: %w", logsDir, err)
	}

	meta, err := store.OpenMeta(logsDir)
	if err != nil {
		return err
	}

	repo, err := gitrepo.InitOrOpen(logsDir)
	if err != nil {
		return fmt.Errorf("opening log repository: %w", err)
	}

	runner := &capture.Runner{
		LogsDir:       logsDir,
		ClaudeCommand: cfg.General.ClaudeCommand,
		Meta:          meta,
		Repo:          repo,
		Quiet:         flagQuiet,
	}

	return runner.Run(args, flagEnergy || cfg.General.TrackEnergy)
}

// resolveLogsDir applies the flag override, then config, then the
// default.
func resolveLogsDir(cfg config.Config) (string, error) {
	if flagLogsDir != "" {
		return flagLogsDir, nil
	}
	return cfg.LogsDir()
}

// openAnalyzer builds the shared analysis path used by all read-only
// commands: metadata store, compiled patterns, and the metrics cache
// (unless disabled or unavailable).
func openAnalyzer(cfg config.Config) (*store.MetaStore, *pipeline.Analyzer, func(), error) {
	logsDir, err := resolveLogsDir(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	meta, err := store.OpenMeta(logsDir)
	if err != nil {
		return nil, nil, nil, err
	}

	patterns, err := cfg.CompilePatterns()
	if err != nil {
		return nil, nil, nil, err
	}
	extractor := analyze.NewExtractor(patterns)

	closeFn := func() {}
	var cache *store.Cache
	if !flagNoCache {
		cache, err = store.OpenCache(pipeline.CachePath())
		if err != nil {
			// Cache unavailable — fall back to full extraction
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  metrics cache unavailable, re-analyzing transcripts\n")
			}
			cache = nil
		} else {
			closeFn = func() { _ = cache.Close() }
		}
	}

	return meta, pipeline.NewAnalyzer(extractor, cache), closeFn, nil
}

func warnStderr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "  warning: "+format+"\n", args...)
}
