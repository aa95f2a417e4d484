package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ctrail/internal/config"
	"github.com/theirongolddev/ctrail/internal/gitrepo"
)

var gitlogCount int

var gitlogCmd = &cobra.Command{
	Use:   "gitlog",
	Short: "Show the git history of logged sessions",
	RunE:  runGitlog,
}

func init() {
	gitlogCmd.Flags().IntVarP(&gitlogCount, "count", "c", 10, "Number of commits to show")
	rootCmd.AddCommand(gitlogCmd)
}

func runGitlog(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logsDir, err := resolveLogsDir(cfg)
	if err != nil {
		return err
	}

	repo, err := gitrepo.InitOrOpen(logsDir)
	if err != nil {
		return fmt.Errorf("opening log repository: %w", err)
	}

	out, err := repo.Log(gitlogCount)
	if err != nil {
		return err
	}
	fmt.Print(out)

	return nil
}
