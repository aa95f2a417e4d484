package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ctrail/internal/cli"
	"github.com/theirongolddev/ctrail/internal/config"
	"github.com/theirongolddev/ctrail/internal/gitrepo"
	"github.com/theirongolddev/ctrail/internal/model"
	"github.com/theirongolddev/ctrail/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Quick overview of the session log",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logsDir, err := resolveLogsDir(cfg)
	if err != nil {
		return err
	}

	meta, err := store.OpenMeta(logsDir)
	if err != nil {
		return err
	}

	groups := meta.ByMethodology()

	rows := [][]string{
		{"Logs directory", logsDir},
		{"Sessions", cli.FormatNumber(int64(meta.Len()))},
	}
	for _, meth := range model.Methodologies {
		if n := len(groups[meth]); n > 0 {
			rows = append(rows, []string{"  " + meth.Display(), cli.FormatNumber(int64(n))})
		}
	}

	if sessions := meta.All(); len(sessions) > 0 {
		last := sessions[len(sessions)-1]
		rows = append(rows, []string{"Last session", last.ID + " (" + last.Project + ")"})
	}

	// Only report git state, never initialize from a read-only command.
	if _, err := os.Stat(filepath.Join(logsDir, ".git")); err == nil {
		if repo, err := gitrepo.InitOrOpen(logsDir); err == nil {
			if commits, err := repo.CommitCount(); err == nil {
				rows = append(rows, []string{"Commits", cli.FormatNumber(int64(commits))})
			}
		}
	}

	if orphans := orphanTranscripts(logsDir, meta); len(orphans) > 0 {
		rows = append(rows, []string{"Orphan transcripts", cli.FormatNumber(int64(len(orphans)))})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CTRAIL STATUS"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Field", "Value"},
		Rows:    rows,
	}))

	return nil
}

// orphanTranscripts lists .log files in the logs directory that no
// stored session references, which usually means a crashed session.
func orphanTranscripts(logsDir string, meta *store.MetaStore) []string {
	entries, err := os.ReadDir(logsDir)
	if err != nil {
		return nil
	}

	known := make(map[string]struct{}, meta.Len())
	for _, s := range meta.All() {
		known[filepath.Base(s.LogFile)] = struct{}{}
	}

	var orphans []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".log") {
			continue
		}
		if _, ok := known[name]; !ok {
			orphans = append(orphans, name)
		}
	}
	return orphans
}
