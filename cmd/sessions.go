package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ctrail/internal/cli"
	"github.com/theirongolddev/ctrail/internal/config"
	"github.com/theirongolddev/ctrail/internal/model"
	"github.com/theirongolddev/ctrail/internal/store"
)

var (
	sessionsLimit       int
	sessionsMethodology string
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List logged sessions",
	RunE:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "l", 0, "Number of sessions to show (default from config)")
	sessionsCmd.Flags().StringVarP(&sessionsMethodology, "methodology", "m", "", "Filter by methodology")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(_ *cobra.Command, _ []string) error {
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

	sessions := meta.All()
	if sessionsMethodology != "" {
		meth, ok := model.ParseMethodology(sessionsMethodology)
		if !ok {
			return fmt.Errorf("unknown methodology %q", sessionsMethodology)
		}
		filtered := sessions[:0]
		for _, s := range sessions {
			if s.Methodology == meth {
				filtered = append(filtered, s)
			}
		}
		sessions = filtered
	}

	if len(sessions) == 0 {
		fmt.Println("\n  No sessions found.")
		return nil
	}

	// Newest first for listing
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ID > sessions[j].ID
	})

	limit := sessionsLimit
	if limit <= 0 {
		limit = cfg.General.DefaultLimit
	}
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SESSIONS  (showing %d)", len(sessions))))
	fmt.Println()

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		duration := ""
		if s.DurationSecs != nil {
			duration = cli.FormatDuration(s.Duration())
		}
		energy := ""
		if s.CreativeEnergy != nil {
			energy = fmt.Sprintf("%d/3", *s.CreativeEnergy)
		}

		rows = append(rows, []string{
			s.ID,
			cli.Truncate(s.Project, 16),
			s.Methodology.Display(),
			duration,
			energy,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Session", "Project", "Methodology", "Duration", "Energy"},
		Rows:    rows,
	}))

	return nil
}
