package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ctrail/internal/cli"
	"github.com/theirongolddev/ctrail/internal/config"
	"github.com/theirongolddev/ctrail/internal/model"
	"github.com/theirongolddev/ctrail/internal/pipeline"
)

var analyzeMethodology string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Comparative analysis across methodologies",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeMethodology, "methodology", "m", "", "Restrict to one methodology (context-driven, command-based, unknown)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	meta, analyzer, closeCache, err := openAnalyzer(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	sessions := meta.All()
	if analyzeMethodology != "" {
		meth, ok := model.ParseMethodology(analyzeMethodology)
		if !ok {
			return fmt.Errorf("unknown methodology %q", analyzeMethodology)
		}
		filtered := sessions[:0]
		for _, s := range sessions {
			if s.Methodology == meth {
				filtered = append(filtered, s)
			}
		}
		sessions = filtered
	}

	var warn pipeline.WarnFunc
	if !flagQuiet {
		warn = warnStderr
	}
	cmp := pipeline.Compare(sessions, analyzer, warn)

	fmt.Println()
	fmt.Println(cli.RenderTitle("SESSION ANALYSIS"))
	fmt.Println()

	if len(cmp.Groups) == 0 {
		fmt.Println("  No sessions found for analysis.")
		return nil
	}

	fmt.Printf("  Total sessions analyzed: %d", cmp.TotalSessions)
	if cmp.Skipped > 0 {
		fmt.Printf("  (%d skipped)", cmp.Skipped)
	}
	fmt.Println()
	fmt.Println()

	for _, g := range cmp.Groups {
		printGroup(g)
	}

	fmt.Println(cli.RenderTitle("RECOMMENDATIONS"))
	fmt.Println()
	fmt.Print(cli.RenderList(cmp.Recommendations))
	fmt.Println()

	return nil
}

func printGroup(g model.MethodologyReport) {
	rows := [][]string{
		{"Sessions", cli.FormatNumber(int64(g.Stats.Sessions))},
	}

	if g.Stats.TotalDuration > 0 {
		rows = append(rows,
			[]string{"Average Duration", cli.FormatDuration(g.Stats.AvgDuration)},
			[]string{"Total Duration", cli.FormatDuration(g.Stats.TotalDuration)},
		)
	}
	if g.Stats.AvgEnergy != nil {
		rows = append(rows, []string{"Creative Energy", cli.FormatEnergy(*g.Stats.AvgEnergy)})
	}

	m := g.Stats.Metrics
	rows = append(rows,
		[]string{"---"},
		[]string{"Exchanges", cli.FormatNumber(int64(m.Exchanges))},
		[]string{"Code Blocks", cli.FormatNumber(int64(m.CodeBlocks))},
		[]string{"Questions Asked", cli.FormatNumber(int64(m.QuestionsAsked))},
		[]string{"Enthusiasm Markers", cli.FormatNumber(int64(m.EnthusiasmMarkers))},
		[]string{"Confusion Markers", cli.FormatNumber(int64(m.ConfusionMarkers))},
		[]string{"Compaction Indicators", cli.FormatNumber(int64(m.CompactionIndicators))},
		[]string{"---"},
		[]string{"Exchanges/session", fmt.Sprintf("%.1f", g.AvgExchanges)},
		[]string{"Code blocks/session", fmt.Sprintf("%.1f", g.AvgCodeBlocks)},
	)

	if q := g.Quality; q != nil {
		rows = append(rows,
			[]string{"---"},
			[]string{fmt.Sprintf("Engagement (n=%d)", q.Sampled), cli.FormatScore(q.Engagement)},
			[]string{"Clarity", cli.FormatScore(q.Clarity)},
			[]string{"Productivity", cli.FormatScore(q.Productivity)},
			[]string{"Overall", cli.FormatScore(q.Overall)},
		)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   g.Methodology.Display(),
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	fmt.Println()
}
