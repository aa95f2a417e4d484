package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ctrail/internal/cli"
	"github.com/theirongolddev/ctrail/internal/config"
)

var showFull bool

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Per-session metrics and quality scores",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVarP(&showFull, "full", "f", false, "Also print the full transcript")
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	meta, analyzer, closeCache, err := openAnalyzer(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	sess, ok := meta.Get(args[0])
	if !ok {
		return fmt.Errorf("session %q not found", args[0])
	}

	summary, err := analyzer.Summarize(sess)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SESSION " + sess.ID))
	fmt.Println()

	rows := [][]string{
		{"Project", sess.Project},
		{"Methodology", sess.Methodology.Display()},
		{"Started", sess.Timestamp.Format("2006-01-02 15:04:05 MST")},
		{"Command", sess.Command},
	}
	if sess.DurationSecs != nil {
		rows = append(rows, []string{"Duration", cli.FormatDuration(sess.Duration())})
	}
	if sess.CreativeEnergy != nil {
		rows = append(rows, []string{"Creative Energy", fmt.Sprintf("%d/3", *sess.CreativeEnergy)})
	}

	m := summary.Metrics
	rows = append(rows,
		[]string{"---"},
		[]string{"Exchanges", cli.FormatNumber(int64(m.Exchanges))},
		[]string{"Code Blocks", cli.FormatNumber(int64(m.CodeBlocks))},
		[]string{"Questions Asked", cli.FormatNumber(int64(m.QuestionsAsked))},
		[]string{"Enthusiasm Markers", cli.FormatNumber(int64(m.EnthusiasmMarkers))},
		[]string{"Confusion Markers", cli.FormatNumber(int64(m.ConfusionMarkers))},
		[]string{"Compaction Indicators", cli.FormatNumber(int64(m.CompactionIndicators))},
		[]string{"---"},
		[]string{"Engagement", cli.FormatScore(summary.Quality.Engagement)},
		[]string{"Clarity", cli.FormatScore(summary.Quality.Clarity)},
		[]string{"Productivity", cli.FormatScore(summary.Quality.Productivity)},
		[]string{"Overall", cli.FormatScore(summary.Quality.Overall)},
	)

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Field", "Value"},
		Rows:    rows,
	}))

	if showFull {
		content, err := os.ReadFile(sess.LogFile)
		if err != nil {
			return fmt.Errorf("reading transcript: %w", err)
		}
		fmt.Println()
		fmt.Println(cli.RenderTitle("TRANSCRIPT"))
		fmt.Println()
		fmt.Println(string(content))
	}

	return nil
}
