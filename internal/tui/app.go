// Package tui provides the interactive Bubble Tea dashboard for ctrail.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/ctrail/internal/cli"
	"github.com/theirongolddev/ctrail/internal/model"
	"github.com/theirongolddev/ctrail/internal/pipeline"
	"github.com/theirongolddev/ctrail/internal/store"
	"github.com/theirongolddev/ctrail/internal/tui/theme"
)

var tabNames = []string{"Overview", "Methodologies", "Quality"}

// DataLoadedMsg is sent when the aggregation pipeline finishes.
type DataLoadedMsg struct {
	Sessions   []model.SessionMetadata
	Comparison model.Comparison
}

// LoadFailedMsg is sent when the pipeline could not run at all.
type LoadFailedMsg struct {
	Err error
}

// App is the root Bubble Tea model.
type App struct {
	meta     *store.MetaStore
	analyzer *pipeline.Analyzer

	sessions   []model.SessionMetadata
	comparison model.Comparison
	loaded     bool
	loadErr    error

	width     int
	height    int
	activeTab int

	spin     spinner.Model
	scoreBar progress.Model
}

// NewApp builds the dashboard over an already-opened store and analyzer.
func NewApp(meta *store.MetaStore, analyzer *pipeline.Analyzer) App {
	t := theme.Active

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(t.Accent)

	bar := progress.New(
		progress.WithSolidFill(string(t.Accent)),
		progress.WithoutPercentage(),
	)
	bar.Width = 24

	return App{
		meta:     meta,
		analyzer: analyzer,
		spin:     sp,
		scoreBar: bar,
	}
}

// Init kicks off the data load alongside the spinner tick.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.loadData())
}

func (a App) loadData() tea.Cmd {
	return func() tea.Msg {
		sessions := a.meta.All()
		cmp := pipeline.Compare(sessions, a.analyzer, nil)
		return DataLoadedMsg{Sessions: sessions, Comparison: cmp}
	}
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case DataLoadedMsg:
		a.sessions = msg.Sessions
		a.comparison = msg.Comparison
		a.loaded = true
		return a, nil

	case LoadFailedMsg:
		a.loadErr = msg.Err
		a.loaded = true
		return a, nil

	case spinner.TickMsg:
		if a.loaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return a, tea.Quit
		case "tab", "right", "l":
			a.activeTab = (a.activeTab + 1) % len(tabNames)
		case "shift+tab", "left", "h":
			a.activeTab = (a.activeTab + len(tabNames) - 1) % len(tabNames)
		case "1", "2", "3":
			a.activeTab = int(msg.String()[0] - '1')
		case "r":
			a.loaded = false
			return a, tea.Batch(a.spin.Tick, a.loadData())
		}
	}

	return a, nil
}

// View renders the active tab.
func (a App) View() string {
	t := theme.Active

	if !a.loaded {
		return fmt.Sprintf("\n\n  %s Analyzing sessions...\n", a.spin.View())
	}
	if a.loadErr != nil {
		return lipgloss.NewStyle().Foreground(t.Red).
			Render(fmt.Sprintf("\n\n  Load failed: %v\n", a.loadErr))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(a.renderTabBar())
	b.WriteString("\n\n")

	switch a.activeTab {
	case 0:
		b.WriteString(a.renderOverview())
	case 1:
		b.WriteString(a.renderMethodologies())
	case 2:
		b.WriteString(a.renderQuality())
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextMuted).
		Render("  tab/1-3 switch · r reload · q quit"))
	b.WriteString("\n")

	return b.String()
}

func (a App) renderTabBar() string {
	t := theme.Active
	active := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	inactive := lipgloss.NewStyle().Foreground(t.TextMuted)

	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf(" %d %s ", i+1, name)
		if i == a.activeTab {
			parts[i] = active.Render("[" + label + "]")
		} else {
			parts[i] = inactive.Render("  " + label + "  ")
		}
	}
	return "  " + strings.Join(parts, "")
}

func (a App) renderOverview() string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s\n", label.Render("Sessions logged:"),
		value.Render(cli.FormatNumber(int64(len(a.sessions)))))
	fmt.Fprintf(&b, "  %s %s\n", label.Render("Analyzed:"),
		value.Render(cli.FormatNumber(int64(a.comparison.TotalSessions))))
	if a.comparison.Skipped > 0 {
		warn := lipgloss.NewStyle().Foreground(t.Orange)
		fmt.Fprintf(&b, "  %s\n", warn.Render(
			fmt.Sprintf("%d transcripts unreadable, skipped", a.comparison.Skipped)))
	}

	b.WriteString("\n")
	header := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	b.WriteString(header.Render("  Recommendations"))
	b.WriteString("\n")
	for i, rec := range a.comparison.Recommendations {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, value.Render(rec))
	}

	return b.String()
}

func (a App) renderMethodologies() string {
	t := theme.Active
	header := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	label := lipgloss.NewStyle().Foreground(t.TextMuted)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary)

	if len(a.comparison.Groups) == 0 {
		return label.Render("  No analyzed sessions yet.")
	}

	var b strings.Builder
	for _, g := range a.comparison.Groups {
		b.WriteString(header.Render("  " + g.Methodology.Display()))
		fmt.Fprintf(&b, "  %s\n", label.Render(fmt.Sprintf("(%d sessions)", g.Stats.Sessions)))

		if g.Stats.TotalDuration > 0 {
			fmt.Fprintf(&b, "    %s %s\n", label.Render("avg duration"),
				value.Render(cli.FormatDuration(g.Stats.AvgDuration)))
		}
		if g.Stats.AvgEnergy != nil {
			fmt.Fprintf(&b, "    %s %s\n", label.Render("avg energy  "),
				value.Render(cli.FormatEnergy(*g.Stats.AvgEnergy)))
		}
		fmt.Fprintf(&b, "    %s %s\n", label.Render("exchanges   "),
			value.Render(fmt.Sprintf("%.1f/session", g.AvgExchanges)))
		fmt.Fprintf(&b, "    %s %s\n", label.Render("code blocks "),
			value.Render(fmt.Sprintf("%.1f/session", g.AvgCodeBlocks)))
		b.WriteString("\n")
	}

	return b.String()
}

func (a App) renderQuality() string {
	t := theme.Active
	header := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	label := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	rendered := false
	for _, g := range a.comparison.Groups {
		q := g.Quality
		if q == nil {
			continue
		}
		rendered = true

		b.WriteString(header.Render("  " + g.Methodology.Display()))
		fmt.Fprintf(&b, "  %s\n", label.Render(fmt.Sprintf("(sampled %d)", q.Sampled)))

		for _, row := range []struct {
			name  string
			score float64
		}{
			{"engagement  ", q.Engagement},
			{"clarity     ", q.Clarity},
			{"productivity", q.Productivity},
			{"overall     ", q.Overall},
		} {
			fmt.Fprintf(&b, "    %s %s %5.1f\n",
				label.Render(row.name),
				a.scoreBar.ViewAs(row.score/100),
				row.score)
		}
		b.WriteString("\n")
	}

	if !rendered {
		return label.Render("  No quality samples yet.")
	}
	return b.String()
}
