// Package capture wraps interactive claude invocations, recording a
// byte-for-byte terminal transcript and the session's metadata.
package capture

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/ctrail/internal/gitrepo"
	"github.com/theirongolddev/ctrail/internal/model"
	"github.com/theirongolddev/ctrail/internal/store"
)

// Runner owns one wrapped session from creation to commit.
type Runner struct {
	LogsDir       string
	ClaudeCommand string
	Meta          *store.MetaStore
	Repo          *gitrepo.Repo
	Quiet         bool
}

// NewSession mints the metadata skeleton for a session starting now in
// workDir. The id is the UTC start time at second granularity, which
// keeps ids unique per start and sortable by creation order.
func NewSession(logsDir, workDir, claudeCmd string, args []string, now time.Time) model.SessionMetadata {
	id := now.UTC().Format(model.SessionIDFormat)

	command := claudeCmd
	if len(args) > 0 {
		command = claudeCmd + " " + strings.Join(args, " ")
	}

	return model.SessionMetadata{
		ID:               id,
		Timestamp:        now.UTC().Truncate(time.Second),
		Project:          filepath.Base(workDir),
		Methodology:      DetectMethodology(workDir),
		WorkingDirectory: workDir,
		Command:          command,
		LogFile:          filepath.Join(logsDir, id+".log"),
		FeaturesWorkedOn: []string{},
	}
}

// DetectMethodology inspects the project's .claude/CLAUDE.md for a
// methodology marker. Missing or unreadable configuration means Unknown.
func DetectMethodology(projectDir string) model.Methodology {
	data, err := os.ReadFile(filepath.Join(projectDir, ".claude", "CLAUDE.md"))
	if err != nil {
		return model.Unknown
	}

	content := strings.ToLower(string(data))
	switch {
	case strings.Contains(content, "context-driven"):
		return model.ContextDriven
	case strings.Contains(content, "command-based"):
		return model.CommandBased
	}
	return model.Unknown
}

// Run executes one logged session end to end: create metadata, capture
// the terminal session, fill in duration and end time, optionally prompt
// for creative energy, persist, and commit the transcript.
func (r *Runner) Run(args []string, trackEnergy bool) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	start := time.Now()
	sess := NewSession(r.LogsDir, workDir, r.ClaudeCommand, args, start)

	if !r.Quiet {
		fmt.Fprintf(os.Stderr, "Starting Claude session - logging to %s\n", sess.LogFile)
	}

	exitCode, runErr := r.runCaptured(sess.LogFile, args)

	end := time.Now()
	durationSecs := int64(end.Sub(start).Seconds())
	endUTC := end.UTC().Truncate(time.Second)
	sess.DurationSecs = &durationSecs
	sess.EndTime = &endUTC

	if runErr != nil {
		return fmt.Errorf("running captured session: %w", runErr)
	}

	if trackEnergy {
		energy, err := PromptEnergy()
		if err != nil {
			return fmt.Errorf("reading creative energy: %w", err)
		}
		sess.CreativeEnergy = energy
	}

	if err := r.Meta.Put(sess); err != nil {
		return fmt.Errorf("saving session metadata: %w", err)
	}

	hash, err := r.Repo.CommitSession(sess)
	if err != nil {
		return fmt.Errorf("committing transcript: %w", err)
	}

	if !r.Quiet {
		fmt.Fprintf(os.Stderr, "Session %s completed (exit %d, commit %.8s)\n", sess.ID, exitCode, hash)
		if sess.CreativeEnergy != nil {
			fmt.Fprintf(os.Stderr, "Creative energy: %d/3\n", *sess.CreativeEnergy)
		}
	}

	return nil
}

// runCaptured runs claude under script(1) so the transcript is a
// byte-for-byte terminal log, with stdio inherited for interactivity.
func (r *Runner) runCaptured(logFile string, args []string) (int, error) {
	cmd := exec.Command("script", scriptArgs(runtime.GOOS, logFile, r.ClaudeCommand, args)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// claude exiting nonzero is still a completed session
			return exitErr.ExitCode(), nil
		}
		return -1, err
	}
	return 0, nil
}

// scriptArgs builds the script(1) invocation. util-linux wants the
// command after -c; the BSD variant takes it positionally.
func scriptArgs(goos, logFile, claudeCmd string, args []string) []string {
	if goos == "linux" {
		full := claudeCmd
		for _, a := range args {
			full += " " + shellQuote(a)
		}
		return []string{"-q", "-c", full, logFile}
	}

	out := []string{"-q", logFile, claudeCmd}
	return append(out, args...)
}

func shellQuote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"'\\$`") {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return s
}

// PromptEnergy asks for a creative-energy rating with an interactive
// form. The form re-prompts until the input validates or the user skips;
// a skipped prompt returns nil.
func PromptEnergy() (*int, error) {
	var raw string

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Rate your creative energy for this session").
			Description("1 = drained, 2 = steady, 3 = energized (leave blank to skip)").
			Validate(validateEnergyInput).
			Value(&raw),
	))

	if err := form.Run(); err != nil {
		return nil, err
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// validateEnergyInput is the non-interactive validation boundary: blank
// skips, anything else must parse to a rating in {1,2,3}.
func validateEnergyInput(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("enter 1, 2, or 3")
	}
	return model.ValidateEnergy(n)
}
