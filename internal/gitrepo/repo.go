// Package gitrepo commits session transcripts into a git history inside
// the logs directory, shelling out to the git CLI.
package gitrepo

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/theirongolddev/ctrail/internal/model"
)

// Repo is a git repository rooted at the logs directory.
type Repo struct {
	path string
}

// InitOrOpen opens the repository at path, initializing it (with an
// empty .gitkeep initial commit) when none exists yet.
func InitOrOpen(path string) (*Repo, error) {
	r := &Repo{path: path}

	if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
		return r, nil
	}

	if _, err := r.run("init"); err != nil {
		return nil, fmt.Errorf("git init: %w", err)
	}

	gitkeep := filepath.Join(path, ".gitkeep")
	if err := os.WriteFile(gitkeep, nil, 0o600); err != nil {
		return nil, fmt.Errorf("creating .gitkeep: %w", err)
	}
	if _, err := r.run("add", ".gitkeep"); err != nil {
		return nil, fmt.Errorf("git add .gitkeep: %w", err)
	}
	if _, err := r.run("commit", "-m", "Initial commit: initialize session log repository"); err != nil {
		return nil, fmt.Errorf("initial commit: %w", err)
	}

	return r, nil
}

// CommitSession stages the session's transcript and commits it with a
// structured message, returning the commit hash.
func (r *Repo) CommitSession(sess model.SessionMetadata) (string, error) {
	logName := filepath.Base(sess.LogFile)

	if _, err := r.run("add", logName); err != nil {
		return "", fmt.Errorf("git add %s: %w", logName, err)
	}
	if _, err := r.run("commit", "-m", CommitMessage(sess)); err != nil {
		return "", fmt.Errorf("git commit: %w", err)
	}

	out, err := r.run("rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CommitMessage builds the one-line commit message for a session:
// "Session: <id> | <methodology> | <project>" plus duration, energy, and
// feature tags when present.
func CommitMessage(sess model.SessionMetadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s | %s | %s", sess.ID, sess.Methodology.Display(), sess.Project)

	if sess.DurationSecs != nil {
		fmt.Fprintf(&b, " | %dm", int64(sess.Duration().Minutes()))
	}
	if sess.CreativeEnergy != nil {
		fmt.Fprintf(&b, " | Energy: %d/3", *sess.CreativeEnergy)
	}
	if len(sess.FeaturesWorkedOn) > 0 {
		fmt.Fprintf(&b, " | Features: %s", strings.Join(sess.FeaturesWorkedOn, ", "))
	}

	return b.String()
}

// Log returns `git log --oneline --graph` output for the most recent
// count commits.
func (r *Repo) Log(count int) (string, error) {
	out, err := r.run("log", "--oneline", "--graph", "--decorate", fmt.Sprintf("-%d", count))
	if err != nil {
		return "", fmt.Errorf("git log: %w", err)
	}
	return string(out), nil
}

// CommitCount returns the number of commits on HEAD, or 0 for an empty
// repository.
func (r *Repo) CommitCount() (int, error) {
	out, err := r.run("rev-list", "--count", "HEAD")
	if err != nil {
		return 0, nil // no commits yet
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0, fmt.Errorf("parsing commit count: %w", err)
	}
	return n, nil
}

// RecentCommits returns up to count "hash|subject|date" lines, newest
// first.
func (r *Repo) RecentCommits(count int) ([]string, error) {
	out, err := r.run("log", "--pretty=format:%H|%s|%ad", "--date=short", fmt.Sprintf("-%d", count))
	if err != nil {
		return nil, nil // empty repository
	}
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// Path returns the repository root.
func (r *Repo) Path() string {
	return r.path
}

func (r *Repo) run(args ...string) ([]byte, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.path
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%v: %s", err, strings.TrimSpace(string(out)))
	}
	return out, nil
}
