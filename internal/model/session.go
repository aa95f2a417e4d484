// Package model defines domain types for ctrail sessions and metrics.
package model

import (
	"fmt"
	"sort"
	"time"
)

// Methodology classifies how a project's instructions guide Claude:
// long-form context prose, discrete slash commands, or unclassified.
// Determined once when a session starts and never changed afterward.
type Methodology string

const (
	ContextDriven Methodology = "context-driven"
	CommandBased  Methodology = "command-based"
	Unknown       Methodology = "unknown"
)

// Methodologies is the fixed iteration order used everywhere groups are
// walked, so reports and recommendations are stable across runs.
var Methodologies = []Methodology{ContextDriven, CommandBased, Unknown}

// Display returns the human-readable form, e.g. "Context-Driven".
func (m Methodology) Display() string {
	switch m {
	case ContextDriven:
		return "Context-Driven"
	case CommandBased:
		return "Command-Based"
	default:
		return "Unknown"
	}
}

// ParseMethodology maps user input (filters, flags) onto the enum.
// Returns false for strings that name no methodology.
func ParseMethodology(s string) (Methodology, bool) {
	switch normalizeMethodology(s) {
	case "contextdriven":
		return ContextDriven, true
	case "commandbased":
		return CommandBased, true
	case "unknown":
		return Unknown, true
	}
	return Unknown, false
}

func normalizeMethodology(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == '-' || r == '_' || r == ' ':
			// dropped so "Context-Driven" and "contextdriven" agree
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

// SessionMetadata is one logged session. The id derives from the start
// timestamp (second granularity) so ids sort by creation order. Duration,
// end time, and creative energy are filled in exactly once when the
// session ends; everything else is immutable after creation.
type SessionMetadata struct {
	ID               string      `json:"id"`
	Timestamp        time.Time   `json:"timestamp"`
	Project          string      `json:"project"`
	Methodology      Methodology `json:"methodology"`
	WorkingDirectory string      `json:"working_directory"`
	Command          string      `json:"command"`
	LogFile          string      `json:"log_file"`
	DurationSecs     *int64      `json:"duration_secs,omitempty"`
	EndTime          *time.Time  `json:"end_time,omitempty"`
	FeaturesWorkedOn []string    `json:"features_worked_on"`
	CreativeEnergy   *int        `json:"creative_energy,omitempty"`
}

// Duration returns the recorded elapsed time, or 0 if the session never
// finished cleanly.
func (s SessionMetadata) Duration() time.Duration {
	if s.DurationSecs == nil {
		return 0
	}
	return time.Duration(*s.DurationSecs) * time.Second
}

// SessionIDFormat is the layout session ids are minted with. Lexically
// sortable, filesystem safe.
const SessionIDFormat = "2006-01-02_15-04-05"

// ValidateEnergy checks a self-reported creative-energy rating.
// Ratings are 1 (drained) to 3 (energized); anything else is rejected
// rather than clamped.
func ValidateEnergy(n int) error {
	if n < 1 || n > 3 {
		return fmt.Errorf("creative energy must be 1, 2, or 3 (got %d)", n)
	}
	return nil
}

// SortSessions orders sessions by id ascending, which is creation order.
// This is the documented deterministic order used for quality sampling.
func SortSessions(sessions []SessionMetadata) {
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ID < sessions[j].ID
	})
}
