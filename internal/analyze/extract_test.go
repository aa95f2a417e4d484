package analyze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/ctrail/internal/pattern"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	return NewExtractor(pattern.MustCompile())
}

func TestExtractQuestionsSkipFencedCode(t *testing.T) {
	ex := newTestExtractor(t)

	content := "Human: is this ok?\n```\nwhat? really?\n```\nAssistant: yes?"
	m := ex.Extract(content)

	if m.QuestionsAsked != 2 {
		t.Errorf("QuestionsAsked = %d, want 2 (fenced questions excluded)", m.QuestionsAsked)
	}
	if m.Exchanges != 2 {
		t.Errorf("Exchanges = %d, want 2", m.Exchanges)
	}
	if m.CodeBlocks != 1 {
		t.Errorf("CodeBlocks = %d, want 1", m.CodeBlocks)
	}
}

func TestExtractDeterministic(t *testing.T) {
	ex := newTestExtractor(t)

	content := "Human: great work?\n```rust\nfn main() {}\n```\nAssistant: can you clarify? be concise\n"
	first := ex.Extract(content)
	second := ex.Extract(content)

	if first != second {
		t.Errorf("Extract not deterministic: %+v vs %+v", first, second)
	}
}

func TestExtractEmpty(t *testing.T) {
	ex := newTestExtractor(t)

	m := ex.Extract("")
	zero := m.Exchanges | m.CodeBlocks | m.QuestionsAsked |
		m.EnthusiasmMarkers | m.ConfusionMarkers | m.CompactionIndicators
	if zero != 0 {
		t.Errorf("expected all-zero metrics for empty transcript, got %+v", m)
	}
}

// An odd number of fences leaves the question toggle open for the rest
// of the transcript. Known streaming-approximation behavior, asserted
// here so nobody "fixes" it silently.
func TestExtractUnbalancedFence(t *testing.T) {
	ex := newTestExtractor(t)

	content := "really?\n```\nstill inside? forever?\nno closing fence"
	m := ex.Extract(content)

	if m.QuestionsAsked != 1 {
		t.Errorf("QuestionsAsked = %d, want 1 (everything after the open fence suppressed)", m.QuestionsAsked)
	}
	if m.CodeBlocks != 0 {
		t.Errorf("CodeBlocks = %d, want 0 (incomplete region)", m.CodeBlocks)
	}
}

func TestExtractIndentedFence(t *testing.T) {
	ex := newTestExtractor(t)

	// Fence markers may be indented; leading whitespace is trimmed
	// before the prefix check.
	content := "q1?\n  ```\nhidden?\n\t```\nq2?"
	m := ex.Extract(content)

	if m.QuestionsAsked != 2 {
		t.Errorf("QuestionsAsked = %d, want 2", m.QuestionsAsked)
	}
}

func TestExtractFile(t *testing.T) {
	ex := newTestExtractor(t)

	path := filepath.Join(t.TempDir(), "session.log")
	if err := os.WriteFile(path, []byte("Human: perfect!\nAssistant: thanks\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := ex.ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if m.Exchanges != 2 {
		t.Errorf("Exchanges = %d, want 2", m.Exchanges)
	}
	if m.EnthusiasmMarkers != 1 {
		t.Errorf("EnthusiasmMarkers = %d, want 1", m.EnthusiasmMarkers)
	}
}

func TestExtractFileMissing(t *testing.T) {
	ex := newTestExtractor(t)

	if _, err := ex.ExtractFile(filepath.Join(t.TempDir(), "nope.log")); err == nil {
		t.Fatal("expected error for missing transcript")
	}
}

// FuzzCountQuestions checks the fence-toggle line scanner never panics
// and never returns a negative count on arbitrary input.
func FuzzCountQuestions(f *testing.F) {
	f.Add("Human: ok?\n```\nx?\n```\n")
	f.Add("```")
	f.Add("???")
	f.Add("")
	f.Add("  ```indented\n?")

	f.Fuzz(func(t *testing.T, content string) {
		if n := countQuestions(content); n < 0 {
			t.Errorf("negative question count %d for %q", n, content)
		}
	})
}
