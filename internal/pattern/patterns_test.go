package pattern

import "testing"

func TestCountCaseInsensitive(t *testing.T) {
	ps := MustCompile()

	upper := ps.Count(Enthusiasm, "GREAT work, EXCELLENT")
	lower := ps.Count(Enthusiasm, "great work, excellent")

	if upper != lower {
		t.Errorf("case sensitivity: upper = %d, lower = %d", upper, lower)
	}
	if upper != 2 {
		t.Errorf("Count = %d, want 2", upper)
	}
}

func TestCountVocabularies(t *testing.T) {
	ps := MustCompile()

	tests := []struct {
		name    string
		cat     Category
		content string
		want    int
	}{
		{"enthusiasm phrase", Enthusiasm, "I love it, exactly what I wanted", 2},
		{"confusion", Confusion, "I'm confused, this is unclear and I'm not sure", 3},
		{"compaction", Compaction, "please be concise and summarize", 2},
		{"no matches", Enthusiasm, "the function returns an error", 0},
		{"empty", Confusion, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ps.Count(tt.cat, tt.content)
			if got != tt.want {
				t.Errorf("Count(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}

func TestCountCodeBlocks(t *testing.T) {
	ps := MustCompile()

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"one block", "```go\nfmt.Println()\n```", 1},
		{"two blocks", "```\na\n```\ntext\n```\nb\n```", 2},
		{"unclosed fence not counted", "```\nnever closed", 0},
		{"none", "no code here", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ps.CountCodeBlocks(tt.content)
			if got != tt.want {
				t.Errorf("CountCodeBlocks = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountExchanges(t *testing.T) {
	ps := MustCompile()

	content := "Human: hello\nAssistant: hi\nsome text\nHuman: more\n  Assistant: indented does not count\n"
	got := ps.CountExchanges(content)
	if got != 3 {
		t.Errorf("CountExchanges = %d, want 3", got)
	}
}

func TestCompileWithExtras(t *testing.T) {
	ps, err := Compile(map[Category][]string{
		Enthusiasm: {"ship it"},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if got := ps.Count(Enthusiasm, "SHIP IT"); got != 1 {
		t.Errorf("extra word count = %d, want 1", got)
	}
	// Defaults survive extension
	if got := ps.Count(Enthusiasm, "great"); got != 1 {
		t.Errorf("default word count = %d, want 1", got)
	}
}

func TestCompileQuotesExtras(t *testing.T) {
	// Regex metacharacters in user vocabulary must match literally.
	ps, err := Compile(map[Category][]string{
		Compaction: {"c++ style"},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if got := ps.Count(Compaction, "use c++ style here"); got != 1 {
		t.Errorf("quoted extra count = %d, want 1", got)
	}
}
