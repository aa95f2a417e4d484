package cli

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{2 * time.Minute, "2m"},
		{125 * time.Second, "2m"},
		{time.Hour + 2*time.Minute, "1h 2m"},
		{3725 * time.Second, "1h 2m"},
		{25 * time.Hour, "25h 0m"},
		{-time.Minute, "0s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatScore(t *testing.T) {
	if got := FormatScore(53.333); got != "53.3/100" {
		t.Errorf("FormatScore = %q", got)
	}
}

func TestFormatEnergy(t *testing.T) {
	if got := FormatEnergy(2.5); got != "2.5/3" {
		t.Errorf("FormatEnergy = %q", got)
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(3.25); got != "3.2/session" {
		t.Errorf("FormatRate = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is t…"},
		{"héllo wörld", 8, "héllo w…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}
