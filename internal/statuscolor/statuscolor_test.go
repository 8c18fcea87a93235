package statuscolor

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/selimozcann/PhishGuard/internal/model"
)

func TestPlainOutput(t *testing.T) {
	color.NoColor = true
	if got := Sprint(model.ResultPhishing); got != "PHISHING" {
		t.Fatalf("Sprint = %q", got)
	}
	if got := Sprint(""); got != "—" {
		t.Fatalf("Sprint(empty) = %q", got)
	}
	if got := Mark(model.StatusFailed); got != "✖" {
		t.Fatalf("Mark = %q", got)
	}
	if got := WrapByDetection("x", model.StatusPassed); got != "x" {
		t.Fatalf("WrapByDetection = %q", got)
	}
}

func TestScoreBar(t *testing.T) {
	color.NoColor = true
	tests := []struct {
		score, width int
		filled       int
	}{
		{0, 10, 0},
		{50, 10, 5},
		{100, 10, 10},
		{150, 10, 10},
		{-5, 10, 0},
	}
	for _, tt := range tests {
		bar := ScoreBar(tt.score, tt.width, model.ResultSuspicious)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Fatalf("ScoreBar(%d) filled = %d, want %d", tt.score, got, tt.filled)
		}
		if got := strings.Count(bar, "░"); got != tt.width-tt.filled {
			t.Fatalf("ScoreBar(%d) empty = %d, want %d", tt.score, got, tt.width-tt.filled)
		}
	}
	if ScoreBar(10, 0, model.ResultSafe) != "" {
		t.Fatalf("zero width must render nothing")
	}
}
