package statuscolor

import (
	"strings"

	"github.com/fatih/color"

	"github.com/selimozcann/PhishGuard/internal/model"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	gray   = color.New(color.FgHiBlack)

	bold = map[model.ResultStatus]*color.Color{
		model.ResultSafe:       color.New(color.FgGreen, color.Bold),
		model.ResultSuspicious: color.New(color.FgYellow, color.Bold),
		model.ResultPhishing:   color.New(color.FgRed, color.Bold),
	}
)

func colorFor(status model.ResultStatus) *color.Color {
	switch status {
	case model.ResultSafe:
		return green
	case model.ResultSuspicious:
		return yellow
	case model.ResultPhishing:
		return red
	default:
		return gray
	}
}

func colorForDetection(status model.DetectionStatus) *color.Color {
	switch status {
	case model.StatusPassed:
		return green
	case model.StatusWarning:
		return yellow
	case model.StatusFailed:
		return red
	default:
		return gray
	}
}

// Sprint returns the upper-cased result status in its color.
func Sprint(status model.ResultStatus) string {
	c, ok := bold[status]
	if !ok {
		return gray.Sprint("—")
	}
	return c.Sprint(strings.ToUpper(string(status)))
}

// WrapByStatus wraps text with the color of the given result status.
func WrapByStatus(text string, status model.ResultStatus) string {
	return colorFor(status).Sprint(text)
}

// Mark returns the colored glyph for a detection status.
func Mark(status model.DetectionStatus) string {
	switch status {
	case model.StatusPassed:
		return green.Sprint("✔")
	case model.StatusWarning:
		return yellow.Sprint("!")
	case model.StatusFailed:
		return red.Sprint("✖")
	default:
		return gray.Sprint("?")
	}
}

// WrapByDetection wraps text with the color of a detection status.
func WrapByDetection(text string, status model.DetectionStatus) string {
	return colorForDetection(status).Sprint(text)
}

// Gray wraps the provided text in gray.
func Gray(text string) string {
	return gray.Sprint(text)
}

// ScoreBar renders score (0-100) as a bar of width cells colored by the band
// the score falls in.
func ScoreBar(score, width int, status model.ResultStatus) string {
	if width <= 0 {
		return ""
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := score * width / 100
	return colorFor(status).Sprint(strings.Repeat("█", filled)) + gray.Sprint(strings.Repeat("░", width-filled))
}
