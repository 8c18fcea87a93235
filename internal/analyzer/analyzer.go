package analyzer

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/selimozcann/PhishGuard/internal/model"
)

// ErrMalformedURL is returned when the input has no parseable scheme and host.
var ErrMalformedURL = errors.New("malformed URL")

// Score thresholds. Each band includes its lower bound.
const (
	PhishingThreshold   = 50
	SuspiciousThreshold = 20
	MaxScore            = 100
	minPassed           = 3
)

var battery = Rules()

// Analyze scores rawURL against the detector battery. It performs no I/O and
// keeps no state between calls.
func Analyze(rawURL string) (model.ScanResult, error) {
	t, err := parse(rawURL)
	if err != nil {
		return model.ScanResult{}, err
	}

	var (
		findings []model.DetectionResult
		score    int
	)
	for _, r := range battery {
		evidence, hit := r.Check(t)
		switch {
		case hit:
			findings = append(findings, model.DetectionResult{
				Title:       r.Title,
				Description: describe(r.Description, evidence),
				Status:      r.Status,
			})
			score += r.Weight
		case r.AlwaysEmit:
			findings = append(findings, r.Pass)
		}
	}
	if score > MaxScore {
		score = MaxScore
	}

	status := Classify(score)
	if status == model.ResultSafe && countPassed(findings) < minPassed {
		findings = append(findings, backfill...)
	}
	title, subtitle := Messages(status)

	return model.ScanResult{
		URL:              rawURL,
		Domain:           t.domain,
		ResultStatus:     status,
		ResultTitle:      title,
		ResultSubtitle:   subtitle,
		RiskScore:        score,
		DetectionResults: findings,
	}, nil
}

// Classify maps a risk score to its result status.
func Classify(score int) model.ResultStatus {
	switch {
	case score >= PhishingThreshold:
		return model.ResultPhishing
	case score >= SuspiciousThreshold:
		return model.ResultSuspicious
	default:
		return model.ResultSafe
	}
}

// Messages returns the headline and subtitle shown for a status.
func Messages(status model.ResultStatus) (title, subtitle string) {
	switch status {
	case model.ResultPhishing:
		return "Likely Phishing Attempt", "Multiple high-risk factors detected. Avoid this URL."
	case model.ResultSuspicious:
		return "Potentially Suspicious", "Some concerning patterns found. Proceed with caution."
	default:
		return "URL Appears Safe", "No phishing indicators detected in this URL."
	}
}

// Validate reports whether rawURL is acceptable input for Analyze.
func Validate(rawURL string) error {
	_, err := parse(rawURL)
	return err
}

func parse(rawURL string) (target, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return target{}, fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return target{}, fmt.Errorf("%w: %q needs a scheme and a host", ErrMalformedURL, rawURL)
	}
	path := u.EscapedPath()
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return target{scheme: u.Scheme, domain: u.Hostname(), path: path}, nil
}

func describe(desc, evidence string) string {
	if evidence == "" || !strings.Contains(desc, "%s") {
		return desc
	}
	return fmt.Sprintf(desc, evidence)
}

func countPassed(findings []model.DetectionResult) int {
	n := 0
	for _, f := range findings {
		if f.Status == model.StatusPassed {
			n++
		}
	}
	return n
}
