package analyzer_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/selimozcann/PhishGuard/internal/analyzer"
	"github.com/selimozcann/PhishGuard/internal/model"
)

func titles(res model.ScanResult) []string {
	out := make([]string, len(res.DetectionResults))
	for i, d := range res.DetectionResults {
		out[i] = d.Title
	}
	return out
}

func hasTitle(res model.ScanResult, title string) bool {
	for _, d := range res.DetectionResults {
		if d.Title == title {
			return true
		}
	}
	return false
}

func TestAnalyzeCleanURL(t *testing.T) {
	res, err := analyzer.Analyze("https://example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RiskScore != 0 || res.ResultStatus != model.ResultSafe {
		t.Fatalf("expected safe/0, got %s/%d", res.ResultStatus, res.RiskScore)
	}
	if res.Domain != "example.com" || res.URL != "https://example.com/" {
		t.Fatalf("unexpected url/domain: %q %q", res.URL, res.Domain)
	}
	want := []string{
		"Valid HTTPS Connection",
		"Normal Domain Length",
		"No Known Phishing Indicators",
		"Legitimate Domain Structure",
	}
	if got := titles(res); !reflect.DeepEqual(got, want) {
		t.Fatalf("findings = %v, want %v", got, want)
	}
	for _, d := range res.DetectionResults {
		if d.Status != model.StatusPassed {
			t.Fatalf("expected all findings passed, got %s for %q", d.Status, d.Title)
		}
	}
	if res.ResultTitle != "URL Appears Safe" {
		t.Fatalf("unexpected title %q", res.ResultTitle)
	}
}

func TestAnalyzePhishingURL(t *testing.T) {
	res, err := analyzer.Analyze("http://paypal-secure-login.verify-account.xyz/redirect=http://evil.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ResultStatus != model.ResultPhishing {
		t.Fatalf("expected phishing, got %s", res.ResultStatus)
	}
	// 25 + 15 + 10 + 30 + 10 + 15 = 105, clamped.
	if res.RiskScore != 100 {
		t.Fatalf("expected clamped score 100, got %d", res.RiskScore)
	}
	want := []string{
		"Missing SSL Certificate",
		"Suspicious Domain Length",
		"Suspicious Keywords in Domain",
		"Possible Brand Impersonation",
		"Suspicious Top-Level Domain",
		"URL Redirection Detected",
	}
	if got := titles(res); !reflect.DeepEqual(got, want) {
		t.Fatalf("findings = %v, want %v", got, want)
	}
	brand := res.DetectionResults[3]
	if brand.Description != "The domain appears to impersonate Paypal but is not the official domain." {
		t.Fatalf("unexpected brand description %q", brand.Description)
	}
	tld := res.DetectionResults[4]
	if tld.Description != "The domain uses .xyz which is often associated with free domains used in phishing." {
		t.Fatalf("unexpected tld description %q", tld.Description)
	}
	if res.ResultTitle != "Likely Phishing Attempt" {
		t.Fatalf("unexpected title %q", res.ResultTitle)
	}
}

func TestAnalyzeIPv4Host(t *testing.T) {
	res, err := analyzer.Analyze("http://192.168.1.1/login")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RiskScore != 50 || res.ResultStatus != model.ResultPhishing {
		t.Fatalf("expected phishing/50, got %s/%d", res.ResultStatus, res.RiskScore)
	}
	if !hasTitle(res, "IP Address Used Instead of Domain") {
		t.Fatalf("expected IP finding, got %v", titles(res))
	}
	if hasTitle(res, "Suspicious Keywords in Domain") {
		t.Fatalf("keyword in path must not trigger the domain keyword check")
	}
}

func TestAnalyzeScores(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		url      string
		score    int
		status   model.ResultStatus
		findings int
	}{
		{name: "specialCharsExactly20", url: "https://exa_mple.com/", score: 20, status: model.ResultSuspicious, findings: 3},
		{name: "keywordAndTLD20", url: "https://login.xyz/", score: 20, status: model.ResultSuspicious, findings: 4},
		{name: "httpAndIPExactly50", url: "http://10.0.0.1/", score: 50, status: model.ResultPhishing, findings: 3},
		{name: "justBelowPhishing", url: "http://mybank-update.xyz/", score: 45, status: model.ResultSuspicious, findings: 4},
		{name: "longDomainStillSafe", url: "https://this-is-a-very-long-domain-name.com/", score: 15, status: model.ResultSafe, findings: 4},
		{name: "manySubdomains", url: "https://a.b.c.d.example.com/", score: 10, status: model.ResultSafe, findings: 5},
		{name: "redirectInQuery", url: "https://example.com/out?url=https://evil.example", score: 15, status: model.ResultSafe, findings: 5},
		{name: "gotoParam", url: "https://example.com/?goto=x", score: 15, status: model.ResultSafe, findings: 5},
		{name: "officialBrandDomain", url: "https://www.paypal.com/signin", score: 0, status: model.ResultSafe, findings: 4},
		{name: "keywordInsideOfficialBrand", url: "https://accounts.google.com/", score: 10, status: model.ResultSafe, findings: 5},
		{name: "brandOrgDomain", url: "https://apple.org/", score: 0, status: model.ResultSafe, findings: 4},
		{name: "plainHTTP", url: "http://example.com/", score: 25, status: model.ResultSuspicious, findings: 2},
		{name: "portIgnored", url: "https://example.com:8443/", score: 0, status: model.ResultSafe, findings: 4},
		{name: "clampAt100", url: "http://paypal_secure-login-verification.xyz/?redirect=x", score: 100, status: model.ResultPhishing, findings: 7},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := analyzer.Analyze(tt.url)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.RiskScore != tt.score {
				t.Fatalf("score = %d, want %d (%v)", res.RiskScore, tt.score, titles(res))
			}
			if res.ResultStatus != tt.status {
				t.Fatalf("status = %s, want %s", res.ResultStatus, tt.status)
			}
			if len(res.DetectionResults) != tt.findings {
				t.Fatalf("findings = %d, want %d (%v)", len(res.DetectionResults), tt.findings, titles(res))
			}
		})
	}
}

func TestAnalyzeKeywordEmitsOnce(t *testing.T) {
	res, err := analyzer.Analyze("https://secure-login-verify.example/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := 0
	for _, d := range res.DetectionResults {
		if d.Title == "Suspicious Keywords in Domain" {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("expected exactly one keyword finding, got %d", n)
	}
	if res.RiskScore != 10 {
		t.Fatalf("expected score 10, got %d", res.RiskScore)
	}
}

func TestAnalyzeMatchingIsCaseSensitive(t *testing.T) {
	res, err := analyzer.Analyze("https://PAYPAL-verify.example/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasTitle(res, "Possible Brand Impersonation") {
		t.Fatalf("uppercase brand must not match")
	}
	if !hasTitle(res, "Suspicious Keywords in Domain") {
		t.Fatalf("lowercase keyword should still match")
	}
}

func TestAnalyzeNoBackfillWhenNotSafe(t *testing.T) {
	res, err := analyzer.Analyze("http://example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasTitle(res, "No Known Phishing Indicators") || hasTitle(res, "Legitimate Domain Structure") {
		t.Fatalf("backfill must only apply to safe results, got %v", titles(res))
	}
}

func TestAnalyzeMalformed(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"not a url", "", "example.com/path", "http://", "://missing-scheme.com", "mailto:someone@example.com"} {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			res, err := analyzer.Analyze(in)
			if !errors.Is(err, analyzer.ErrMalformedURL) {
				t.Fatalf("expected ErrMalformedURL, got %v", err)
			}
			if !reflect.DeepEqual(res, model.ScanResult{}) {
				t.Fatalf("expected zero result on error, got %+v", res)
			}
			if analyzer.Validate(in) == nil {
				t.Fatalf("Validate accepted %q", in)
			}
		})
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	const in = "http://paypal-secure-login.verify-account.xyz/redirect=http://evil.com"
	first, err := analyzer.Analyze(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, _ := json.Marshal(first)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			again, err := analyzer.Analyze(in)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			b, _ := json.Marshal(again)
			if string(a) != string(b) {
				t.Errorf("non-deterministic output:\n%s\n%s", a, b)
			}
		}()
	}
	wg.Wait()
}

func TestAnalyzeResultsAreIndependent(t *testing.T) {
	a, _ := analyzer.Analyze("https://example.com/")
	a.DetectionResults[0].Title = "mutated"
	b, _ := analyzer.Analyze("https://example.com/")
	if b.DetectionResults[0].Title != "Valid HTTPS Connection" {
		t.Fatalf("results share state across calls")
	}
}

func TestClassifyThresholds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		score int
		want  model.ResultStatus
	}{
		{0, model.ResultSafe},
		{19, model.ResultSafe},
		{20, model.ResultSuspicious},
		{49, model.ResultSuspicious},
		{50, model.ResultPhishing},
		{100, model.ResultPhishing},
	}
	for _, tt := range tests {
		if got := analyzer.Classify(tt.score); got != tt.want {
			t.Fatalf("Classify(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
