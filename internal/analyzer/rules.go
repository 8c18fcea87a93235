package analyzer

import (
	"regexp"
	"strings"

	"github.com/selimozcann/PhishGuard/internal/model"
)

var (
	suspiciousKeywords = []string{"secure", "login", "signin", "verify", "account", "update", "confirm", "banking"}
	targetedBrands     = []string{"paypal", "apple", "microsoft", "google", "amazon", "facebook", "netflix"}
	suspiciousTLDs     = map[string]bool{
		"xyz":    true,
		"tk":     true,
		"ml":     true,
		"ga":     true,
		"cf":     true,
		"info":   true,
		"online": true,
		"site":   true,
	}
	redirectParams = []string{"url=", "redirect=", "goto="}

	ipv4Re        = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)
	specialCharRe = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
)

const maxDomainLength = 30
const maxDots = 3

// target holds the parts of a URL the rules look at.
type target struct {
	scheme string
	domain string
	path   string // escaped path plus "?query" when present
}

// Rule is one entry of the detector battery.
//
// Check reports whether the rule triggered and an optional piece of evidence
// that is substituted into Description. Rules with AlwaysEmit set produce a
// Pass entry when they do not trigger; all others stay silent.
type Rule struct {
	ID          string
	Title       string
	Description string
	Status      model.DetectionStatus
	Weight      int
	AlwaysEmit  bool
	Pass        model.DetectionResult
	Check       func(t target) (evidence string, hit bool)
}

// Rules returns the detector battery in display order.
func Rules() []Rule {
	return []Rule{
		{
			ID:          "transport",
			Title:       "Missing SSL Certificate",
			Description: "The site does not use HTTPS encryption to secure data transmission.",
			Status:      model.StatusFailed,
			Weight:      25,
			AlwaysEmit:  true,
			Pass: model.DetectionResult{
				Title:       "Valid HTTPS Connection",
				Description: "The site uses secure HTTPS for data transmission.",
				Status:      model.StatusPassed,
			},
			Check: func(t target) (string, bool) {
				return "", t.scheme != "https"
			},
		},
		{
			ID:          "domain-length",
			Title:       "Suspicious Domain Length",
			Description: "The domain name is unusually long which is often a sign of phishing.",
			Status:      model.StatusFailed,
			Weight:      15,
			AlwaysEmit:  true,
			Pass: model.DetectionResult{
				Title:       "Normal Domain Length",
				Description: "The domain name has a reasonable length.",
				Status:      model.StatusPassed,
			},
			Check: func(t target) (string, bool) {
				return "", len(t.domain) > maxDomainLength
			},
		},
		{
			ID:          "keyword",
			Title:       "Suspicious Keywords in Domain",
			Description: "The domain contains words commonly used in phishing attempts.",
			Status:      model.StatusWarning,
			Weight:      10,
			Check: func(t target) (string, bool) {
				for _, kw := range suspiciousKeywords {
					if strings.Contains(t.domain, kw) {
						return kw, true
					}
				}
				return "", false
			},
		},
		{
			ID:          "brand",
			Title:       "Possible Brand Impersonation",
			Description: "The domain appears to impersonate %s but is not the official domain.",
			Status:      model.StatusFailed,
			Weight:      30,
			Check: func(t target) (string, bool) {
				for _, brand := range targetedBrands {
					if strings.Contains(t.domain, brand) &&
						!strings.Contains(t.domain, brand+".com") &&
						!strings.Contains(t.domain, brand+".org") {
						return strings.ToUpper(brand[:1]) + brand[1:], true
					}
				}
				return "", false
			},
		},
		{
			ID:          "subdomains",
			Title:       "Excessive Subdomains",
			Description: "The URL contains an unusual number of subdomains which is suspicious.",
			Status:      model.StatusWarning,
			Weight:      10,
			Check: func(t target) (string, bool) {
				return "", strings.Count(t.domain, ".") > maxDots
			},
		},
		{
			ID:          "ip-host",
			Title:       "IP Address Used Instead of Domain",
			Description: "The URL uses a numeric IP address instead of a domain name, which is highly suspicious.",
			Status:      model.StatusFailed,
			Weight:      25,
			Check: func(t target) (string, bool) {
				return "", ipv4Re.MatchString(t.domain)
			},
		},
		{
			ID:          "tld",
			Title:       "Suspicious Top-Level Domain",
			Description: "The domain uses .%s which is often associated with free domains used in phishing.",
			Status:      model.StatusWarning,
			Weight:      10,
			Check: func(t target) (string, bool) {
				tld := t.domain[strings.LastIndex(t.domain, ".")+1:]
				return tld, suspiciousTLDs[tld]
			},
		},
		{
			ID:          "special-chars",
			Title:       "Special Characters in Domain",
			Description: "The domain contains special characters which is unusual and suspicious.",
			Status:      model.StatusFailed,
			Weight:      20,
			Check: func(t target) (string, bool) {
				return "", specialCharRe.MatchString(t.domain)
			},
		},
		{
			ID:          "redirect",
			Title:       "URL Redirection Detected",
			Description: "The URL contains redirection parameters which may lead to a malicious site.",
			Status:      model.StatusWarning,
			Weight:      15,
			Check: func(t target) (string, bool) {
				for _, p := range redirectParams {
					if strings.Contains(t.path, p) {
						return p, true
					}
				}
				return "", false
			},
		},
	}
}

// backfill is appended to safe results that show fewer than three passed checks.
var backfill = []model.DetectionResult{
	{
		Title:       "No Known Phishing Indicators",
		Description: "The URL doesn't match known patterns used in phishing attacks.",
		Status:      model.StatusPassed,
	},
	{
		Title:       "Legitimate Domain Structure",
		Description: "The domain structure follows standard naming conventions.",
		Status:      model.StatusPassed,
	},
}
