package model

import "time"

// DetectionStatus is the outcome of a single check.
type DetectionStatus string

const (
	StatusPassed  DetectionStatus = "passed"
	StatusFailed  DetectionStatus = "failed"
	StatusWarning DetectionStatus = "warning"
)

// ResultStatus is the overall classification of a scanned URL.
type ResultStatus string

const (
	ResultSafe       ResultStatus = "safe"
	ResultSuspicious ResultStatus = "suspicious"
	ResultPhishing   ResultStatus = "phishing"
)

// ResultStatuses lists every classification from least to most severe.
var ResultStatuses = []ResultStatus{ResultSafe, ResultSuspicious, ResultPhishing}

// DetectionResult is one rule's finding. Order within a ScanResult is the
// display order.
type DetectionResult struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      DetectionStatus `json:"status"`
}

// ScanResult is the report produced for a single URL.
type ScanResult struct {
	URL              string            `json:"url"`
	Domain           string            `json:"domain"`
	ResultStatus     ResultStatus      `json:"resultStatus"`
	ResultTitle      string            `json:"resultTitle"`
	ResultSubtitle   string            `json:"resultSubtitle"`
	RiskScore        int               `json:"riskScore"`
	DetectionResults []DetectionResult `json:"detectionResults"`
}

// Clone returns a copy that shares no memory with r.
func (r ScanResult) Clone() ScanResult {
	r.DetectionResults = append([]DetectionResult(nil), r.DetectionResults...)
	return r
}

// Count returns how many findings carry the given status.
func (r ScanResult) Count(status DetectionStatus) int {
	n := 0
	for _, d := range r.DetectionResults {
		if d.Status == status {
			n++
		}
	}
	return n
}

// HistoryItem is the compact view of a stored scan.
type HistoryItem struct {
	ID        string       `json:"id"`
	URL       string       `json:"url"`
	Domain    string       `json:"domain"`
	Status    ResultStatus `json:"status"`
	Time      string       `json:"time"`
	ScannedAt time.Time    `json:"scannedAt"`
}

// StatusShare is the number and rounded percentage of scans in one class.
type StatusShare struct {
	Status  ResultStatus `json:"status"`
	Count   int          `json:"count"`
	Percent int          `json:"percent"`
}

// DomainCount is how often a registrable domain was scanned.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// Stats summarises the scans currently held in history.
type Stats struct {
	Total      int           `json:"total"`
	ByStatus   []StatusShare `json:"byStatus"`
	TopDomains []DomainCount `json:"topDomains"`
}
