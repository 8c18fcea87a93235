package output

import (
	"html/template"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/selimozcann/PhishGuard/internal/model"
	"github.com/selimozcann/PhishGuard/internal/util"
)

// Record represents one line in the JSONL report.
type Record struct {
	Timestamp string            `json:"timestamp"`
	InputURL  string            `json:"input_url"`
	Domain    string            `json:"domain,omitempty"`
	Result    *model.ScanResult `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// Summary contains counters for the report header.
type Summary struct {
	TotalTargets int
	Safe         int
	Suspicious   int
	Phishing     int
	Errors       int
}

// Add counts one scanned target.
func (s *Summary) Add(res model.ScanResult, err error) {
	s.TotalTargets++
	if err != nil {
		s.Errors++
		return
	}
	switch res.ResultStatus {
	case model.ResultSafe:
		s.Safe++
	case model.ResultSuspicious:
		s.Suspicious++
	case model.ResultPhishing:
		s.Phishing++
	}
}

// ResultView is used by the HTML template with pre-computed fields.
type ResultView struct {
	Index    int
	InputURL string
	Domain   string
	Status   model.ResultStatus
	Title    string
	Subtitle string
	Score    int
	Findings []model.DetectionResult
	Error    string
}

// PageData provides the full context for the HTML report.
type PageData struct {
	Title         string
	GeneratedAt   time.Time
	Params        map[string]string
	OrderedParams []Param
	Summary       Summary
	Results       []ResultView
}

// Param represents a rendered CLI argument/value pair.
type Param struct {
	Key   string
	Value string
}

// BuildRecord converts the outcome of one target into a Record.
func BuildRecord(target string, res model.ScanResult, err error, at time.Time) Record {
	rec := Record{
		Timestamp: at.UTC().Format(time.RFC3339),
		InputURL:  target,
	}
	if err != nil {
		rec.Domain = util.HostOf(target)
		rec.Error = err.Error()
		return rec
	}
	cp := res.Clone()
	rec.Domain = cp.Domain
	rec.Result = &cp
	return rec
}

// BuildResultView converts the outcome of one target into a ResultView.
func BuildResultView(idx int, target string, res model.ScanResult, err error) ResultView {
	view := ResultView{Index: idx, InputURL: target}
	if err != nil {
		view.Domain = util.HostOf(target)
		view.Error = err.Error()
		return view
	}
	view.Domain = res.Domain
	view.Status = res.ResultStatus
	view.Title = res.ResultTitle
	view.Subtitle = res.ResultSubtitle
	view.Score = res.RiskScore
	view.Findings = append([]model.DetectionResult(nil), res.DetectionResults...)
	return view
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"formatTime": func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
	"upper":      func(s model.ResultStatus) string { return strings.ToUpper(string(s)) },
}).Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
:root { color-scheme: light dark; }
body { font-family: system-ui, -apple-system, Segoe UI, Roboto, sans-serif; margin: 24px; background:#fafafa; color:#111; }
header { margin-bottom: 24px; }
h1 { font-size: 26px; margin: 0 0 8px; }
.section { border:1px solid #e5e7eb; border-radius:16px; padding:16px 20px; margin-bottom:18px; background:#fff; box-shadow:0 1px 2px rgba(15,23,42,0.08); }
h2 { font-size:20px; margin:0 0 12px; }
h3 { font-size:16px; margin:12px 0 6px; }
dt { font-weight:600; }
dd { margin:0 0 8px 0; }
.summary-grid { display:grid; gap:12px; grid-template-columns: repeat(auto-fit,minmax(160px,1fr)); }
.summary-card { display:block; padding:12px; border-radius:12px; border:1px solid #cbd5f5; text-decoration:none; color:inherit; position:relative; }
.summary-card[data-active="true"] { border-color:#4f46e5; box-shadow:0 0 0 2px rgba(79,70,229,0.4); }
.summary-card .badge { position:absolute; top:12px; right:12px; padding:2px 10px; border-radius:999px; background:#4f46e5; color:#fff; font-size:12px; }
.meta { color:#6b7280; font-size:12px; }
.result-row { border-top:1px solid #e5e7eb; padding-top:12px; margin-top:12px; }
.result-row:first-of-type { border-top:none; padding-top:0; margin-top:0; }
.verdict { display:inline-block; padding:2px 8px; border-radius:999px; font-size:12px; margin-left:6px; color:#fff; }
.verdict-safe { background:#16a34a; }
.verdict-suspicious { background:#ca8a04; }
.verdict-phishing { background:#dc2626; }
.finding-list { list-style:none; margin:8px 0; padding:0; }
.finding-list li { margin:4px 0; }
.finding-passed { color:#16a34a; }
.finding-warning { color:#ca8a04; }
.finding-failed { color:#dc2626; }
.mono { font-family: ui-monospace, SFMono-Regular, Menlo, Consolas, monospace; font-size:13px; }
.footer { text-align:center; font-size:12px; color:#6b7280; margin-top:24px; }
@media (prefers-color-scheme: dark) {
        body { background:#0f172a; color:#e2e8f0; }
        .section { background:#1e293b; border-color:#334155; box-shadow:none; }
        .summary-card { border-color:#4338ca; color:#e0e7ff; }
        .meta { color:#94a3b8; }
}
</style>
<script>
document.addEventListener('DOMContentLoaded', function() {
  const cards = document.querySelectorAll('[data-filter]');
  const rows = document.querySelectorAll('.result-row');
  function apply(filter) {
    cards.forEach(c => c.dataset.active = (c.dataset.filter === filter ? 'true' : 'false'));
    rows.forEach(row => {
      row.style.display = (filter === 'all' || row.dataset.status === filter) ? '' : 'none';
    });
  }
  cards.forEach(card => {
    card.addEventListener('click', function (ev) {
      ev.preventDefault();
      apply(card.dataset.filter || 'all');
    });
  });
  apply('all');
});
</script>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <p class="meta">Generated at {{formatTime .GeneratedAt}}</p>
</header>
<section id="summary" class="section">
  <h2>Summary</h2>
  <div class="summary-grid">
    <a class="summary-card" href="#results" data-filter="all"><strong>Total Targets</strong><span class="badge">{{.Summary.TotalTargets}}</span></a>
    <a class="summary-card" href="#results" data-filter="phishing"><strong>Phishing</strong><span class="badge">{{.Summary.Phishing}}</span></a>
    <a class="summary-card" href="#results" data-filter="suspicious"><strong>Suspicious</strong><span class="badge">{{.Summary.Suspicious}}</span></a>
    <a class="summary-card" href="#results" data-filter="safe"><strong>Safe</strong><span class="badge">{{.Summary.Safe}}</span></a>
    <a class="summary-card" href="#results" data-filter="error"><strong>Errors</strong><span class="badge">{{.Summary.Errors}}</span></a>
  </div>
</section>
<section id="parameters" class="section">
  <h2>Parameters</h2>
  <dl>
  {{- range .OrderedParams }}
    <dt>{{.Key}}</dt>
    <dd><span class="mono">{{.Value}}</span></dd>
  {{- end }}
  </dl>
</section>
<section id="results" class="section">
  <h2>Results</h2>
  {{range .Results}}
  <div class="result-row" data-status="{{if .Error}}error{{else}}{{.Status}}{{end}}">
    <h3><span class="mono">{{.InputURL}}</span>{{if not .Error}}<span class="verdict verdict-{{.Status}}">{{upper .Status}} · {{.Score}}/100</span>{{end}}</h3>
    {{if .Domain}}<p class="meta">Domain: <span class="mono">{{.Domain}}</span></p>{{end}}
    {{if .Error}}
      <p class="meta">Error: {{.Error}}</p>
    {{else}}
      <p><strong>{{.Title}}</strong> <span class="meta">{{.Subtitle}}</span></p>
      <ul class="finding-list">
        {{range .Findings}}
          <li class="finding-{{.Status}}"><strong>{{.Title}}</strong> — {{.Description}}</li>
        {{end}}
      </ul>
    {{end}}
  </div>
  {{end}}
</section>
<footer class="footer">
  PhishGuard report generated at {{formatTime .GeneratedAt}}
</footer>
</body>
</html>
`))

// RenderHTML renders the HTML report using the provided data.
func RenderHTML(w io.Writer, data PageData) error {
	if data.Params != nil {
		keys := make([]string, 0, len(data.Params))
		for k := range data.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ordered := make([]Param, 0, len(keys))
		for _, k := range keys {
			ordered = append(ordered, Param{Key: k, Value: data.Params[k]})
		}
		data.OrderedParams = ordered
	}
	return htmlTemplate.Execute(w, data)
}
