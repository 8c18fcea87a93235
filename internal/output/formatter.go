package output

import (
	"fmt"
	"io"

	"github.com/selimozcann/PhishGuard/internal/model"
	"github.com/selimozcann/PhishGuard/internal/statuscolor"
)

const barWidth = 20

// PrintScanHeader prints the line that opens a target block.
func PrintScanHeader(w io.Writer, idx, total int, url string) {
	fmt.Fprintf(w, "\n[%d/%d] Scanning: %s\n", idx, total, url)
}

// PrintResult prints a full report for one scanned URL.
func PrintResult(w io.Writer, res model.ScanResult) {
	fmt.Fprintf(w, "  Domain:  %s\n", res.Domain)
	fmt.Fprintf(w, "  Verdict: %s %s\n", statuscolor.Sprint(res.ResultStatus), statuscolor.WrapByStatus(res.ResultTitle, res.ResultStatus))
	fmt.Fprintf(w, "           %s\n", statuscolor.Gray(res.ResultSubtitle))
	fmt.Fprintf(w, "  Risk:    %s %d/100\n", statuscolor.ScoreBar(res.RiskScore, barWidth, res.ResultStatus), res.RiskScore)
	fmt.Fprintln(w, "  Findings:")
	for _, d := range res.DetectionResults {
		fmt.Fprintf(w, "    %s %s\n", statuscolor.Mark(d.Status), statuscolor.WrapByDetection(d.Title, d.Status))
		fmt.Fprintf(w, "      %s\n", statuscolor.Gray(d.Description))
	}
}

// PrintSummaryLine prints the one-line form used by --summary.
func PrintSummaryLine(w io.Writer, idx, total int, res model.ScanResult) {
	fmt.Fprintf(w, "[%d/%d] %s | %s | score=%d | failed=%d | warnings=%d\n",
		idx, total, res.URL, statuscolor.Sprint(res.ResultStatus), res.RiskScore,
		res.Count(model.StatusFailed), res.Count(model.StatusWarning))
}

// PrintError prints a target that could not be analyzed.
func PrintError(w io.Writer, url string, err error) {
	fmt.Fprintf(w, "%s\n", statuscolor.WrapByStatus(fmt.Sprintf("  [!] Error at %s: %v", url, err), model.ResultPhishing))
}

// PrintTotals prints the closing counters of a batch.
func PrintTotals(w io.Writer, sum Summary) {
	fmt.Fprintf(w, "\nScanned %d target(s): %s %d  %s %d  %s %d  errors %d\n",
		sum.TotalTargets,
		statuscolor.Sprint(model.ResultSafe), sum.Safe,
		statuscolor.Sprint(model.ResultSuspicious), sum.Suspicious,
		statuscolor.Sprint(model.ResultPhishing), sum.Phishing,
		sum.Errors)
}
