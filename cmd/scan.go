package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/selimozcann/PhishGuard/internal/model"
	"github.com/selimozcann/PhishGuard/internal/output"
	"github.com/selimozcann/PhishGuard/internal/runner"
	"github.com/selimozcann/PhishGuard/internal/scanner"
)

type scanOptions struct {
	file        string
	threads     int
	outputJSONL string
	outputHTML  string
	jsonOut     bool
	summary     bool
	onlyRisky   bool
}

func newScanCmd() *cobra.Command {
	var opts scanOptions
	cmd := &cobra.Command{
		Use:   "scan [url...]",
		Short: "Analyze one or more URLs",
		Example: `  phishguard scan https://example.com/
  phishguard scan -f urls.txt -o results.jsonl --html report.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "File with one URL per line")
	cmd.Flags().IntVarP(&opts.threads, "threads", "t", 0, "Concurrent workers (default from config)")
	cmd.Flags().StringVarP(&opts.outputJSONL, "output", "o", "", "JSONL output file")
	cmd.Flags().StringVar(&opts.outputHTML, "html", "", "HTML report output file")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print results as a JSON array instead of the console view")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Show one-line summary per target")
	cmd.Flags().BoolVar(&opts.onlyRisky, "only-risky", false, "Only print suspicious, phishing or failed targets")
	return cmd
}

func runScan(ctx context.Context, opts scanOptions, args []string) error {
	log := newLogger()
	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if opts.threads < 0 {
		return fmt.Errorf("--threads must be >= 0 (got %d)", opts.threads)
	}
	threads := cfg.Scan.Threads
	if opts.threads > 0 {
		threads = opts.threads
	}

	var fromFile []string
	if opts.file != "" {
		if fromFile, err = scanner.LoadTargets(opts.file); err != nil {
			return err
		}
	}
	targets := scanner.MergeTargets(args, fromFile)
	if len(targets) == 0 {
		return errors.New("no targets: pass URLs as arguments or use -f")
	}
	log.V("targets=%d threads=%d", len(targets), threads)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	outcomes := runner.New(runner.Config{Threads: threads}).Run(ctx, targets)

	var sum output.Summary
	records := make([]output.Record, len(outcomes))
	views := make([]output.ResultView, len(outcomes))
	for i, o := range outcomes {
		sum.Add(o.Result, o.Err)
		records[i] = output.BuildRecord(o.Target, o.Result, o.Err, started)
		views[i] = output.BuildResultView(i, o.Target, o.Result, o.Err)
		if o.Err != nil {
			log.VV("%s: %v", o.Target, o.Err)
		}
	}

	if opts.jsonOut {
		if err := printJSON(outcomes); err != nil {
			return err
		}
	} else {
		printConsole(outcomes, opts)
		output.PrintTotals(os.Stdout, sum)
	}

	if opts.outputJSONL != "" {
		if err := writeJSONLFile(opts.outputJSONL, records); err != nil {
			return err
		}
		log.V("JSONL report -> %s", opts.outputJSONL)
	}
	if opts.outputHTML != "" {
		page := output.PageData{
			Title:       "PhishGuard Report",
			GeneratedAt: started,
			Params:      buildParamsMap(opts, threads, len(targets)),
			Summary:     sum,
			Results:     views,
		}
		if err := writeHTMLFile(opts.outputHTML, page); err != nil {
			return err
		}
		log.V("HTML report -> %s", opts.outputHTML)
	}

	if sum.Errors == sum.TotalTargets {
		return fmt.Errorf("all %d target(s) failed", sum.TotalTargets)
	}
	return nil
}

func printConsole(outcomes []runner.Outcome, opts scanOptions) {
	total := len(outcomes)
	for i, o := range outcomes {
		if opts.onlyRisky && o.Err == nil && o.Result.ResultStatus == model.ResultSafe {
			continue
		}
		if o.Err != nil {
			output.PrintError(os.Stdout, o.Target, o.Err)
			continue
		}
		if opts.summary {
			output.PrintSummaryLine(os.Stdout, i+1, total, o.Result)
			continue
		}
		output.PrintScanHeader(os.Stdout, i+1, total, o.Target)
		output.PrintResult(os.Stdout, o.Result)
	}
}

func printJSON(outcomes []runner.Outcome) error {
	results := make([]model.ScanResult, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err == nil {
			results = append(results, o.Result)
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(results)
}

func buildParamsMap(opts scanOptions, threads, targetCount int) map[string]string {
	params := map[string]string{
		"threads":    strconv.Itoa(threads),
		"targets":    strconv.Itoa(targetCount),
		"summary":    strconv.FormatBool(opts.summary),
		"only_risky": strconv.FormatBool(opts.onlyRisky),
	}
	if opts.file != "" {
		params["file"] = opts.file
	}
	if opts.outputJSONL != "" {
		params["output_jsonl"] = opts.outputJSONL
	}
	if cfgFile != "" {
		params["config"] = cfgFile
	}
	return params
}

func writeJSONLFile(path string, records []output.Record) error {
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("create JSONL directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create JSONL file: %w", err)
	}
	defer f.Close()
	if err := output.WriteJSONL(f, records); err != nil {
		return fmt.Errorf("write JSONL: %w", err)
	}
	return nil
}

func writeHTMLFile(path string, page output.PageData) error {
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("create HTML directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create HTML file: %w", err)
	}
	defer f.Close()
	if err := output.RenderHTML(f, page); err != nil {
		return fmt.Errorf("write HTML: %w", err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
