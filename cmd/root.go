package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/selimozcann/PhishGuard/internal/banner"
	"github.com/selimozcann/PhishGuard/internal/config"
	"github.com/selimozcann/PhishGuard/internal/logger"
)

var (
	cfgFile string
	verbose int
	noColor bool
	silent  bool
)

var rootCmd = &cobra.Command{
	Use:   "phishguard",
	Short: "Score URLs for phishing risk",
	Long: `PhishGuard inspects URLs and produces a heuristic risk assessment
(safe / suspicious / phishing) with itemized findings and a 0-100 risk score.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
		if !silent {
			banner.Print(os.Stderr)
		}
	},
}

func Execute() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "Verbose output (-v, -vv)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&silent, "silent", false, "Suppress banner and informational logs")
	rootCmd.AddCommand(newScanCmd(), newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() *logger.Logger {
	if silent {
		return logger.New(logger.LevelQuiet)
	}
	return logger.New(logger.Level(verbose))
}

func loadConfig(log *logger.Logger) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if cfgFile != "" {
		log.V("loaded config from %s", cfgFile)
	}
	return cfg, nil
}
