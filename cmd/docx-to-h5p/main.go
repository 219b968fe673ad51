// Command docx-to-h5p converts quiz-style DOCX documents into H5P
// interactive-content packages, via an inspectable intermediate tree of
// JSON question records.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	docxh5p "github.com/gmixoulis/docx-to-h5p"
	"github.com/gmixoulis/docx-to-h5p/config"
)

var (
	flagConfig           string
	flagVerbose          bool
	flagSkipTranslations bool
)

var rootCmd = &cobra.Command{
	Use:   "docx-to-h5p",
	Short: "Convert quiz-style DOCX documents into H5P packages",
	Long: `docx-to-h5p extracts multiple-choice, true/false, and crossword
questions from DOCX documents and assembles them into .h5p archives.

The two stages are independently invocable: "extract" writes an
intermediate tree of JSON records that can be inspected and hand-edited,
"build" packages that tree, and "run" does both.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(extractCmd, buildCmd, runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadOptions() (docxh5p.Options, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return docxh5p.Options{}, err
	}
	opts := docxh5p.FromConfig(cfg)
	opts.Logger = newLogger()
	opts.SkipTranslations = flagSkipTranslations
	return opts, nil
}

// report prints the end-of-run summary. Warnings go to stderr so that
// stdout stays scriptable.
func report(sum docxh5p.Summary) {
	if len(sum.Warnings) > 0 {
		fmt.Fprintln(os.Stderr, docxh5p.FormatWarnings(sum.Warnings))
	}
	fmt.Printf("documents: %d  records: %d  archives: %d\n",
		sum.Documents, sum.Records, len(sum.Archives))
	for _, name := range sum.Archives {
		fmt.Println("  " + name)
	}
}
