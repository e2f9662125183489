package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"typedjs/internal/driver"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file|directory>",
	Short: "Report diagnostics without writing output",
	Long: `Run the whole desugaring pipeline on a file or on every source file of a
directory and report syntax, type annotation and conversion diagnostics.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiag,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes and fixes in output")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directories (0=auto)")
	diagCmd.Flags().Bool("cache", false, "reuse results from the disk cache")
	diagCmd.Flags().Bool("fix", false, "apply suggested fixes to the source files")
}

func runDiag(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	input := args[0]
	var (
		report reportOptions
		err    error
	)
	if report.format, err = cmd.Flags().GetString("format"); err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if report.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if report.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	switch report.format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", report.format)
	}
	opts, _, err := loadOptions(cmd, input)
	if err != nil {
		return err
	}

	st, err := os.Stat(input)
	if err != nil {
		return err
	}
	var results []*driver.Result
	if st.IsDir() {
		if _, results, err = driver.DesugarDir(cmd.Context(), input, opts); err != nil {
			return fmt.Errorf("diagnosis failed: %w", err)
		}
	} else {
		res, err := driver.DesugarFile(cmd.Context(), input, opts)
		if err != nil {
			return fmt.Errorf("diagnosis failed: %w", err)
		}
		results = []*driver.Result{res}
	}

	if err := printDiagnostics(cmd, os.Stdout, results, report); err != nil {
		return err
	}
	if report.format == "pretty" && st.IsDir() {
		printSummary(cmd.ErrOrStderr(), results)
	}
	if applyFix, _ := cmd.Flags().GetBool("fix"); applyFix {
		if err := applyFixes(cmd.ErrOrStderr(), results); err != nil {
			return fmt.Errorf("applying fixes failed: %w", err)
		}
	}
	return finish(cmd, results)
}
