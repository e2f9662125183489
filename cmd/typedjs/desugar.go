package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"typedjs/internal/driver"
	"typedjs/internal/project"
)

var desugarCmd = &cobra.Command{
	Use:   "desugar [flags] <file|directory>",
	Short: "Hoist class fields into constructors",
	Long: `Desugar normalizes type annotations and rewrites class field declarations
into constructor assignments and static assignments after the class.
A single file is printed to stdout unless --out is given; a directory is
written to --out (or [build].out_dir of typedjs.toml).`,
	Args: cobra.ExactArgs(1),
	RunE: runDesugar,
}

func init() {
	desugarCmd.Flags().String("out", "", "output directory")
	desugarCmd.Flags().Bool("preserve-types", false, "keep inline type annotations in output")
	desugarCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	desugarCmd.Flags().Bool("cache", false, "reuse results from the disk cache")
	desugarCmd.Flags().Int("jobs", 0, "max parallel workers for directories (0=auto)")
}

func runDesugar(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	input := args[0]
	outFlag, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiStr)
	if err != nil {
		return err
	}
	opts, manifest, err := loadOptions(cmd, input)
	if err != nil {
		return err
	}

	st, err := os.Stat(input)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	report := reportOptions{format: "pretty"}

	var results []*driver.Result
	if !st.IsDir() {
		res, err := driver.DesugarFile(ctx, input, opts)
		if err != nil {
			return err
		}
		results = []*driver.Result{res}
		if outFlag == "" {
			if err := printDiagnostics(cmd, os.Stderr, results, report); err != nil {
				return err
			}
			if res.Output != nil {
				if _, err := cmd.OutOrStdout().Write(res.Output); err != nil {
					return err
				}
			}
			return finish(cmd, results)
		}
		if err := writeResults(results, filepath.Dir(input), outFlag); err != nil {
			return err
		}
		if err := printDiagnostics(cmd, os.Stderr, results, report); err != nil {
			return err
		}
		return finish(cmd, results)
	}

	outDir := resolveOutDir(outFlag, manifest)
	if outDir == "" {
		return fmt.Errorf("--out is required for directories without typedjs.toml")
	}
	if shouldUseTUI(mode) {
		files, err := driver.ListSources(input)
		if err != nil {
			return err
		}
		results, err = runDirWithUI(ctx, "desugar "+input, input, files, opts)
		if err != nil {
			return err
		}
	} else {
		_, results, err = driver.DesugarDir(ctx, input, opts)
		if err != nil {
			return err
		}
	}
	if err := writeResults(results, input, outDir); err != nil {
		return err
	}
	if err := printDiagnostics(cmd, os.Stderr, results, report); err != nil {
		return err
	}
	printSummary(cmd.ErrOrStderr(), results)
	return finish(cmd, results)
}

func resolveOutDir(flag string, manifest *project.Manifest) string {
	if flag != "" {
		return flag
	}
	if manifest != nil {
		return manifest.OutDir()
	}
	return ""
}

func writeResults(results []*driver.Result, srcRoot, outDir string) error {
	if _, err := driver.WriteOutputs(results, srcRoot, outDir); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// finish prints timings if asked and maps errors to the exit status.
func finish(cmd *cobra.Command, results []*driver.Result) error {
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		printTimings(cmd.ErrOrStderr(), results)
	}
	if hasErrors(results) {
		return errReported
	}
	return nil
}
