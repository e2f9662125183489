package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"typedjs/internal/diagfmt"
	"typedjs/internal/driver"
	"typedjs/internal/typeast"
	"typedjs/internal/typeexpr"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [flags] <type>",
	Short: "Normalize a single type expression",
	Long: `Parse one type expression in the JSDoc (legacy) or inline grammar and
print its canonical form.`,
	Example: `  typedjs normalize 'Array.<?string>'
  typedjs normalize --grammar inline --format tree '(a: number) => void'`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().String("grammar", "legacy", "input grammar (legacy|inline)")
	normalizeCmd.Flags().String("format", "inline", "output format (inline|tree|json)")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	grammarStr, err := cmd.Flags().GetString("grammar")
	if err != nil {
		return fmt.Errorf("failed to get grammar flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	grammar, err := typeexpr.ParseGrammar(grammarStr)
	if err != nil {
		return err
	}
	switch format {
	case "inline", "tree", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	res := driver.NormalizeText(args[0], grammar, maxDiagnostics)
	if res.Bag.Len() > 0 {
		color, err := useColor(cmd, os.Stderr)
		if err != nil {
			return err
		}
		diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{Color: color, ShowNotes: true})
	}
	if res.Type == nil {
		return errReported
	}

	out := cmd.OutOrStdout()
	switch format {
	case "tree":
		fmt.Fprintln(out, typeast.Dump(res.Type))
	case "json":
		data, err := typeast.MarshalJSON(res.Type)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	default:
		if !typeast.InlineRepresentable(res.Type) {
			// печатаем всё равно, но предупреждаем
			fmt.Fprintln(os.Stderr, "warning: type has no exact inline spelling")
		}
		fmt.Fprintln(out, typeast.Print(res.Type))
	}
	return nil
}
