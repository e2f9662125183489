package fuzztests

import (
	"context"
	"testing"
	"time"

	"typedjs/internal/driver"
)

// desugarTimeout is the maximum time allowed for one input.
// Longer runs mean an infinite loop in error recovery.
const desugarTimeout = 5 * time.Second

func FuzzDesugarNoHang(f *testing.F) {
	addProgramSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), desugarTimeout)
		defer cancel()

		done := make(chan *driver.Result, 1)
		go func() {
			res, err := driver.DesugarSource(ctx, "fuzz.tjs", input, driver.Options{MaxDiagnostics: 128})
			if err != nil {
				done <- nil
				return
			}
			done <- res
		}()

		select {
		case res := <-done:
			if res != nil && res.Output == nil && !res.Bag.HasErrors() {
				t.Fatalf("no output and no errors for %q", truncateForLog(input, 200))
			}
		case <-ctx.Done():
			t.Fatalf("desugar hang detected: took longer than %v\ninput (%d bytes): %q",
				desugarTimeout, len(input), truncateForLog(input, 200))
		}
	})
}
