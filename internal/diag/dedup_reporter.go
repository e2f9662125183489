package diag

import (
	"fmt"

	"typedjs/internal/source"
)

// DedupReporter forwards each (code, span, message) triple once.
// Both annotation grammars may flag the same slice of source; only the first report survives.
type DedupReporter struct {
	Next Reporter
	seen map[string]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{Next: next, seen: make(map[string]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil || r.Next == nil {
		return
	}
	key := fmt.Sprintf("%d|%s|%s", code, primary.String(), msg)
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	r.Next.Report(code, sev, primary, msg, notes, fixes)
}
