package observ

import (
	"strings"
	"testing"
	"time"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	tm.Track("parse", func() string { return "3 stmts" })
	idx := tm.Begin("hoist")
	tm.End(idx, "")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "parse" || r.Phases[0].Note != "3 stmts" {
		t.Fatalf("report = %+v", r)
	}
	if r.Phases[0].DurationMS != 1 || r.TotalMS != 2 {
		t.Fatalf("durations = %+v", r)
	}
	sum := tm.Summary()
	if !strings.Contains(sum, "parse") || !strings.Contains(sum, "// 3 stmts") || !strings.Contains(sum, "total") {
		t.Fatalf("summary:\n%s", sum)
	}
}

func TestReportAdd(t *testing.T) {
	var total Report
	total.Add(Report{TotalMS: 3, Phases: []PhaseReport{{Name: "parse", DurationMS: 1}, {Name: "print", DurationMS: 2}}})
	total.Add(Report{TotalMS: 4, Phases: []PhaseReport{{Name: "parse", DurationMS: 4}}})
	if total.TotalMS != 7 || len(total.Phases) != 2 || total.Phases[0].DurationMS != 5 {
		t.Fatalf("total = %+v", total)
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("empty report = %+v", r)
	}
}
