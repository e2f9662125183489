package version

import (
	"strings"
	"testing"
)

func TestCollectDefaults(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	if Collect().Version != "0.1.0-dev" {
		t.Fatalf("default version = %q", Collect().Version)
	}
	Version = "  "
	if got := Collect().Version; got != "dev" {
		t.Fatalf("blank version = %q, want dev", got)
	}
}

func TestCollectTrimsOverrides(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit = " abc123def456\n"
	BuildDate = "2024-01-15T10:30:00Z"
	info := Collect()
	if info.GitCommit != "abc123def456" || info.BuildDate != "2024-01-15T10:30:00Z" || info.GitMessage != "" {
		t.Fatalf("info = %+v", info)
	}
}

func TestBanner(t *testing.T) {
	tests := []struct {
		in    string
		color bool
		plain string
	}{
		{"0.1.0-dev", false, "0.1.0-dev"},
		{"1.2.3", true, "1.2.3"},
		{"1.2.3-rc.1", true, "1.2.3-rc.1"},
		{"nightly", true, "nightly"},
	}
	for _, tt := range tests {
		got := Banner(tt.in, tt.color)
		if stripANSI(got) != tt.plain {
			t.Fatalf("Banner(%q) = %q", tt.in, got)
		}
		colored := strings.Contains(got, "\x1b[")
		if want := tt.color && tt.in != "nightly"; colored != want {
			t.Fatalf("Banner(%q, %v) colored = %v", tt.in, tt.color, colored)
		}
	}
}

func stripANSI(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
