package version

import "testing"

func TestGetFullVersion(t *testing.T) {
	defer func(v, c, d string) { Version, GitCommit, BuildDate = v, c, d }(Version, GitCommit, BuildDate)

	Version, GitCommit, BuildDate = "1.2.0", "abc123", "2024-05-01"
	expected := "1.2.0 (commit abc123, built 2024-05-01)"
	if got := GetFullVersion(); got != expected {
		t.Errorf("GetFullVersion failed: expected %q, got %q", expected, got)
	}

	Version = "dev"
	if got := GetFullVersion(); got != "dev (abc123)" {
		t.Errorf("GetFullVersion failed: expected %q, got %q", "dev (abc123)", got)
	}
}
