package main

import "testing"

func TestRunRejectsMissingFile(t *testing.T) {
	if err := run("/nonexistent/path/does-not-exist.mid"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
