package main

import "testing"

// TestBuild verifies the package compiles and the build vars have defaults.
func TestBuild(t *testing.T) {
	if version == "" || commit == "" || buildDate == "" {
		t.Fatal("build-time variables must have non-empty defaults")
	}
}
