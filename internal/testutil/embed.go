package testutil

import (
	"embed"
	"io/fs"
	"path"
	"testing"
)

// TestdataFS holds the embedded RON fixtures.
//
//go:embed testdata
var TestdataFS embed.FS

// Read returns the content of the embedded fixture name and fails the test
// if there is none.
func Read(tb testing.TB, name string) []byte {
	tb.Helper()
	data, err := fs.ReadFile(TestdataFS, path.Join("testdata", name))
	if err != nil {
		tb.Fatalf("failed to read test data file '%s': %v", name, err)
	}
	return data
}

// Names lists the embedded fixtures.
func Names() []string {
	entries, _ := fs.ReadDir(TestdataFS, "testdata")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
