package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go.ngs.io/sun-angles/internal/log"
)

func TestRun_WritesResults(t *testing.T) {
	log.SetLogger(zaptest.NewLogger(t))
	dir := t.TempDir()
	in := filepath.Join(dir, "points.csv")
	out := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(in, []byte("lat,lon,time,doy,hour\n0,0,,81,12\n35.68,139.77,2024-06-21T03:00:00Z,,\n"), 0o644))

	require.NoError(t, run(in, out, "mean"))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	assert.Len(t, lines, 3)
}

func TestRun_ReportsInvalidPoint(t *testing.T) {
	log.SetLogger(zaptest.NewLogger(t))
	dir := t.TempDir()
	in := filepath.Join(dir, "points.csv")
	out := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(in, []byte("lat,lon,time,doy,hour\n40,0,,9000,-50\n"), 0o644))

	err := run(in, out, "mean")
	assert.ErrorContains(t, err, "point 1")
	assert.NoFileExists(t, out)
}

func TestWriteResultsFile_CreateError(t *testing.T) {
	err := writeResultsFile(filepath.Join(t.TempDir(), "missing", "results.csv"), nil)
	assert.ErrorContains(t, err, "failed to create output")
}
