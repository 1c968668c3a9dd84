package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_Usage(t *testing.T) {
	for _, args := range [][]string{nil, {"DisasterResponse.db"}, {"a", "b", "c"}} {
		req := require.New(t)
		var out bytes.Buffer

		code, err := run(args, &out)
		req.NoError(err)
		req.Equal(exitUsage, code)
		req.Contains(out.String(), "Please provide the filepath of the disaster messages database")
	}
}

func TestRun_MissingDatabase(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	t.Setenv("RUNS_FILEPATH", filepath.Join(dir, "runs"))

	code, err := run([]string{filepath.Join(dir, "missing.db"), filepath.Join(dir, "m.gob")}, &bytes.Buffer{})
	req.Error(err)
	req.Equal(exitRuntime, code)
}

func TestRun_InvalidConfig(t *testing.T) {
	req := require.New(t)
	t.Setenv("CV_FOLDS", "1")

	code, err := run([]string{"a.db", "m.gob"}, &bytes.Buffer{})
	req.Error(err)
	req.Equal(exitUsage, code)
}
