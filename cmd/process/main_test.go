package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_Usage(t *testing.T) {
	for _, args := range [][]string{nil, {"messages.csv"}, {"a", "b", "c", "d"}} {
		req := require.New(t)
		var out bytes.Buffer

		code, err := run(args, &out)
		req.NoError(err)
		req.Equal(exitUsage, code)
		req.Contains(out.String(), "Please provide the filepaths")
	}
}

func TestRun(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	messages := filepath.Join(dir, "messages.csv")
	categories := filepath.Join(dir, "categories.csv")
	req.NoError(os.WriteFile(messages, []byte("id,message,original,genre\n1,we need water,,direct\n2,fire in town,,news\n"), 0o600))
	req.NoError(os.WriteFile(categories, []byte("id,categories\n1,related-1;water-1;child_alone-0\n2,related-2;water-0;child_alone-0\n"), 0o600))
	var out bytes.Buffer

	code, err := run([]string{messages, categories, filepath.Join(dir, "DisasterResponse.db")}, &out)
	req.NoError(err)
	req.Equal(exitOK, code)
	req.Contains(out.String(), "Cleaned data saved to database!")
	req.Contains(out.String(), "ROWS: 2")
}

func TestRun_MissingInput(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()

	code, err := run([]string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv"), filepath.Join(dir, "x.db")}, &bytes.Buffer{})
	req.Error(err)
	req.Equal(exitRuntime, code)
}
