package observability

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMonitor_Snapshot(t *testing.T) {
	req := require.New(t)
	m, err := NewMonitor(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	req.NoError(err)

	stats, err := m.Snapshot()
	req.NoError(err)
	req.NotZero(stats.RSSBytes)
	req.GreaterOrEqual(stats.CPUPercent, 0.0)
}

func TestMonitor_LogStage(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	m, err := NewMonitor(slog.New(slog.NewTextHandler(&buf, nil)))
	req.NoError(err)

	m.LogStage("load", "rows", 42)
	m.LogStage("clean")

	out := buf.String()
	req.Contains(out, "stage=load")
	req.Contains(out, "rows=42")
	req.Contains(out, "stage=clean")
	req.Contains(out, "rss_mb=")
	req.Equal(2, bytes.Count(buf.Bytes(), []byte("Stage done")))
}
