package observability

import (
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Stats is a point in time view of the current process.
type Stats struct {
	RSSBytes   uint64
	CPUPercent float64
	AllocMemMb uint64
	NumGC      uint32
}

// Monitor logs resource usage at each stage boundary of a pipeline run.
type Monitor struct {
	log       *slog.Logger
	proc      *process.Process
	mu        sync.Mutex
	start     time.Time
	lastStage time.Time
}

func NewMonitor(log *slog.Logger) (*Monitor, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Monitor{log: log, proc: p, start: now, lastStage: now}, nil
}

// Snapshot reads RSS and CPU from the OS and allocation figures from the Go runtime.
func (m *Monitor) Snapshot() (Stats, error) {
	memInfo, err := m.proc.MemoryInfo()
	if err != nil {
		return Stats{}, err
	}
	cpuPercent, err := m.proc.CPUPercent()
	if err != nil {
		return Stats{}, err
	}
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return Stats{
		RSSBytes:   memInfo.RSS,
		CPUPercent: cpuPercent,
		AllocMemMb: mem.Alloc / 1024 / 1024,
		NumGC:      mem.NumGC,
	}, nil
}

// LogStage logs the end of a stage with its duration and the current
// resource usage. Extra attributes are appended as is.
func (m *Monitor) LogStage(stage string, attrs ...any) {
	m.mu.Lock()
	now := time.Now()
	elapsed := now.Sub(m.lastStage)
	total := now.Sub(m.start)
	m.lastStage = now
	m.mu.Unlock()

	args := []any{"stage", stage, "elapsed", elapsed, "total", total}
	stats, err := m.Snapshot()
	if err != nil {
		m.log.Warn("Failed to collect process stats", "stage", stage, "err", err)
	} else {
		args = append(args,
			"rss_mb", stats.RSSBytes/1024/1024,
			"cpu_percent", stats.CPUPercent,
			"alloc_mb", stats.AllocMemMb,
			"num_gc", stats.NumGC,
		)
	}
	m.log.Info("Stage done", append(args, attrs...)...)
}
