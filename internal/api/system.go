package api

import (
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"
)

// systemStats samples this process for the health endpoint.
type systemStats struct {
	started time.Time
	proc    *process.Process
}

func newSystemStats() *systemStats {
	stats := &systemStats{started: time.Now()}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		stats.proc = p
	}
	return stats
}

func (s *systemStats) snapshot(log *slog.Logger) map[string]any {
	out := map[string]any{
		"goroutines": runtime.NumGoroutine(),
		"uptime":     time.Since(s.started).Round(time.Second).String(),
	}
	if s.proc == nil {
		return out
	}

	if mem, err := s.proc.MemoryInfo(); err == nil {
		out["rss_bytes"] = mem.RSS
	} else {
		log.Debug("Failed to read process memory", "err", err)
	}
	if cpu, err := s.proc.CPUPercent(); err == nil {
		out["cpu_percent"] = cpu
	} else {
		log.Debug("Failed to read process cpu", "err", err)
	}
	return out
}
