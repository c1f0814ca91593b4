package support

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// ResourceUsage is the wall time and peak resident memory observed around a
// callback.
type ResourceUsage struct {
	Duration   time.Duration
	PeakMemory uint64
}

// String renders "Time: 00:01.234, Memory: 12.00 MB".
func (u ResourceUsage) String() string {
	return fmt.Sprintf("Time: %s, Memory: %s", formatElapsed(u.Duration), formatMemory(u.PeakMemory))
}

// CatchResourceUsage runs fn and reports how long it took and the peak memory
// of the process afterwards. The usage is returned even when fn fails.
func CatchResourceUsage(ctx context.Context, fn func() error) (ResourceUsage, error) {
	start := time.Now()
	err := fn()

	return ResourceUsage{
		Duration:   time.Since(start),
		PeakMemory: PeakMemory(ctx),
	}, err
}

// PeakMemory returns the high-water resident set size of the process, or
// the memory obtained from the OS by the Go runtime when the process table
// cannot be read.
func PeakMemory(ctx context.Context) uint64 {
	p, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err == nil {
		if mem, err := p.MemoryInfoWithContext(ctx); err == nil && mem != nil {
			if peak := max(mem.HWM, mem.RSS); peak > 0 {
				return peak
			}
		}
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.Sys
}

func formatElapsed(d time.Duration) string {
	ms := d.Milliseconds()
	hours := ms / 3_600_000
	minutes := ms / 60_000 % 60
	seconds := ms / 1000 % 60
	millis := ms % 1000

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
	}
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}

func formatMemory(bytes uint64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)

	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}
