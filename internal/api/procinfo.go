package api

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// GetProcessStats returns the CPU time (nanoseconds) and RSS memory (bytes) for a given PID.
func GetProcessStats(ctx context.Context, pid int) (cpuNS int64, rssBytes uint64, err error) {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return 0, 0, err
	}
	times, err := p.TimesWithContext(ctx)
	if err != nil {
		return 0, 0, err
	}
	info, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, 0, err
	}
	cpu := time.Duration((times.User + times.System) * float64(time.Second))
	return cpu.Nanoseconds(), info.RSS, nil
}

// GetSystemMemory returns total and used physical memory in bytes.
func GetSystemMemory(ctx context.Context) (total, used uint64, err error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, err
	}
	return vm.Total, vm.Used, nil
}
