package monitor

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// reading is one sample of process and system resource usage.
type reading struct {
	processName    string
	processCPU     float64
	rssBytes       uint64
	threads        int32
	goroutines     int
	memUsedPercent float64
	cpuPercent     []float64
}

// source reads resource usage.
type source interface {
	read(ctx context.Context, perCPU bool) (reading, error)
}

// psSource reads from the operating system through gopsutil.
type psSource struct {
	proc *process.Process
}

func newPSSource() (*psSource, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to get process handle: %w", err)
	}
	return &psSource{proc: proc}, nil
}

func (s *psSource) read(ctx context.Context, perCPU bool) (reading, error) {
	r := reading{goroutines: runtime.NumGoroutine()}

	var err error
	if r.processCPU, err = s.proc.CPUPercentWithContext(ctx); err != nil {
		return reading{}, fmt.Errorf("process cpu: %w", err)
	}

	memInfo, err := s.proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return reading{}, fmt.Errorf("process memory: %w", err)
	}
	r.rssBytes = memInfo.RSS

	if r.threads, err = s.proc.NumThreadsWithContext(ctx); err != nil {
		return reading{}, fmt.Errorf("process threads: %w", err)
	}

	if r.processName, err = s.proc.NameWithContext(ctx); err != nil {
		return reading{}, fmt.Errorf("process name: %w", err)
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return reading{}, fmt.Errorf("system memory: %w", err)
	}
	r.memUsedPercent = vm.UsedPercent

	// Zero interval compares against the previous call.
	if r.cpuPercent, err = cpu.PercentWithContext(ctx, 0, perCPU); err != nil {
		return reading{}, fmt.Errorf("system cpu: %w", err)
	}

	return r, nil
}
