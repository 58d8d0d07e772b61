package metrics

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/process"
)

// MemoryProbe reports current memory usage in megabytes.
type MemoryProbe interface {
	UsageMB() uint64
}

// MemoryProbeFunc adapts a function to MemoryProbe.
type MemoryProbeFunc func() uint64

// UsageMB implements MemoryProbe.
func (f MemoryProbeFunc) UsageMB() uint64 { return f() }

// ProcessMemory reads the resident set size of this process from the OS.
// Sampling must not stop the world while physics workers run.
type ProcessMemory struct {
	proc *process.Process
}

// NewProcessMemory resolves the current process. When the process table is
// unavailable the probe falls back to Go heap statistics.
func NewProcessMemory() *ProcessMemory {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return &ProcessMemory{}
	}
	return &ProcessMemory{proc: proc}
}

// UsageMB implements MemoryProbe.
func (m *ProcessMemory) UsageMB() uint64 {
	if m.proc != nil {
		if info, err := m.proc.MemoryInfo(); err == nil && info != nil {
			return info.RSS / 1024 / 1024
		}
	}
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return stats.HeapInuse / 1024 / 1024
}
