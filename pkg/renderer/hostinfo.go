package renderer

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// HostInfo describes the machine a render runs on
type HostInfo struct {
	LogicalCPUs int
	TotalMemory uint64 // Bytes
}

// String formats the host info for logs
func (h HostInfo) String() string {
	return fmt.Sprintf("%d logical CPUs, %.1f GiB memory", h.LogicalCPUs, float64(h.TotalMemory)/(1<<30))
}

// GetHostInfo queries CPU and memory totals
func GetHostInfo() (HostInfo, error) {
	cpus, err := cpu.Counts(true)
	if err != nil {
		return HostInfo{}, fmt.Errorf("failed to count CPUs: %w", err)
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return HostInfo{}, fmt.Errorf("failed to read memory info: %w", err)
	}
	return HostInfo{LogicalCPUs: cpus, TotalMemory: vm.Total}, nil
}

// DefaultWorkerCount returns the number of logical CPUs, falling back to the Go runtime's count
func DefaultWorkerCount() int {
	if cpus, err := cpu.Counts(true); err == nil && cpus > 0 {
		return cpus
	}
	return runtime.NumCPU()
}
