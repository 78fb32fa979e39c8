package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Probe checks one dependency. Critical probes make the service unhealthy
// when they fail; the others only degrade it.
type Probe struct {
	Name     string
	Critical bool
	Check    func(ctx context.Context) error
}

type HealthChecker struct {
	probes  []Probe
	timeout time.Duration
	started time.Time
}

type HealthStatus struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components"`
	Host       *HostStats                 `json:"host,omitempty"`
	Uptime     string                     `json:"uptime,omitempty"`
}

type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
}

type HostStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsed    string  `json:"memory_used"`
	MemoryTotal   string  `json:"memory_total"`
	DiskPercent   float64 `json:"disk_percent"`
	DiskUsed      string  `json:"disk_used"`
	DiskTotal     string  `json:"disk_total"`
}

func NewHealthChecker(probes ...Probe) *HealthChecker {
	return &HealthChecker{probes: probes, timeout: 2 * time.Second, started: time.Now()}
}

// Add registers another probe before the checker is used.
func (h *HealthChecker) Add(p Probe) {
	h.probes = append(h.probes, p)
}

// CheckBasic runs every probe concurrently.
func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	components := make(map[string]ComponentHealth, len(h.probes))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	status := "healthy"

	for _, p := range h.probes {
		wg.Add(1)
		go func(p Probe) {
			defer wg.Done()
			c := h.run(ctx, p)

			mu.Lock()
			defer mu.Unlock()
			components[p.Name] = c
			if c.Status == "healthy" {
				return
			}
			if p.Critical {
				status = "unhealthy"
			} else if status == "healthy" {
				status = "degraded"
			}
		}(p)
	}
	wg.Wait()

	return HealthStatus{Status: status, Components: components}
}

// CheckDetailed adds host resource usage and uptime to CheckBasic.
func (h *HealthChecker) CheckDetailed(ctx context.Context) HealthStatus {
	status := h.CheckBasic(ctx)
	status.Host = hostStats()
	status.Uptime = time.Since(h.started).Round(time.Second).String()
	return status
}

func (h *HealthChecker) run(ctx context.Context, p Probe) ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	err := p.Check(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return ComponentHealth{Status: "unhealthy", ResponseTime: responseTime, Error: err.Error()}
	}
	return ComponentHealth{Status: "healthy", ResponseTime: responseTime}
}

func hostStats() *HostStats {
	stats := &HostStats{}

	if cpuPercents, err := cpu.Percent(200*time.Millisecond, false); err == nil && len(cpuPercents) > 0 {
		stats.CPUPercent = cpuPercents[0]
	}
	if memStats, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = memStats.UsedPercent
		stats.MemoryUsed = formatBytes(memStats.Used)
		stats.MemoryTotal = formatBytes(memStats.Total)
	}
	if diskStats, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = diskStats.UsedPercent
		stats.DiskUsed = formatBytes(diskStats.Used)
		stats.DiskTotal = formatBytes(diskStats.Total)
	}
	return stats
}

func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
