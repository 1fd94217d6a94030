package service

import (
	"context"
	"runtime"
	"time"

	"ecoroute/internal/models"
	"ecoroute/internal/repository"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// transportUnknown buckets routes whose stored mode is missing or invalid.
const transportUnknown = "unknown"

var processStart = time.Now()

// StatsService computes the admin dashboard aggregates. Every call fetches
// the full collections and iterates them; nothing is cached or maintained
// incrementally.
type StatsService struct {
	users  repository.Users
	routes repository.Routes
	now    func() time.Time // injectable clock for tests
}

func NewStatsService(users repository.Users, routes repository.Routes) *StatsService {
	return &StatsService{users: users, routes: routes, now: time.Now}
}

// Overview computes counts, carbon sums, location frequency modes and the
// transport mode distribution over all users and routes.
func (s *StatsService) Overview(ctx context.Context) (models.AdminStats, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return models.AdminStats{}, err
	}
	routes, err := s.routes.List(ctx)
	if err != nil {
		return models.AdminStats{}, err
	}

	monthStart := firstOfMonth(s.now())

	stats := models.AdminStats{
		TotalUsers:     len(users),
		TotalRoutes:    len(routes),
		TransportModes: make(map[string]int, len(models.TransportModes)+1),
	}
	for _, m := range models.TransportModes {
		stats.TransportModes[m] = 0
	}

	for _, u := range users {
		if !u.CreatedAt.Before(monthStart) {
			stats.NewUsersThisMonth++
		}
	}

	startNames := newFrequencyCounter()
	endNames := newFrequencyCounter()
	for _, r := range routes {
		stats.TotalCarbonSaved += r.CarbonSaved
		if !r.CreatedAt.Before(monthStart) {
			stats.NewRoutesThisMonth++
			stats.CarbonSavedThisMonth += r.CarbonSaved
		}

		startNames.add(r.Start.Name)
		endNames.add(r.End.Name)

		if models.ValidTransportMode(r.TransportMode) {
			stats.TransportModes[r.TransportMode]++
		} else {
			stats.TransportModes[transportUnknown]++
		}
	}

	if len(routes) > 0 {
		stats.AvgCarbonSaved = stats.TotalCarbonSaved / float64(len(routes))
	}
	stats.MostPopularStartPoint = startNames.mode()
	stats.MostPopularEndPoint = endNames.mode()

	return stats, nil
}

// ListUsers returns every account for the admin users endpoint. Password
// hashes stay internal; the JSON layer never serializes them.
func (s *StatsService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// System returns a best-effort host snapshot. Probe failures leave the
// corresponding fields zeroed rather than failing the request.
func (s *StatsService) System() models.SystemInfo {
	info := models.SystemInfo{
		Platform:      runtime.GOOS,
		Arch:          runtime.GOARCH,
		CPUCount:      runtime.NumCPU(),
		GoVersion:     runtime.Version(),
		ProcessUptime: time.Since(processStart).Seconds(),
	}
	if h, err := host.Info(); err == nil {
		if h.Platform != "" {
			info.Platform = h.Platform
		}
		info.PlatformVersion = h.PlatformVersion
		info.HostUptimeSec = h.Uptime
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = vm.Total
		info.FreeMemory = vm.Available
		info.MemoryUsedPct = vm.UsedPercent
	}
	return info
}

// firstOfMonth returns midnight on the first day of t's month, in t's
// location. The month window deliberately follows the server clock.
func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// frequencyCounter tracks value counts with first-seen tie-break.
type frequencyCounter struct {
	counts map[string]int
	order  []string
}

func newFrequencyCounter() *frequencyCounter {
	return &frequencyCounter{counts: make(map[string]int)}
}

func (f *frequencyCounter) add(v string) {
	if _, seen := f.counts[v]; !seen {
		f.order = append(f.order, v)
	}
	f.counts[v]++
}

// mode returns the most frequent value; on a tie the one seen first wins.
// Empty string when nothing was counted.
func (f *frequencyCounter) mode() string {
	best, bestCount := "", 0
	for _, v := range f.order {
		if f.counts[v] > bestCount {
			best, bestCount = v, f.counts[v]
		}
	}
	return best
}
