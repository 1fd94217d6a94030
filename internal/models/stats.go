package models

// AdminStats is the aggregate snapshot served on the admin dashboard.
// Computed per request over the full collections; nothing is cached.
type AdminStats struct {
	TotalUsers            int            `json:"total_users"`
	NewUsersThisMonth     int            `json:"new_users_this_month"`
	TotalRoutes           int            `json:"total_routes"`
	NewRoutesThisMonth    int            `json:"new_routes_this_month"`
	TotalCarbonSaved      float64        `json:"total_carbon_saved"`
	CarbonSavedThisMonth  float64        `json:"carbon_saved_this_month"`
	AvgCarbonSaved        float64        `json:"avg_carbon_saved"`
	MostPopularStartPoint string         `json:"most_popular_start_point"`
	MostPopularEndPoint   string         `json:"most_popular_end_point"`
	TransportModes        map[string]int `json:"transport_modes"` // mode -> count, incl. "unknown"
}

// SystemInfo is an informational host snapshot, not application data.
type SystemInfo struct {
	Platform        string  `json:"platform"`
	PlatformVersion string  `json:"platform_version,omitempty"`
	Arch            string  `json:"arch"`
	CPUCount        int     `json:"cpu_count"`
	TotalMemory     uint64  `json:"total_memory_bytes"`
	FreeMemory      uint64  `json:"free_memory_bytes"`
	MemoryUsedPct   float64 `json:"memory_used_pct"`
	HostUptimeSec   uint64  `json:"host_uptime_sec"`
	ProcessUptime   float64 `json:"process_uptime_sec"`
	GoVersion       string  `json:"go_version"`
}
