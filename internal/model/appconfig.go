package model

// MaxRecentJobs caps the recent job list kept in the app config.
const MaxRecentJobs = 10

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Measurements applied to new doors
	DefaultDoor DoorConfig `json:"default_door"`

	// Purchasing
	BeadingStockLength float64 `json:"beading_stock_length"` // mm
	WastePercent       float64 `json:"waste_percent"`

	// Application preferences
	OutputDir  string   `json:"output_dir"` // Where exports go when no path is given
	RecentJobs []string `json:"recent_jobs"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching DefaultDoorConfig().
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultDoor:        DefaultDoorConfig(),
		BeadingStockLength: 2400,
		WastePercent:       10,
		OutputDir:          ".",
		RecentJobs:         []string{},
	}
}

// AddRecentJob moves path to the front of the recent list, dropping
// duplicates and anything past MaxRecentJobs.
func (c *AppConfig) AddRecentJob(path string) {
	recent := []string{path}
	for _, p := range c.RecentJobs {
		if p != path && len(recent) < MaxRecentJobs {
			recent = append(recent, p)
		}
	}
	c.RecentJobs = recent
}
