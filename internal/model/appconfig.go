package model

import "github.com/pkg/errors"

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default optimizer settings applied to new projects
	DefaultRollWidth     int           `json:"default_roll_width"`
	DefaultBackend       Backend       `json:"default_backend"`
	DefaultPricing       PricingMethod `json:"default_pricing"`
	DefaultEpsilon       float64       `json:"default_epsilon"`
	DefaultMaxIterations int           `json:"default_max_iterations"`
	DefaultMaxDuplicates int           `json:"default_max_duplicates"`
	DefaultNodeLimit     int           `json:"default_node_limit"`
	DefaultSnapshotDir   string        `json:"default_snapshot_dir"`

	// Application preferences
	LogLevel       string   `json:"log_level"` // "debug", "info", "warn", "error"
	PricePerRoll   float64  `json:"price_per_roll"`
	WastePercent   float64  `json:"waste_percent"`
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultRollWidth:     100,
		DefaultBackend:       defaults.Backend,
		DefaultPricing:       defaults.Pricing,
		DefaultEpsilon:       defaults.Epsilon,
		DefaultMaxIterations: defaults.MaxIterations,
		DefaultMaxDuplicates: defaults.MaxDuplicates,
		DefaultNodeLimit:     defaults.NodeLimit,
		DefaultSnapshotDir:   defaults.SnapshotDir,
		LogLevel:             "info",
		PricePerRoll:         0,
		WastePercent:         5,
		RecentProjects:       []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a Settings struct.
// This is used when creating a new project so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *Settings) {
	s.Backend = c.DefaultBackend
	s.Pricing = c.DefaultPricing
	s.Epsilon = c.DefaultEpsilon
	s.MaxIterations = c.DefaultMaxIterations
	s.MaxDuplicates = c.DefaultMaxDuplicates
	s.NodeLimit = c.DefaultNodeLimit
	s.SnapshotDir = c.DefaultSnapshotDir
}

// Validate checks the stored defaults. The optimizer defaults must form
// valid Settings and the roll width and epsilon must be positive.
func (c AppConfig) Validate() error {
	if c.DefaultRollWidth <= 0 {
		return errors.Wrapf(ErrInvalidSettings, "default roll width must be positive, got %d", c.DefaultRollWidth)
	}
	if c.DefaultEpsilon <= 0 {
		return errors.Wrapf(ErrInvalidSettings, "default epsilon must be positive, got %g", c.DefaultEpsilon)
	}
	if c.WastePercent < 0 {
		return errors.Wrapf(ErrInvalidSettings, "waste percent must not be negative, got %g", c.WastePercent)
	}
	s := DefaultSettings()
	c.ApplyToSettings(&s)
	return s.Validate()
}

// AddRecentProject moves path to the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentProject(path string, max int) {
	list := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			list = append(list, p)
		}
	}
	if max > 0 && len(list) > max {
		list = list[:max]
	}
	c.RecentProjects = list
}
