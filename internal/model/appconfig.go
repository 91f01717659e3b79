package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultKerf         float64 `json:"default_kerf"`          // mm
	DefaultUnit         string  `json:"default_unit"`          // "mm", "cm" or "inch"
	DefaultRespectGrain bool    `json:"default_respect_grain"` // forbid rotating grain-directed parts

	// Offcut reuse thresholds
	MinOffcutDimension float64 `json:"min_offcut_dimension"` // mm
	MinOffcutArea      float64 `json:"min_offcut_area"`      // sq mm

	// Application preferences
	ServerAddr     string   `json:"server_addr"`
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultKerf:         defaults.Kerf,
		DefaultUnit:         defaults.Unit,
		DefaultRespectGrain: defaults.RespectGrain,
		MinOffcutDimension:  MinOffcutDimension,
		MinOffcutArea:       MinOffcutArea,
		ServerAddr:          ":8080",
		RecentProjects:      []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a CutSettings struct.
// This is used when creating a new project so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *CutSettings) {
	s.Kerf = c.DefaultKerf
	s.Unit = c.DefaultUnit
	s.RespectGrain = c.DefaultRespectGrain
}

// maxRecentProjects bounds the recent project list.
const maxRecentProjects = 10

// AddRecentProject moves path to the front of the recent list.
func (c *AppConfig) AddRecentProject(path string) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentProjects {
		recent = recent[:maxRecentProjects]
	}
	c.RecentProjects = recent
}
