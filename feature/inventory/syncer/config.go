package syncer

import "time"

// Config holds configuration for the sync loop.
type Config struct {
	// Enabled starts the background loop with the server.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// CooldownSeconds is the pause between two phases of a cycle.
	CooldownSeconds int `mapstructure:"cooldown_seconds" default:"60"`
	// IdleSeconds is the pause between two cycles.
	IdleSeconds int `mapstructure:"idle_seconds" default:"300"`
	// ExcludedGroups are group names left out of the projection with their subtrees.
	ExcludedGroups []string `mapstructure:"excluded_groups" default:"NoMark"`
	// Preload builds the projection from three bulk queries instead of one query per node.
	Preload bool `mapstructure:"preload" default:"true"`
}

// Cooldown returns the inter-phase pause.
func (c Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

// Idle returns the pause between cycles.
func (c Config) Idle() time.Duration {
	return time.Duration(c.IdleSeconds) * time.Second
}
