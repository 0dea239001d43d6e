package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"inventory-sync/core/database"
	"inventory-sync/core/logger"
	"inventory-sync/core/moysklad"
	"inventory-sync/core/server"
	"inventory-sync/core/storage"
	"inventory-sync/feature/inventory/syncer"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server holds configuration for the HTTP serving adapter.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the relational store.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the projection archive bucket.
	Storage storage.Config `mapstructure:"storage"`
	// MoySklad holds configuration for the inventory API client.
	MoySklad moysklad.Config `mapstructure:"moysklad"`
	// Sync holds configuration for the sync loop.
	Sync syncer.Config `mapstructure:"sync"`
}

// LoadConfig loads configuration from environment variables and the .env
// file found in path, if any.
func LoadConfig(path string) (*Config, error) {
	// Missing .env is normal in production.
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()
	bindValues(v, Config{}, "")

	// SYNC_COOLDOWN_SECONDS -> sync.cooldown_seconds
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.Sync.ExcludedGroups = trimList(cfg.Sync.ExcludedGroups)
	return &cfg, nil
}

// bindValues registers every tagged field with its `default` value so that
// AutomaticEnv can resolve nested keys.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Set even when empty so the key is known to AutomaticEnv.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}

func trimList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
