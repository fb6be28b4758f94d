package config

import (
	"encoding/json"
	"log/slog"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// defaults reproduce the reference sweep: Atlanta to nine destinations over
// the summer, one week trips, stored in a local SQLite file.
var defaults = map[string]any{
	"LOG_LEVEL":                   "info",
	"DB_DRIVER":                   "sqlite",
	"DB_DSN":                      "flight_data.sqlite",
	"DB_MAX_OPEN_CONNECTIONS":     10,
	"DB_MAX_IDLE_CONNECTIONS":     2,
	"DB_MAX_CONNECTIONS_LIFETIME": "30m",
	"DB_QUERY_TIMEOUT":            "3s",
	"HTTP_PORT":                   8080,
	"HTTP_TIMEOUT":                "30s",
	"REDIS_DB":                    0,
	"SWEEP_ORIGIN":                "Atlanta",
	"SWEEP_DESTINATIONS":          "Cancun,Las Vegas,Denver,Rome,Milan,Paris,Madrid,Amsterdam,Singapore",
	"SWEEP_RANGE_START":           "2025-05-01",
	"SWEEP_RANGE_END":             "2025-08-15",
	"SWEEP_TRIP_LENGTH_DAYS":      7,
	"SWEEP_LOCK_TIMEOUT":          "24h",
	"SOURCE_VARIANT":              "expedia",
	"SOURCE_TIMEOUT":              "45s",
	"SOURCE_RATE_LIMIT":           0,
	"SOURCE_CACHE_EXPIRATION":     "0s",
	"BROWSER_DRIVER":              "rod",
	"BROWSER_HEADLESS":            true,
	"BROWSER_IMPLICIT_WAIT":       "10s",
}

// LoadConfig initializes configuration from .env file or environment variables.
// If configFile exists, it loads from the file. Otherwise, it automatically binds
// environment variables based on the Config struct's mapstructure tags.
// Environment variables win over the file.
func LoadConfig(configFile string) (Config, error) {
	var (
		vpr = viper.New()
		cfg Config
	)

	for key, value := range defaults {
		vpr.SetDefault(key, value)
	}

	vpr.AutomaticEnv()

	vpr.SetConfigFile(configFile)
	vpr.SetConfigType("env")

	if err := vpr.ReadInConfig(); err != nil {
		slog.Warn("config file not found or cannot be read, using environment variables",
			slog.String("file", configFile),
			slog.String("error", err.Error()))
	} else {
		slog.Info("config file loaded successfully", slog.String("file", configFile))
	}

	// Automatically bind all environment variables from Config struct
	bindEnvFromStruct(vpr)

	if err := vpr.Unmarshal(&cfg); err != nil {
		return Config{}, ErrInvalidConfig.Withf("unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// bindEnvFromStruct automatically binds environment variables based on mapstructure tags using reflection
func bindEnvFromStruct(vpr *viper.Viper) {
	bindEnvFromType(vpr, reflect.TypeOf(Config{}))
}

func bindEnvFromType(vpr *viper.Viper, t reflect.Type) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" || tag == "-" {
			// If it's an embedded struct without a tag, recurse
			if field.Anonymous && field.Type.Kind() == reflect.Struct {
				bindEnvFromType(vpr, field.Type)
			}
			continue
		}

		parts := strings.Split(tag, ",")
		envVar := parts[0]
		isSquash := false
		for _, p := range parts {
			if strings.TrimSpace(p) == "squash" {
				isSquash = true
				break
			}
		}

		if isSquash && field.Type.Kind() == reflect.Struct {
			bindEnvFromType(vpr, field.Type)
			continue
		}

		if envVar == "" {
			continue
		}

		_ = vpr.BindEnv(envVar)

		// If it's an array of struct, check if the value is a JSON string and unmarshal it
		if (field.Type.Kind() == reflect.Slice && field.Type.Elem().Kind() == reflect.Struct) ||
			field.Type.Kind() == reflect.Struct {
			val := vpr.Get(envVar)
			if s, ok := val.(string); ok && s != "" {
				var jsonVal interface{}
				if err := json.Unmarshal([]byte(s), &jsonVal); err == nil {
					vpr.Set(envVar, jsonVal)
				}
			}
		}
	}
}
