package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil
	default:
		return errors.New("invalid duration")
	}
}

type Log struct {
	File       string `json:"file"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

type Config struct {
	Mode            string   `json:"mode"`
	Addr            string   `json:"addr"`
	BasePath        string   `json:"base_path"`
	SessionTTL      Duration `json:"session_ttl"`
	JanitorInterval Duration `json:"janitor_interval"`
	Log             Log      `json:"log"`
}

func Default() Config {
	return Config{
		Mode:            "development",
		Addr:            ":8080",
		BasePath:        "/v1",
		SessionTTL:      Duration{2 * time.Hour},
		JanitorInterval: Duration{time.Minute},
		Log: Log{
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":             c.Mode,
		"addr":             c.Addr,
		"base_path":        c.BasePath,
		"session_ttl":      c.SessionTTL.String(),
		"janitor_interval": c.JanitorInterval.String(),
		"log_file":         c.Log.File,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

// Load reads the JSON config at path on top of [Default] and then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	config := Default()
	if path != "" {
		if err := ReadConfig(path, &config); err != nil {
			return config, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}
	applyEnv(&config)
	return config, nil
}

func ReadConfig(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else {
		return json.Unmarshal(b, config)
	}
}

func applyEnv(c *Config) {
	if mode, ok := os.LookupEnv("APP_MODE"); ok {
		c.Mode = mode
	}
	if addr, ok := os.LookupEnv("APP_ADDR"); ok {
		c.Addr = addr
	}
	if basePath, ok := os.LookupEnv("APP_BASE_PATH"); ok {
		c.BasePath = basePath
	}
	if file, ok := os.LookupEnv("APP_LOG_FILE"); ok {
		c.Log.File = file
	}
}
