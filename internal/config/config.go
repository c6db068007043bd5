// Package config loads the host configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration.
type Config struct {
	Typewriter TypewriterConfig `yaml:"typewriter"`
	Save       SaveConfig       `yaml:"save"`
	Log        LogConfig        `yaml:"log"`
	Server     ServerConfig     `yaml:"server"`
}

// TypewriterConfig tunes the dialogue reveal. The reveal rate is cosmetic;
// the debounce window is what keeps one click from double-advancing.
type TypewriterConfig struct {
	RevealInterval  time.Duration `yaml:"reveal_interval"  env:"TYPEWRITER_REVEAL_INTERVAL"  env-default:"40ms"`
	AdvanceDebounce time.Duration `yaml:"advance_debounce" env:"TYPEWRITER_ADVANCE_DEBOUNCE" env-default:"300ms"`
}

// SaveConfig holds save-slot settings. An empty Dir selects the XDG data
// directory at startup.
type SaveConfig struct {
	Dir   string `yaml:"dir"   env:"SAVE_DIR"`
	Slots int    `yaml:"slots" env:"SAVE_SLOTS" env-default:"8"`
}

// LogConfig holds logging settings. The terminal owns stdout, so logs
// default to a file next to the save data.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
	File   string `yaml:"file"   env:"LOG_FILE"`
}

// ServerConfig holds SSH host settings, used only by cmd/server.
type ServerConfig struct {
	Port    int    `yaml:"port"     env:"SERVER_PORT"     env-default:"2222"`
	HostKey string `yaml:"host_key" env:"SERVER_HOST_KEY" env-default:"server_host_key"`
}

// Load reads configuration from path (when the file exists) and then from
// the environment. A missing file is not an error; env defaults apply.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, err
			}
			return &cfg, nil
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
