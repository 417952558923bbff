package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"trivia-party/internal/domain"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Catalog struct {
		Path string `yaml:"path"`
		TTL  string `yaml:"ttl"`
	} `yaml:"catalog"`
	Game struct {
		TimerDuration int    `yaml:"timer_duration"`
		Difficulty    string `yaml:"difficulty"`
		SoundEnabled  *bool  `yaml:"sound_enabled"`
		MusicEnabled  *bool  `yaml:"music_enabled"`
		DarkMode      bool   `yaml:"dark_mode"`
	} `yaml:"game"`
	Log struct {
		Env string `yaml:"env"`
	} `yaml:"log"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields an empty config.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	return cfg, err
}

// Settings converts the game section, filling unset values from
// domain.DefaultSettings, and validates the result.
func (c Config) Settings() (domain.Settings, error) {
	s := domain.DefaultSettings()
	if c.Game.TimerDuration != 0 {
		s.TimerDuration = c.Game.TimerDuration
	}
	if c.Game.Difficulty != "" {
		s.Difficulty = domain.Difficulty(c.Game.Difficulty)
	}
	if c.Game.SoundEnabled != nil {
		s.SoundEnabled = *c.Game.SoundEnabled
	}
	if c.Game.MusicEnabled != nil {
		s.MusicEnabled = *c.Game.MusicEnabled
	}
	s.DarkMode = c.Game.DarkMode
	if err := s.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return s, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
