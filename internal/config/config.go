package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/tcgadvisor/internal/engine"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the top-level YAML structure. Every key is optional.
type Config struct {
	Catalog   string       `yaml:"catalog"`
	Scenarios string       `yaml:"scenarios"`
	Engine    EngineConfig `yaml:"engine"`
	Server    ServerConfig `yaml:"server"`
	Log       LogConfig    `yaml:"log"`
}

type EngineConfig struct {
	Exploration   float64 `yaml:"exploration"`
	SynergyBonus  float64 `yaml:"synergy_bonus"`
	Mode          string  `yaml:"mode"`
	TributePolicy string  `yaml:"tribute_policy"`
	Metrics       bool    `yaml:"metrics"`
}

type ServerConfig struct {
	HTTPPort int `yaml:"http_port"`
	TCPPort  int `yaml:"tcp_port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console | json
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Catalog:   "cards.csv",
		Scenarios: "scenarios.yaml",
		Engine: EngineConfig{
			Exploration:   engine.DefaultExploration,
			SynergyBonus:  engine.DefaultSynergyBonus,
			Mode:          "pure",
			TributePolicy: "lowest_na",
		},
		Server: ServerConfig{
			HTTPPort: 8080,
			TCPPort:  9000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML config file over the defaults and validates it. An empty
// path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := Parse(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping values for absent keys.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config YAML: %w", err)
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	var problems []string
	if _, err := engine.ParseMode(c.Engine.Mode); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := engine.ParseTributePolicy(c.Engine.TributePolicy); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Engine.Exploration < 0 {
		problems = append(problems, fmt.Sprintf("exploration must not be negative, got %g", c.Engine.Exploration))
	}
	if !validPort(c.Server.HTTPPort) {
		problems = append(problems, fmt.Sprintf("http_port out of range: %d", c.Server.HTTPPort))
	}
	if !validPort(c.Server.TCPPort) {
		problems = append(problems, fmt.Sprintf("tcp_port out of range: %d", c.Server.TCPPort))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		problems = append(problems, fmt.Sprintf("log level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("log format %q", c.Log.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func validPort(p int) bool {
	return p > 0 && p <= 65535
}

// EngineOptions maps the engine section to engine options. Call after
// Validate.
func (c *Config) EngineOptions() []engine.Option {
	mode, _ := engine.ParseMode(c.Engine.Mode)
	policy, _ := engine.ParseTributePolicy(c.Engine.TributePolicy)
	opts := []engine.Option{
		engine.WithExploration(c.Engine.Exploration),
		engine.WithSynergyBonus(c.Engine.SynergyBonus),
		engine.WithMode(mode),
		engine.WithTributePolicy(policy),
	}
	if c.Engine.Metrics {
		opts = append(opts, engine.WithMetrics())
	}
	return opts
}

// NewLogger builds a zerolog logger writing to w.
func (l LogConfig) NewLogger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(l.Level))
	if err != nil || l.Level == "" {
		level = zerolog.InfoLevel
	}
	if l.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
