// Package config loads confiner and sandbox settings from defaults, a TOML file
// and REGION_CONFINER_* environment overrides, in that order
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/regionconfiner/parameter"
)

// Environment overrides
const (
	EnvTransitionSpeed = "REGION_CONFINER_TRANSITION_SPEED"
	EnvDamping         = "REGION_CONFINER_DAMPING"
	EnvAudioEnabled    = "REGION_CONFINER_AUDIO_ENABLED"
	EnvLogFile         = "REGION_CONFINER_LOG_FILE"
	EnvLogLevel        = "REGION_CONFINER_LOG_LEVEL"
)

// Config holds confiner tuning plus sandbox host settings
type Config struct {
	// TransitionSpeed is hand-off progress per second, floored at 0.1
	TransitionSpeed float64 `toml:"transition_speed"`

	// Damping is seconds for a correction to settle, 0 disables, max 10
	Damping float64 `toml:"damping"`

	Sandbox SandboxConfig `toml:"sandbox"`

	// Adjusted lists fields Normalize clamped during loading
	Adjusted []string `toml:"-"`
}

// SandboxConfig configures cmd/confiner-sandbox
type SandboxConfig struct {
	Audio     bool    `toml:"audio"`
	LogFile   string  `toml:"log_file"`
	LogLevel  string  `toml:"log_level"`
	TickMs    int     `toml:"tick_ms"`
	OrthoSize float64 `toml:"ortho_size"`
	Aspect    float64 `toml:"aspect"`
}

// DefaultConfig returns the baseline configuration
func DefaultConfig() *Config {
	return &Config{
		TransitionSpeed: parameter.TransitionSpeedDefault,
		Damping:         parameter.DampingDefault,
		Sandbox: SandboxConfig{
			Audio:     true,
			LogFile:   "confiner-sandbox.log",
			LogLevel:  "info",
			TickMs:    int(parameter.FrameUpdateInterval / time.Millisecond),
			OrthoSize: 6,
			Aspect:    2,
		},
	}
}

// LoadConfig returns defaults with environment overrides applied
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	cfg.Adjusted = cfg.Normalize()
	return cfg
}

// LoadFile decodes a TOML file over the defaults, then applies the environment
// A missing file is not an error; defaults are used
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		meta, err := toml.DecodeFile(path, cfg)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		default:
			if undecoded := meta.Undecoded(); len(undecoded) > 0 {
				keys := make([]string, len(undecoded))
				for i, k := range undecoded {
					keys[i] = k.String()
				}
				return nil, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
			}
		}
	}
	cfg.ApplyEnv()
	cfg.Adjusted = cfg.Normalize()
	return cfg, nil
}

// ApplyEnv overlays REGION_CONFINER_* variables; unparsable values are ignored
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvTransitionSpeed); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.TransitionSpeed = f
		}
	}
	if v := os.Getenv(EnvDamping); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Damping = f
		}
	}
	if v := os.Getenv(EnvAudioEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Sandbox.Audio = b
		}
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Sandbox.LogFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Sandbox.LogLevel = v
	}
}

// Normalize clamps out-of-range values and returns the names of adjusted fields
func (c *Config) Normalize() []string {
	var adjusted []string

	if math.IsNaN(c.TransitionSpeed) || c.TransitionSpeed < parameter.TransitionSpeedMin {
		c.TransitionSpeed = parameter.TransitionSpeedMin
		adjusted = append(adjusted, "transition_speed")
	}

	switch {
	case math.IsNaN(c.Damping) || c.Damping < parameter.DampingMin:
		c.Damping = parameter.DampingMin
		adjusted = append(adjusted, "damping")
	case c.Damping > parameter.DampingMax:
		c.Damping = parameter.DampingMax
		adjusted = append(adjusted, "damping")
	}

	minTick := int(parameter.FrameUpdateIntervalMin / time.Millisecond)
	if c.Sandbox.TickMs < minTick {
		c.Sandbox.TickMs = minTick
		adjusted = append(adjusted, "sandbox.tick_ms")
	}
	if c.Sandbox.OrthoSize <= 0 {
		c.Sandbox.OrthoSize = DefaultConfig().Sandbox.OrthoSize
		adjusted = append(adjusted, "sandbox.ortho_size")
	}
	if c.Sandbox.Aspect <= 0 {
		c.Sandbox.Aspect = DefaultConfig().Sandbox.Aspect
		adjusted = append(adjusted, "sandbox.aspect")
	}

	return adjusted
}

// TickInterval is the sandbox frame interval
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Sandbox.TickMs) * time.Millisecond
}

// LogLevel parses the sandbox log level, defaulting to Info
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Sandbox.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
