package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"racer/internal/log"
	"racer/internal/physics"
)

// Environment overrides, applied by Resolve.
const (
	EnvConfig   = "RACER_CONFIG"
	EnvTrack    = "RACER_TRACK"
	EnvLogLevel = "RACER_LOG_LEVEL"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Track   TrackConfig   `yaml:"track"`
	Vehicle VehicleConfig `yaml:"vehicle"`
	Render  RenderConfig  `yaml:"render"`
	Audio   AudioConfig   `yaml:"audio"`
	Log     LogConfig     `yaml:"log"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

type TrackConfig struct {
	Name string `yaml:"name"`
	Dir  string `yaml:"dir"` // empty means the embedded tracks
}

type VehicleConfig struct {
	Friction            float64 `yaml:"friction"`
	EnginePower         float64 `yaml:"engine_power"`
	SteeringSensitivity float64 `yaml:"steering_sensitivity"`
	PivotOffset         float64 `yaml:"pivot_offset"`
	ParticleInterval    float64 `yaml:"particle_interval"`
	ParticleMinSpeed    float64 `yaml:"particle_min_speed"`
	ParticleLife        float64 `yaml:"particle_life"`
	ParticleDecay       float64 `yaml:"particle_decay"`
	ParticleSize        float64 `yaml:"particle_size"`
}

type RenderConfig struct {
	Debug           bool    `yaml:"debug"`
	ShowBounds      bool    `yaml:"show_bounds"`
	ParticleOpacity float64 `yaml:"particle_opacity"`
	MaxParticles    int     `yaml:"max_particles"`
}

type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

func Default() *Config {
	p := physics.DefaultVehicleParams()
	return &Config{
		Window: WindowConfig{
			Width:  1024,
			Height: 768,
			FPS:    60,
			Title:  "racer",
		},
		Track: TrackConfig{Name: "track_1"},
		Vehicle: VehicleConfig{
			Friction:            p.Friction,
			EnginePower:         p.EnginePower,
			SteeringSensitivity: p.SteeringSensitivity,
			PivotOffset:         p.PivotOffset,
			ParticleInterval:    p.ParticleInterval,
			ParticleMinSpeed:    p.ParticleMinSpeed,
			ParticleLife:        p.ParticleLife,
			ParticleDecay:       p.ParticleDecay,
			ParticleSize:        p.ParticleSize,
		},
		Render: RenderConfig{
			ShowBounds:      true,
			ParticleOpacity: 20.0 / 255.0,
			MaxParticles:    physics.MaxParticles,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 44100,
		},
		Log: LogConfig{Level: "info", Encoding: "console"},
	}
}

// Load reads a YAML file and merges it over Default. Unknown keys are errors.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve builds the effective configuration from the environment:
// the file named by RACER_CONFIG (if any), then the single-value overrides.
// getenv is usually os.Getenv.
func Resolve(getenv func(string) string) (*Config, error) {
	cfg := Default()
	if path := getenv(EnvConfig); path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}
	if name := getenv(EnvTrack); name != "" {
		cfg.Track.Name = name
	}
	if lvl := getenv(EnvLogLevel); lvl != "" {
		cfg.Log.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Window.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalidConfig, c.Window.FPS)
	case c.Track.Name == "":
		return fmt.Errorf("%w: empty track name", ErrInvalidConfig)
	case c.Vehicle.Friction <= 0 || c.Vehicle.Friction >= 1:
		return fmt.Errorf("%w: friction %v not in (0, 1)", ErrInvalidConfig, c.Vehicle.Friction)
	case c.Vehicle.SteeringSensitivity <= 0:
		return fmt.Errorf("%w: steering sensitivity %v", ErrInvalidConfig, c.Vehicle.SteeringSensitivity)
	case c.Render.ParticleOpacity < 0 || c.Render.ParticleOpacity > 1:
		return fmt.Errorf("%w: particle opacity %v", ErrInvalidConfig, c.Render.ParticleOpacity)
	case c.Render.MaxParticles <= 0:
		return fmt.Errorf("%w: max particles %d", ErrInvalidConfig, c.Render.MaxParticles)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: volume %v", ErrInvalidConfig, c.Audio.Volume)
	case c.Audio.Enabled && c.Audio.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.Audio.SampleRate)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Log.Encoding != "console" && c.Log.Encoding != "json" {
		return fmt.Errorf("%w: log encoding %q", ErrInvalidConfig, c.Log.Encoding)
	}
	return nil
}

// Params converts the vehicle section for physics.NewVehicle.
func (v VehicleConfig) Params() physics.VehicleParams {
	return physics.VehicleParams{
		Friction:            v.Friction,
		EnginePower:         v.EnginePower,
		SteeringSensitivity: v.SteeringSensitivity,
		PivotOffset:         v.PivotOffset,
		ParticleInterval:    v.ParticleInterval,
		ParticleMinSpeed:    v.ParticleMinSpeed,
		ParticleLife:        v.ParticleLife,
		ParticleDecay:       v.ParticleDecay,
		ParticleSize:        v.ParticleSize,
	}
}
