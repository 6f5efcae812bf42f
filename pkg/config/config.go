package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/liamweeks/raytracer/pkg/renderer"
	"github.com/liamweeks/raytracer/pkg/scene"
)

// EnvPrefix is prepended to every key when read from the environment
const EnvPrefix = "RAYTRACER"

// Config represents the render configuration
type Config struct {
	Scene           string   `yaml:"scene" mapstructure:"scene"`
	Width           int      `yaml:"width" mapstructure:"width"`
	Height          int      `yaml:"height" mapstructure:"height"` // 0 derives it from the camera aspect ratio
	SamplesPerPixel int      `yaml:"samples_per_pixel" mapstructure:"samples_per_pixel"`
	MaxDepth        int      `yaml:"max_depth" mapstructure:"max_depth"`
	MinHitDistance  float64  `yaml:"min_hit_distance" mapstructure:"min_hit_distance"`
	Seed            int64    `yaml:"seed" mapstructure:"seed"`
	Outputs         []string `yaml:"outputs" mapstructure:"outputs"`
	Quiet           bool     `yaml:"quiet" mapstructure:"quiet"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	sampling := renderer.DefaultSamplingConfig()
	return &Config{
		Scene:           "default",
		Width:           sampling.Width,
		SamplesPerPixel: sampling.SamplesPerPixel,
		MaxDepth:        sampling.MaxDepth,
		MinHitDistance:  sampling.MinHitDistance,
		Seed:            42,
		Outputs:         []string{"output.ppm", "output.txt"},
	}
}

// SetDefaults registers the default configuration with v
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("scene", d.Scene)
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("samples_per_pixel", d.SamplesPerPixel)
	v.SetDefault("max_depth", d.MaxDepth)
	v.SetDefault("min_hit_distance", d.MinHitDistance)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("outputs", d.Outputs)
	v.SetDefault("quiet", d.Quiet)
}

// Load reads configuration from defaults, an optional YAML file at path,
// and RAYTRACER_* environment variables, in increasing precedence.
// Flags bound to v before calling Load take precedence over all of them.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error
	if _, err := scene.NewScene(c.Scene); err != nil {
		errs = append(errs, err)
	}
	if len(c.Outputs) == 0 {
		errs = append(errs, errors.New("at least one output must be specified"))
	}
	for _, out := range c.Outputs {
		if strings.TrimSpace(out) == "" {
			errs = append(errs, errors.New("output path cannot be empty"))
		}
	}
	if c.Height < 0 {
		errs = append(errs, fmt.Errorf("height must not be negative, got %d", c.Height))
	}
	if err := c.SamplingConfig().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SamplingConfig converts the configuration to renderer settings
func (c *Config) SamplingConfig() renderer.SamplingConfig {
	height := c.Height
	if height == 0 {
		height = scene.ImageHeight(c.Width, renderer.DefaultCameraConfig().AspectRatio)
	}
	return renderer.SamplingConfig{
		Width:           c.Width,
		Height:          height,
		SamplesPerPixel: c.SamplesPerPixel,
		MaxDepth:        c.MaxDepth,
		MinHitDistance:  c.MinHitDistance,
	}
}

// Save writes the configuration to path as YAML
func Save(config *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
