package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTemperature = 300.0
	DefaultPopulation  = 80
	DefaultSizeScale   = 1.0
	DefaultDt          = 1.0 / 60
	DefaultDuration    = 10.0
	DefaultWidth       = 320.0
	DefaultHeight      = 200.0
)

type Config struct {
	Temperature float64      `yaml:"temperature"`
	Population  int          `yaml:"population"`
	SizeScale   float64      `yaml:"size_scale"`
	Dt          float64      `yaml:"dt"`
	Duration    float64      `yaml:"duration"`
	Seed        int64        `yaml:"seed"`
	Region      RegionConfig `yaml:"region"`
}

type RegionConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Temperature: DefaultTemperature,
		Population:  DefaultPopulation,
		SizeScale:   DefaultSizeScale,
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		Region: RegionConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
