package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/oscillab/internal/laplace"
	"github.com/san-kum/oscillab/internal/oscillator"
	"github.com/san-kum/oscillab/internal/solver"
)

const (
	DefaultMass      = 1.0
	DefaultDamping   = 2.0
	DefaultStiffness = 10.0
	DefaultAmplitude = 10.0
	DefaultOmega     = 5.0
	DefaultPosition  = 1.0
	DefaultDuration  = 20.0
	DefaultPoints    = 5000
)

type Config struct {
	System  SystemConfig  `yaml:"system"`
	Forcing ForcingConfig `yaml:"forcing"`
	Initial InitialConfig `yaml:"initial"`
	Sim     SimConfig     `yaml:"simulation"`
	Sweep   SweepConfig   `yaml:"sweep"`
}

type SystemConfig struct {
	Mass      float64 `yaml:"mass"`
	Damping   float64 `yaml:"damping"`
	Stiffness float64 `yaml:"stiffness"`
}

type ForcingConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Omega     float64 `yaml:"omega"`
}

type InitialConfig struct {
	Position float64 `yaml:"position"`
	Velocity float64 `yaml:"velocity"`
}

type SimConfig struct {
	Duration float64 `yaml:"duration"`
	Points   int     `yaml:"points"`
}

type SweepConfig struct {
	MaxFreq float64 `yaml:"max_freq"`
	Points  int     `yaml:"points"`
}

func DefaultConfig() *Config {
	return &Config{
		System: SystemConfig{
			Mass:      DefaultMass,
			Damping:   DefaultDamping,
			Stiffness: DefaultStiffness,
		},
		Forcing: ForcingConfig{
			Amplitude: DefaultAmplitude,
			Omega:     DefaultOmega,
		},
		Initial: InitialConfig{
			Position: DefaultPosition,
		},
		Sim: SimConfig{
			Duration: DefaultDuration,
			Points:   DefaultPoints,
		},
		Sweep: SweepConfig{
			MaxFreq: laplace.DefaultMaxFreq,
			Points:  laplace.DefaultPoints,
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

func (c *Config) Params() oscillator.Params {
	return oscillator.Params{
		Mass:      c.System.Mass,
		Damping:   c.System.Damping,
		Stiffness: c.System.Stiffness,
	}
}

func (c *Config) ForcingParams() oscillator.Forcing {
	return oscillator.Forcing{
		Amplitude: c.Forcing.Amplitude,
		Omega:     c.Forcing.Omega,
	}
}

func (c *Config) InitialState() oscillator.Initial {
	return oscillator.Initial{
		Position: c.Initial.Position,
		Velocity: c.Initial.Velocity,
	}
}

func (c *Config) SimSpec() solver.Spec {
	return solver.Spec{
		Duration: c.Sim.Duration,
		Points:   c.Sim.Points,
	}
}

func (c *Config) SweepOptions() laplace.Options {
	return laplace.Options{
		MaxFreq: c.Sweep.MaxFreq,
		Points:  c.Sweep.Points,
	}
}
