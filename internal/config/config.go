package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/minseo-dev/kinsim/internal/chem"
	"github.com/minseo-dev/kinsim/internal/kinet"
)

const (
	DefaultDt          = 0.01
	DefaultTEnd        = 10.0
	DefaultTemperature = 298.15
	DefaultIntegrator  = "rk4"
)

// Reaction is the serializable form of one reaction definition.
type Reaction struct {
	Equation   string  `yaml:"equation"`
	K          float64 `yaml:"k,omitempty"`
	A          float64 `yaml:"a,omitempty"`
	Ea         float64 `yaml:"ea,omitempty"`
	Reversible bool    `yaml:"reversible,omitempty"`
	Kr         float64 `yaml:"kr,omitempty"`
	Ar         float64 `yaml:"ar,omitempty"`
	EaRev      float64 `yaml:"ea_rev,omitempty"`
	Keq        float64 `yaml:"keq,omitempty"`
}

// SchedulePoint is a knot of the temperature-vs-time ramp.
type SchedulePoint struct {
	Time float64 `yaml:"t"`
	Temp float64 `yaml:"temp"`
}

// Config is the persisted form of one simulation setup: the reaction
// network, initial concentrations and run parameters.
type Config struct {
	Reactions   []Reaction         `yaml:"reactions"`
	Initial     map[string]float64 `yaml:"initial"`
	Dt          float64            `yaml:"dt"`
	TEnd        float64            `yaml:"t_end"`
	Temperature float64            `yaml:"temperature"`
	Schedule    []SchedulePoint    `yaml:"schedule,omitempty"`
	Integrator  string             `yaml:"integrator"`
}

func DefaultConfig() *Config {
	return &Config{
		Initial:     make(map[string]float64),
		Dt:          DefaultDt,
		TEnd:        DefaultTEnd,
		Temperature: DefaultTemperature,
		Integrator:  DefaultIntegrator,
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
	if len(cfg.Reactions) == 0 {
		return nil, fmt.Errorf("%s: no reactions defined", path)
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

// Specs converts the serialized reactions to parser input.
func (c *Config) Specs() []chem.Spec {
	specs := make([]chem.Spec, len(c.Reactions))
	for i, r := range c.Reactions {
		specs[i] = chem.Spec{
			Equation:   r.Equation,
			K:          r.K,
			A:          r.A,
			Ea:         r.Ea,
			Reversible: r.Reversible,
			Kr:         r.Kr,
			Ar:         r.Ar,
			EaRev:      r.EaRev,
			Keq:        r.Keq,
		}
	}
	return specs
}

// TempFn builds the temperature schedule: the ramp when points are
// given, otherwise the constant run temperature.
func (c *Config) TempFn() kinet.TempFn {
	if len(c.Schedule) > 0 {
		points := make([]kinet.TempPoint, len(c.Schedule))
		for i, p := range c.Schedule {
			points[i] = kinet.TempPoint{Time: p.Time, Temp: p.Temp}
		}
		return kinet.RampTemp(points)
	}
	T := c.Temperature
	if T <= 0 {
		T = DefaultTemperature
	}
	return kinet.ConstantTemp(T)
}

// RunConfig extracts the integrator run parameters.
func (c *Config) RunConfig() kinet.Config {
	return kinet.Config{Dt: c.Dt, TEnd: c.TEnd}
}
