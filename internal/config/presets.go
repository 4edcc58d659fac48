package config

import "sort"

var Presets = map[string]*Config{
	"decay": {
		Reactions: []Reaction{
			{Equation: "A -> B", K: 1.0},
		},
		Initial:     map[string]float64{"A": 1.0},
		Dt:          0.01,
		TEnd:        10.0,
		Temperature: DefaultTemperature,
		Integrator:  "rk4",
	},
	"equilibrium": {
		Reactions: []Reaction{
			{Equation: "A <-> B", K: 2.0, Kr: 1.0},
		},
		Initial:     map[string]float64{"A": 1.0},
		Dt:          0.01,
		TEnd:        20.0,
		Temperature: DefaultTemperature,
		Integrator:  "rk4",
	},
	"bimolecular": {
		Reactions: []Reaction{
			{Equation: "A + B -> C", K: 0.5},
		},
		Initial:     map[string]float64{"A": 1.0, "B": 0.8},
		Dt:          0.01,
		TEnd:        30.0,
		Temperature: DefaultTemperature,
		Integrator:  "rk4",
	},
	"autocatalysis": {
		Reactions: []Reaction{
			{Equation: "A + B -> 2B", K: 1.0},
			{Equation: "B -> C", K: 0.3},
		},
		Initial:     map[string]float64{"A": 1.0, "B": 0.01},
		Dt:          0.005,
		TEnd:        40.0,
		Temperature: DefaultTemperature,
		Integrator:  "rk4",
	},
	"arrhenius": {
		Reactions: []Reaction{
			{Equation: "A -> B", A: 1e7, Ea: 40000},
		},
		Initial:     map[string]float64{"A": 1.0},
		Dt:          0.01,
		TEnd:        60.0,
		Temperature: 350,
		Schedule: []SchedulePoint{
			{Time: 0, Temp: 300},
			{Time: 30, Temp: 400},
			{Time: 60, Temp: 400},
		},
		Integrator: "rk4",
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
