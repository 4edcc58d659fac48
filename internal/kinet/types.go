package kinet

import (
	"fmt"
	"math"
)

// GasConstant is the universal gas constant R in J/(mol·K).
const GasConstant = 8.314

// State is a concentration vector, indexed by species registry order.
// Values are in mol/L.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// MaxAbs returns the infinity norm of the vector.
func (s State) MaxAbs() float64 {
	m := 0.0
	for _, v := range s {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

// Total returns the summed molar concentration across all species.
func (s State) Total() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum
}

// TempFn resolves the temperature (Kelvin) at simulation time t.
type TempFn func(t float64) float64

// ConstantTemp returns a schedule that holds T for the whole run.
func ConstantTemp(T float64) TempFn {
	return func(float64) float64 { return T }
}

// TempPoint is one knot of a piecewise-linear temperature ramp.
type TempPoint struct {
	Time float64
	Temp float64
}

// RampTemp builds a piecewise-linear schedule through the given points.
// Before the first point the first temperature holds; after the last
// point the last temperature holds. Points must be sorted by time.
func RampTemp(points []TempPoint) TempFn {
	if len(points) == 0 {
		return ConstantTemp(298.15)
	}
	return func(t float64) float64 {
		if t <= points[0].Time {
			return points[0].Temp
		}
		for i := 1; i < len(points); i++ {
			if t <= points[i].Time {
				p0, p1 := points[i-1], points[i]
				if p1.Time == p0.Time {
					return p1.Temp
				}
				frac := (t - p0.Time) / (p1.Time - p0.Time)
				return p0.Temp + frac*(p1.Temp-p0.Temp)
			}
		}
		return points[len(points)-1].Temp
	}
}

// System is an ODE right-hand side over a concentration vector:
// dc/dt = Derive(c, t). Implementations must be read-only with respect
// to their rule structure once a run begins.
type System interface {
	Derive(c State, t float64) State
	Dim() int
}

// Integrator advances a concentration vector by one fixed step.
type Integrator interface {
	Step(sys System, c State, t, dt float64) State
}

// AdaptiveIntegrator additionally supports error-controlled stepping.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, c State, t, dt, tol float64) (State, float64, error)
}

// Metric accumulates a scalar observation over a run.
type Metric interface {
	Name() string
	Observe(c State, t float64)
	Value() float64
	Reset()
}

// Observer receives every accepted step of a run.
type Observer interface {
	OnStep(c State, t float64)
}

// Config holds the run parameters for one simulation.
type Config struct {
	Dt   float64 // time step, seconds
	TEnd float64 // total simulated time, seconds

	// DivergeLimit is the concentration magnitude treated as divergence.
	// Zero selects the default.
	DivergeLimit float64
}

const DefaultDivergeLimit = 1e12

func DefaultConfig() Config {
	return Config{
		Dt:           0.01,
		TEnd:         10.0,
		DivergeLimit: DefaultDivergeLimit,
	}
}

// ClampWarning records a negative concentration produced by truncation
// error and clamped back to zero. Non-fatal.
type ClampWarning struct {
	Step    int
	Species int
	Value   float64 // the negative value before clamping
}

func (w ClampWarning) String() string {
	return fmt.Sprintf("step %d: species %d clamped from %.3e to 0", w.Step, w.Species, w.Value)
}

// Result is the full output of one simulation run. Times and States
// have equal length and include the initial point at t=0.
type Result struct {
	Times      []float64
	States     []State
	Warnings   []ClampWarning
	StepsTaken int
	Metrics    map[string]float64
}

// Final returns the last concentration vector of the series.
func (r *Result) Final() State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

// Series extracts the trajectory of a single species index.
func (r *Result) Series(i int) []float64 {
	out := make([]float64, len(r.States))
	for j, s := range r.States {
		if i < len(s) {
			out[j] = s[i]
		}
	}
	return out
}
