package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/minseo-dev/kinsim/internal/kinet"
)

// Simulator owns one run: it threads the exclusively-owned concentration
// state through the integration loop and collects the time series.
type Simulator struct {
	sys       kinet.System
	integ     kinet.Integrator
	metrics   []kinet.Metric
	observers []kinet.Observer
}

func New(sys kinet.System, integ kinet.Integrator) *Simulator {
	return &Simulator{
		sys:       sys,
		integ:     integ,
		metrics:   make([]kinet.Metric, 0),
		observers: make([]kinet.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m kinet.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o kinet.Observer) { s.observers = append(s.observers, o) }

// Run integrates the system from c0 over [0, TEnd] with fixed step Dt.
// The returned series includes t=0; a partial final step is truncated.
// Negative concentrations produced by truncation error are clamped to
// zero after each step and recorded as warnings. NaN or divergent
// values terminate the run with an InstabilityError carrying the last
// valid state and step index; the partial result is still returned.
func (s *Simulator) Run(ctx context.Context, c0 kinet.State, cfg kinet.Config) (*kinet.Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(c0) != s.sys.Dim() {
		return nil, fmt.Errorf("%w: got %d species, system has %d",
			kinet.ErrDimensionMismatch, len(c0), s.sys.Dim())
	}

	limit := cfg.DivergeLimit
	if limit == 0 {
		limit = kinet.DefaultDivergeLimit
	}

	steps := int(cfg.TEnd/cfg.Dt + 1e-9)
	result := &kinet.Result{
		Times:    make([]float64, 0, steps+1),
		States:   make([]kinet.State, 0, steps+1),
		Warnings: make([]kinet.ClampWarning, 0),
		Metrics:  make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	c := c0.Clone()
	t := 0.0

	result.States = append(result.States, c.Clone())
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(c, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(c, t)
		}

		next := s.integ.Step(s.sys, c, t, cfg.Dt)

		// Concentrations cannot be negative; clamp and record.
		for j, v := range next {
			if v < 0 {
				result.Warnings = append(result.Warnings, kinet.ClampWarning{
					Step: i + 1, Species: j, Value: v,
				})
				next[j] = 0
			}
		}

		if !next.IsValid() || next.MaxAbs() > limit {
			ierr := &kinet.InstabilityError{
				Step: i, Time: t, Last: c.Clone(),
				Cause: instabilityCause(next, limit),
			}
			return result, ierr
		}

		c = next
		t += cfg.Dt
		result.StepsTaken++

		result.States = append(result.States, c.Clone())
		result.Times = append(result.Times, t)
	}

	for _, m := range s.metrics {
		m.Observe(c, t)
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg kinet.Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", kinet.ErrBadRunParams, cfg.Dt)
	}
	if cfg.TEnd <= 0 {
		return fmt.Errorf("%w: t_end must be positive, got %g", kinet.ErrBadRunParams, cfg.TEnd)
	}
	if cfg.TEnd < cfg.Dt {
		return fmt.Errorf("%w: t_end %g shorter than one step %g", kinet.ErrBadRunParams, cfg.TEnd, cfg.Dt)
	}
	return nil
}

func instabilityCause(c kinet.State, limit float64) string {
	for i, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Sprintf("species %d is NaN/Inf", i)
		}
		if math.Abs(v) > limit {
			return fmt.Sprintf("species %d diverged (|%.3e| > %.0e)", i, v, limit)
		}
	}
	return "invalid state"
}
