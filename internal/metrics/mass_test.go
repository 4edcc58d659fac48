package metrics

import (
	"context"
	"testing"

	"github.com/minseo-dev/kinsim/internal/chem"
	"github.com/minseo-dev/kinsim/internal/integrators"
	"github.com/minseo-dev/kinsim/internal/kinet"
	"github.com/minseo-dev/kinsim/internal/sim"
)

func isomerizationNetwork(t *testing.T) (*chem.Network, kinet.State) {
	t.Helper()
	reg := chem.NewRegistry()
	rules, err := chem.ParseSpecs(reg, []chem.Spec{
		{Equation: "A <-> B", K: 2.0, Kr: 1.0},
	})
	if err != nil {
		t.Fatal(err)
	}
	net := chem.NewNetwork(reg, rules, kinet.ConstantTemp(298.15))
	c0, err := reg.InitialVector(map[string]float64{"A": 1.0})
	if err != nil {
		t.Fatal(err)
	}
	return net, c0
}

func TestMassDriftConservedNetwork(t *testing.T) {
	net, c0 := isomerizationNetwork(t)

	s := sim.New(net, integrators.NewRK4())
	drift := NewMassDrift()
	s.AddMetric(drift)

	result, err := s.Run(context.Background(), c0, kinet.Config{Dt: 0.01, TEnd: 10})
	if err != nil {
		t.Fatal(err)
	}

	if result.Metrics["mass_drift"] > 1e-9 {
		t.Errorf("isomerization should conserve mass, drift = %g", result.Metrics["mass_drift"])
	}
}

func TestMassDriftReset(t *testing.T) {
	m := NewMassDrift()
	m.Observe(kinet.State{1.0}, 0)
	m.Observe(kinet.State{2.0}, 1)

	if m.Value() == 0 {
		t.Fatal("expected non-zero drift")
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("reset should clear the drift")
	}
}

func TestPeakRate(t *testing.T) {
	net, c0 := isomerizationNetwork(t)

	p := NewPeakRate(net)
	p.Observe(c0, 0)

	// At [A]=1, [B]=0 the net rate is kf = 2, so d[A]/dt = -2.
	if got := p.Value(); got != 2.0 {
		t.Errorf("peak rate: got %g, want 2", got)
	}

	// Observing a slower state must not lower the peak.
	p.Observe(kinet.State{0.4, 0.6}, 1)
	if got := p.Value(); got != 2.0 {
		t.Errorf("peak should be monotone, got %g", got)
	}
}
