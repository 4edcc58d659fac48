package integrators

import (
	"math"
	"testing"

	"github.com/minseo-dev/kinsim/internal/kinet"
)

// decaySystem is d[A]/dt = -[A], the unimolecular decay with k=1.
type decaySystem struct{}

func (d *decaySystem) Derive(c kinet.State, t float64) kinet.State {
	return kinet.State{-c[0]}
}

func (d *decaySystem) Dim() int { return 1 }

// exchangeSystem is A <-> B with kf=2, kr=1.
type exchangeSystem struct{}

func (e *exchangeSystem) Derive(c kinet.State, t float64) kinet.State {
	net := 2*c[0] - c[1]
	return kinet.State{-net, net}
}

func (e *exchangeSystem) Dim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	sys := &decaySystem{}
	integ := NewRK4()

	c := kinet.State{1.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		c = integ.Step(sys, c, float64(i)*dt, dt)
	}

	expected := math.Exp(-1.0)
	if math.Abs(c[0]-expected) > 1e-8 {
		t.Errorf("decay error too large: got %.10f, expected %.10f", c[0], expected)
	}
}

func TestEulerAccuracy(t *testing.T) {
	sys := &decaySystem{}
	integ := NewEuler()

	c := kinet.State{1.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		c = integ.Step(sys, c, float64(i)*dt, dt)
	}

	// First-order scheme: error ~ dt.
	expected := math.Exp(-1.0)
	if math.Abs(c[0]-expected) > 5e-3 {
		t.Errorf("decay error too large: got %.6f, expected %.6f", c[0], expected)
	}
}

func TestRK4ConservesExchange(t *testing.T) {
	sys := &exchangeSystem{}
	integ := NewRK4()

	c := kinet.State{1.0, 0.0}
	dt := 0.01

	for i := 0; i < 1000; i++ {
		c = integ.Step(sys, c, float64(i)*dt, dt)
	}

	if math.Abs(c[0]+c[1]-1.0) > 1e-10 {
		t.Errorf("total concentration drifted: %g", c[0]+c[1])
	}
	// Steady state of kf=2, kr=1 is [A]=1/3, [B]=2/3.
	if math.Abs(c[0]-1.0/3.0) > 1e-6 {
		t.Errorf("[A] at steady state: got %g, want %g", c[0], 1.0/3.0)
	}
}

func TestRK45Adaptive(t *testing.T) {
	sys := &decaySystem{}
	integ := NewRK45()

	c, dtNew, err := integ.StepAdaptive(sys, kinet.State{1.0}, 0, 0.01, 1e-6)
	if err != nil {
		t.Fatal(err)
	}
	if !c.IsValid() {
		t.Fatal("invalid state from adaptive step")
	}
	if dtNew <= 0 {
		t.Errorf("suggested step must be positive, got %g", dtNew)
	}
	if math.Abs(c[0]-math.Exp(-0.01)) > 1e-9 {
		t.Errorf("got %.10f, want %.10f", c[0], math.Exp(-0.01))
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range Names() {
		if _, err := New(name); err != nil {
			t.Errorf("named integrator %q not constructible: %v", name, err)
		}
	}
	if _, err := New("simpson"); err == nil {
		t.Error("expected error for unknown integrator")
	}
	// Empty name selects the default.
	if _, err := New(""); err != nil {
		t.Errorf("default integrator: %v", err)
	}
}
