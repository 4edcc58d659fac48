package integrators

import (
	"testing"

	"github.com/minseo-dev/kinsim/internal/chem"
	"github.com/minseo-dev/kinsim/internal/kinet"
)

func benchNetwork(b *testing.B) (*chem.Network, kinet.State) {
	b.Helper()
	reg := chem.NewRegistry()
	rules, err := chem.ParseSpecs(reg, []chem.Spec{
		{Equation: "A + B <-> C", K: 1.0, Kr: 0.2},
		{Equation: "C -> D", A: 1e7, Ea: 40000},
		{Equation: "D + A -> 2B", K: 0.5},
	})
	if err != nil {
		b.Fatal(err)
	}
	net := chem.NewNetwork(reg, rules, kinet.ConstantTemp(320))
	c, err := reg.InitialVector(map[string]float64{"A": 1.0, "B": 0.8})
	if err != nil {
		b.Fatal(err)
	}
	return net, c
}

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	net, c := benchNetwork(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c = integrator.Step(net, c, 0, 0.001)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	net, c := benchNetwork(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c = integrator.Step(net, c, 0, 0.001)
	}
}

func BenchmarkRK45(b *testing.B) {
	integrator := NewRK45()
	net, c := benchNetwork(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c = integrator.Step(net, c, 0, 0.001)
	}
}
