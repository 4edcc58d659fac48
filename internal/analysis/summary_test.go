package analysis_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/minseo-dev/kinsim/internal/analysis"
	"github.com/minseo-dev/kinsim/internal/chem"
	"github.com/minseo-dev/kinsim/internal/integrators"
	"github.com/minseo-dev/kinsim/internal/kinet"
	"github.com/minseo-dev/kinsim/internal/sim"
)

func runNetwork(specs []chem.Spec, initial map[string]float64, dt, tEnd float64) (*kinet.Result, *chem.Network) {
	reg := chem.NewRegistry()
	rules, err := chem.ParseSpecs(reg, specs)
	Expect(err).NotTo(HaveOccurred())

	net := chem.NewNetwork(reg, rules, kinet.ConstantTemp(298.15))
	c0, err := reg.InitialVector(initial)
	Expect(err).NotTo(HaveOccurred())

	s := sim.New(net, integrators.NewRK4())
	result, err := s.Run(context.Background(), c0, kinet.Config{Dt: dt, TEnd: tEnd})
	Expect(err).NotTo(HaveOccurred())
	return result, net
}

var _ = Describe("Summarize", func() {
	Context("reversible A <-> B with kf=2, kr=1", func() {
		var (
			result *kinet.Result
			net    *chem.Network
			sum    *analysis.Summary
		)

		BeforeEach(func() {
			result, net = runNetwork(
				[]chem.Spec{{Equation: "A <-> B", K: 2.0, Kr: 1.0}},
				map[string]float64{"A": 1.0},
				0.01, 20,
			)
			sum = analysis.Summarize(result, net)
		})

		It("detects a steady state", func() {
			Expect(sum.SteadyStateIndex).To(BeNumerically(">=", 0))
		})

		It("reports Keq near kf/kr", func() {
			Expect(sum.Equilibria).To(HaveLen(1))
			Expect(sum.Equilibria[0].Keq).To(BeNumerically("~", 2.0, 0.01))
			Expect(sum.Equilibria[0].AtSteadyState).To(BeTrue())
		})

		It("reports final concentrations near 1/3 and 2/3", func() {
			Expect(sum.Final["A"]).To(BeNumerically("~", 1.0/3.0, 1e-4))
			Expect(sum.Final["B"]).To(BeNumerically("~", 2.0/3.0, 1e-4))
		})

		It("reports the conversion of A", func() {
			Expect(sum.Conversions["A"]).To(BeNumerically("~", 2.0/3.0, 1e-3))
		})
	})

	Context("reactant with zero initial concentration", func() {
		It("reports NaN instead of failing", func() {
			result, net := runNetwork(
				[]chem.Spec{{Equation: "A -> B", K: 1.0}},
				map[string]float64{},
				0.01, 1,
			)
			sum := analysis.Summarize(result, net)
			Expect(math.IsNaN(sum.Conversions["A"])).To(BeTrue())
		})
	})

	Context("a network still far from equilibrium", func() {
		It("finds no steady state and falls back to the final point", func() {
			result, net := runNetwork(
				[]chem.Spec{{Equation: "A <-> B", K: 2.0, Kr: 1.0}},
				map[string]float64{"A": 1.0},
				0.01, 0.5,
			)
			sum := analysis.Summarize(result, net)
			Expect(sum.SteadyStateIndex).To(Equal(-1))
			Expect(sum.Equilibria[0].AtSteadyState).To(BeFalse())
		})
	})

	Context("irreversible-only network", func() {
		It("has no equilibrium entries", func() {
			result, net := runNetwork(
				[]chem.Spec{{Equation: "A -> B", K: 1.0}},
				map[string]float64{"A": 1.0},
				0.01, 5,
			)
			sum := analysis.Summarize(result, net)
			Expect(sum.Equilibria).To(BeEmpty())
		})
	})
})

var _ = Describe("RateProfile", func() {
	It("starts at the initial mass-action rate and decays", func() {
		result, net := runNetwork(
			[]chem.Spec{{Equation: "A -> B", K: 1.0}},
			map[string]float64{"A": 1.0},
			0.01, 10,
		)
		profile := analysis.RateProfile(result, net)
		Expect(profile).To(HaveLen(1))
		Expect(profile[0][0]).To(BeNumerically("~", 1.0, 1e-12))
		Expect(profile[0][len(profile[0])-1]).To(BeNumerically("<", 1e-3))
	})
})

var _ = Describe("HalfLife", func() {
	It("matches ln2/k for first-order decay", func() {
		result, _ := runNetwork(
			[]chem.Spec{{Equation: "A -> B", K: 1.0}},
			map[string]float64{"A": 1.0},
			0.01, 5,
		)
		Expect(analysis.HalfLife(result, 0)).To(BeNumerically("~", math.Ln2, 1e-4))
	})

	It("is NaN when the species never halves", func() {
		result, _ := runNetwork(
			[]chem.Spec{{Equation: "A -> B", K: 0.01}},
			map[string]float64{"A": 1.0},
			0.01, 1,
		)
		Expect(math.IsNaN(analysis.HalfLife(result, 0))).To(BeTrue())
	})

	It("is NaN for a zero initial concentration", func() {
		result, _ := runNetwork(
			[]chem.Spec{{Equation: "A -> B", K: 1.0}},
			map[string]float64{"A": 1.0},
			0.01, 1,
		)
		Expect(math.IsNaN(analysis.HalfLife(result, 1))).To(BeTrue())
	})
})
