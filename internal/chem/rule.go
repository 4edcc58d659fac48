package chem

import (
	"math"

	"github.com/minseo-dev/kinsim/internal/kinet"
)

// RateCoeff is either a fixed rate constant or an Arrhenius pair.
// A non-zero pre-exponential factor A selects Arrhenius resolution.
type RateCoeff struct {
	K  float64 // fixed rate constant
	A  float64 // Arrhenius pre-exponential factor
	Ea float64 // activation energy, J/mol
}

// Arrhenius reports whether the coefficient is temperature dependent.
func (rc RateCoeff) Arrhenius() bool { return rc.A != 0 }

// At resolves the rate constant at temperature T (Kelvin):
// k(T) = A·exp(−Ea/(R·T)) for Arrhenius coefficients, K otherwise.
func (rc RateCoeff) At(T float64) float64 {
	if rc.Arrhenius() {
		return rc.A * math.Exp(-rc.Ea/(kinet.GasConstant*T))
	}
	return rc.K
}

// Term binds a species index to its stoichiometric coefficient.
type Term struct {
	Species int
	Coeff   float64
}

// Rule is one parsed elementary step of the network.
type Rule struct {
	Index      int
	Reactants  []Term
	Products   []Term
	Forward    RateCoeff
	Reversible bool

	// Reverse is the reverse-direction coefficient when given explicitly.
	// When KeqDerived is set the reverse constant is instead computed as
	// k_f(T)/Keq at evaluation time.
	Reverse    RateCoeff
	Keq        float64
	KeqDerived bool
}

// massAction computes k · Π c_i^ν_i over the given terms, clamping
// concentrations at zero before exponentiation so transient negatives
// from integration error cannot produce NaN.
func massAction(k float64, terms []Term, c kinet.State) float64 {
	rate := k
	for _, t := range terms {
		conc := c[t.Species]
		if conc < 0 {
			conc = 0
		}
		rate *= math.Pow(conc, t.Coeff)
	}
	return rate
}

// Rates evaluates the forward and reverse mass-action rates of the rule
// at the given concentrations and temperature. The reverse rate is zero
// for irreversible rules.
func (r *Rule) Rates(c kinet.State, T float64) (fwd, rev float64) {
	fwd = massAction(r.Forward.At(T), r.Reactants, c)
	if !r.Reversible {
		return fwd, 0
	}
	rev = massAction(r.reverseAt(T), r.Products, c)
	return fwd, rev
}

// NetRate is the forward rate minus the reverse rate.
func (r *Rule) NetRate(c kinet.State, T float64) float64 {
	fwd, rev := r.Rates(c, T)
	return fwd - rev
}

func (r *Rule) reverseAt(T float64) float64 {
	if r.KeqDerived {
		return r.Forward.At(T) / r.Keq
	}
	return r.Reverse.At(T)
}

// ReverseConstant resolves k_r at temperature T. It is zero for
// irreversible rules.
func (r *Rule) ReverseConstant(T float64) float64 {
	if !r.Reversible {
		return 0
	}
	return r.reverseAt(T)
}
