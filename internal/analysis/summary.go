package analysis

import (
	"math"

	"github.com/minseo-dev/kinsim/internal/chem"
	"github.com/minseo-dev/kinsim/internal/kinet"
)

const (
	// DefaultSteadyEps is the derivative magnitude below which the
	// network counts as settled.
	DefaultSteadyEps = 1e-6

	minSteadyWindow = 10
)

// Equilibrium is the concentration ratio of one reversible rule,
// Keq = Π[product]^ν / Π[reactant]^ν, evaluated at steady state when one
// was detected and at the final time point otherwise.
type Equilibrium struct {
	Rule          int
	Equation      string
	Keq           float64
	AtSteadyState bool
}

// Summary is the post-run digest handed to the presentation collaborator.
type Summary struct {
	Final       map[string]float64
	Equilibria  []Equilibrium
	Conversions map[string]float64

	// SteadyStateIndex is the first series index after which the
	// derivative stays below the convergence threshold for a sustained
	// window, or -1 when the series never settles.
	SteadyStateIndex int
}

// Summarize post-processes a completed time series into final
// concentrations, per-reversible-rule equilibrium ratios and conversion
// fractions. Conversion of a species with zero initial concentration is
// reported as NaN.
func Summarize(res *kinet.Result, net *chem.Network) *Summary {
	reg := net.Registry()
	final := res.Final()

	s := &Summary{
		Final:            make(map[string]float64, reg.Len()),
		Conversions:      make(map[string]float64),
		SteadyStateIndex: SteadyStateIndex(res, net, DefaultSteadyEps),
	}
	for i := 0; i < reg.Len(); i++ {
		s.Final[reg.Name(i)] = final[i]
	}

	at := len(res.States) - 1
	settled := s.SteadyStateIndex >= 0
	if settled {
		at = s.SteadyStateIndex
	}
	for _, r := range net.Rules() {
		if !r.Reversible {
			continue
		}
		s.Equilibria = append(s.Equilibria, Equilibrium{
			Rule:          r.Index,
			Equation:      r.Format(reg),
			Keq:           ConcentrationRatio(r, res.States[at]),
			AtSteadyState: settled,
		})
	}

	initial := res.States[0]
	for _, r := range net.Rules() {
		for _, term := range r.Reactants {
			name := reg.Name(term.Species)
			if _, done := s.Conversions[name]; done {
				continue
			}
			c0 := initial[term.Species]
			if c0 == 0 {
				s.Conversions[name] = math.NaN()
				continue
			}
			s.Conversions[name] = (c0 - final[term.Species]) / c0
		}
	}

	return s
}

// ConcentrationRatio computes Keq for a rule at the given concentrations.
// A zero reactant product yields +Inf (fully converted) or NaN when the
// numerator is also zero.
func ConcentrationRatio(r *chem.Rule, c kinet.State) float64 {
	num := 1.0
	for _, t := range r.Products {
		num *= math.Pow(math.Max(c[t.Species], 0), t.Coeff)
	}
	den := 1.0
	for _, t := range r.Reactants {
		den *= math.Pow(math.Max(c[t.Species], 0), t.Coeff)
	}
	return num / den
}

// SteadyStateIndex scans the series for the first index from which the
// derivative infinity norm stays below eps for a sustained window (5% of
// the series, at least 10 points). Returns -1 when never settled.
func SteadyStateIndex(res *kinet.Result, net *chem.Network, eps float64) int {
	n := len(res.States)
	if n == 0 {
		return -1
	}
	window := n / 20
	if window < minSteadyWindow {
		window = minSteadyWindow
	}
	if window > n {
		window = n
	}

	run := 0
	for i := 0; i < n; i++ {
		dc := net.Derive(res.States[i], res.Times[i])
		if dc.MaxAbs() < eps {
			run++
			if run >= window {
				return i - window + 1
			}
		} else {
			run = 0
		}
	}
	return -1
}
