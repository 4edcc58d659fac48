package chem

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Spec is the deserialized form of one reaction definition as supplied
// by the configuration collaborator.
type Spec struct {
	Equation string

	// Forward rate: fixed K, or Arrhenius pair (A, Ea).
	K  float64
	A  float64
	Ea float64

	// Reversible marks the reaction reversible even with a plain arrow.
	// A reversible arrow in the equation implies it regardless.
	Reversible bool

	// Reverse rate: explicit Kr or Arrhenius pair (Ar, EaRev), or an
	// equilibrium constant Keq from which k_r = k_f/Keq is derived.
	Kr    float64
	Ar    float64
	EaRev float64
	Keq   float64
}

var arrows = []struct {
	token      string
	reversible bool
}{
	{"<->", true},
	{"⇌", true},
	{"->", false},
	{"=", true},
}

func splitArrow(eq string) (lhs, rhs string, reversible bool, reason string) {
	for _, a := range arrows {
		if !strings.Contains(eq, a.token) {
			continue
		}
		parts := strings.Split(eq, a.token)
		if len(parts) != 2 {
			return "", "", false, fmt.Sprintf("ambiguous separator %q", a.token)
		}
		// A side containing a different arrow means mixed separators.
		for _, p := range parts {
			for _, b := range arrows {
				if b.token != a.token && strings.Contains(p, b.token) {
					return "", "", false, "ambiguous separator (mixed arrows)"
				}
			}
		}
		return parts[0], parts[1], a.reversible, ""
	}
	return "", "", false, "missing separator (expected ->, <->, ⇌ or =)"
}

type rawTerm struct {
	Name  string
	Coeff float64
}

// parseSide splits one side of an equation into raw (name, coeff) terms.
// A term is an optional positive numeric coefficient followed by a
// species name, e.g. "2A", "0.5 H2O", "B".
func parseSide(side string) ([]rawTerm, string) {
	var terms []rawTerm
	for _, raw := range strings.Split(side, "+") {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			return nil, "empty term"
		}
		if strings.HasPrefix(tok, "-") {
			return nil, fmt.Sprintf("negative coefficient in term %q", tok)
		}
		// Split off the leading numeric prefix, if any.
		cut := 0
		for cut < len(tok) && (tok[cut] >= '0' && tok[cut] <= '9' || tok[cut] == '.') {
			cut++
		}
		coeff := 1.0
		if cut > 0 {
			v, err := strconv.ParseFloat(tok[:cut], 64)
			if err != nil {
				return nil, fmt.Sprintf("non-numeric coefficient in term %q", tok)
			}
			coeff = v
		}
		name := strings.TrimSpace(tok[cut:])
		if name == "" {
			return nil, fmt.Sprintf("missing species name in term %q", tok)
		}
		if coeff <= 0 {
			return nil, fmt.Sprintf("non-positive coefficient %g for species %q", coeff, name)
		}
		terms = append(terms, rawTerm{Name: name, Coeff: coeff})
	}
	if len(terms) == 0 {
		return nil, "empty side"
	}
	return terms, ""
}

// ParseSpec parses one reaction spec into a Rule, registering every
// referenced species in reg. Registration is the only side effect.
func ParseSpec(reg *Registry, index int, spec Spec) (*Rule, error) {
	fail := func(reason string) error {
		return &MalformedReactionError{Index: index, Spec: spec.Equation, Reason: reason}
	}

	lhs, rhs, arrowRev, reason := splitArrow(spec.Equation)
	if reason != "" {
		return nil, fail(reason)
	}

	reactants, reason := collectTerms(reg, lhs)
	if reason != "" {
		return nil, fail(reason)
	}
	products, reason := collectTerms(reg, rhs)
	if reason != "" {
		return nil, fail(reason)
	}

	rule := &Rule{
		Index:      index,
		Reactants:  reactants,
		Products:   products,
		Reversible: spec.Reversible || arrowRev,
	}

	switch {
	case spec.A != 0:
		if spec.A < 0 {
			return nil, fail("Arrhenius pre-exponential factor must be positive")
		}
		rule.Forward = RateCoeff{A: spec.A, Ea: spec.Ea}
	case spec.K > 0:
		rule.Forward = RateCoeff{K: spec.K}
	default:
		return nil, fail("missing forward rate (need k > 0 or Arrhenius A/Ea)")
	}

	if rule.Reversible {
		switch {
		case spec.Ar != 0:
			if spec.Ar < 0 {
				return nil, fail("reverse pre-exponential factor must be positive")
			}
			rule.Reverse = RateCoeff{A: spec.Ar, Ea: spec.EaRev}
		case spec.Kr > 0:
			rule.Reverse = RateCoeff{K: spec.Kr}
		case spec.Keq > 0:
			rule.Keq = spec.Keq
			rule.KeqDerived = true
		default:
			return nil, fail("reversible reaction needs a reverse rate constant or an equilibrium constant")
		}
	}

	return rule, nil
}

// collectTerms parses a side and folds duplicate species ("A + A") into
// one term with the summed coefficient.
func collectTerms(reg *Registry, side string) ([]Term, string) {
	raw, reason := parseSide(side)
	if reason != "" {
		return nil, reason
	}
	byIndex := make(map[int]float64)
	order := make([]int, 0, len(raw))
	for _, t := range raw {
		i := reg.Register(t.Name)
		if _, seen := byIndex[i]; !seen {
			order = append(order, i)
		}
		byIndex[i] += t.Coeff
	}
	terms := make([]Term, 0, len(order))
	for _, i := range order {
		terms = append(terms, Term{Species: i, Coeff: byIndex[i]})
	}
	return terms, ""
}

// ParseSpecs parses an ordered list of reaction specs against a shared
// registry, failing fast on the first malformed spec.
func ParseSpecs(reg *Registry, specs []Spec) ([]*Rule, error) {
	rules := make([]*Rule, 0, len(specs))
	for i, s := range specs {
		r, err := ParseSpec(reg, i, s)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// Format renders the rule back to a canonical equation string, e.g.
// "2A + B -> C" or "A <-> B" for reversible rules. Coefficient 1 is
// omitted; terms keep first-seen order.
func (r *Rule) Format(reg *Registry) string {
	arrow := " -> "
	if r.Reversible {
		arrow = " <-> "
	}
	return formatSide(r.Reactants, reg) + arrow + formatSide(r.Products, reg)
}

func formatSide(terms []Term, reg *Registry) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		if t.Coeff == 1 {
			parts = append(parts, reg.Name(t.Species))
		} else {
			parts = append(parts, trimFloat(t.Coeff)+reg.Name(t.Species))
		}
	}
	return strings.Join(parts, " + ")
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SpeciesOf returns the sorted set of species names a rule references.
func (r *Rule) SpeciesOf(reg *Registry) []string {
	seen := make(map[string]bool)
	for _, t := range r.Reactants {
		seen[reg.Name(t.Species)] = true
	}
	for _, t := range r.Products {
		seen[reg.Name(t.Species)] = true
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
