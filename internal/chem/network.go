package chem

import "github.com/minseo-dev/kinsim/internal/kinet"

// Network combines parsed rules into the net production-rate function
// over the species-concentration vector. It implements [kinet.System]
// and is read-only after construction, so it may be shared across
// concurrent runs.
type Network struct {
	reg   *Registry
	rules []*Rule
	temp  kinet.TempFn
}

func NewNetwork(reg *Registry, rules []*Rule, temp kinet.TempFn) *Network {
	if temp == nil {
		temp = kinet.ConstantTemp(298.15)
	}
	return &Network{reg: reg, rules: rules, temp: temp}
}

func (n *Network) Dim() int            { return n.reg.Len() }
func (n *Network) Rules() []*Rule      { return n.rules }
func (n *Network) Registry() *Registry { return n.reg }

// Temperature resolves the schedule at time t.
func (n *Network) Temperature(t float64) float64 { return n.temp(t) }

// Derive evaluates d(c)/dt: for every rule the net rate (forward minus
// reverse) scaled by stoichiometric coefficient is subtracted from each
// reactant and added to each product. A species on both sides combines
// additively.
func (n *Network) Derive(c kinet.State, t float64) kinet.State {
	dc := make(kinet.State, len(c))
	T := n.temp(t)
	for _, r := range n.rules {
		net := r.NetRate(c, T)
		for _, term := range r.Reactants {
			dc[term.Species] -= term.Coeff * net
		}
		for _, term := range r.Products {
			dc[term.Species] += term.Coeff * net
		}
	}
	return dc
}
