package analysis

import (
	"math"

	"github.com/minseo-dev/kinsim/internal/chem"
	"github.com/minseo-dev/kinsim/internal/kinet"
)

// RateProfile evaluates every rule's net rate (forward minus reverse) at
// each point of the series. The outer slice is indexed by rule, the
// inner one by time point.
func RateProfile(res *kinet.Result, net *chem.Network) [][]float64 {
	rules := net.Rules()
	profile := make([][]float64, len(rules))
	for ri, r := range rules {
		row := make([]float64, len(res.States))
		for i, c := range res.States {
			row[i] = r.NetRate(c, net.Temperature(res.Times[i]))
		}
		profile[ri] = row
	}
	return profile
}

// HalfLife returns the first time a species drops to half its initial
// concentration, interpolating linearly between the bracketing points.
// NaN when the initial concentration is zero or the series never gets
// there.
func HalfLife(res *kinet.Result, species int) float64 {
	if len(res.States) == 0 {
		return math.NaN()
	}
	c0 := res.States[0][species]
	if c0 <= 0 {
		return math.NaN()
	}
	half := c0 / 2
	for i := 1; i < len(res.States); i++ {
		cur := res.States[i][species]
		if cur > half {
			continue
		}
		prev := res.States[i-1][species]
		if prev == cur {
			return res.Times[i]
		}
		frac := (prev - half) / (prev - cur)
		return res.Times[i-1] + frac*(res.Times[i]-res.Times[i-1])
	}
	return math.NaN()
}
