package metrics

import (
	"math"

	"github.com/minseo-dev/kinsim/internal/kinet"
)

// PeakRate records the largest derivative magnitude (infinity norm of
// dc/dt) seen during a run. A large value relative to 1/dt flags a stiff
// network that would profit from a smaller step or rk45.
type PeakRate struct {
	name string
	sys  kinet.System
	peak float64
}

func NewPeakRate(sys kinet.System) *PeakRate {
	return &PeakRate{name: "peak_rate", sys: sys}
}

func (p *PeakRate) Name() string { return p.name }

func (p *PeakRate) Observe(c kinet.State, t float64) {
	dc := p.sys.Derive(c, t)
	p.peak = math.Max(p.peak, dc.MaxAbs())
}

func (p *PeakRate) Value() float64 {
	return p.peak
}

func (p *PeakRate) Reset() {
	p.peak = 0
}
