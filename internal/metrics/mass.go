package metrics

import (
	"math"

	"github.com/minseo-dev/kinsim/internal/kinet"
)

// MassDrift tracks the maximum relative deviation of total molar
// concentration from its initial value. For closed isomerization
// networks this should stay within integration tolerance.
type MassDrift struct {
	name        string
	initialMass float64
	maxDrift    float64
	samples     int
}

func NewMassDrift() *MassDrift {
	return &MassDrift{name: "mass_drift"}
}

func (m *MassDrift) Name() string { return m.name }

func (m *MassDrift) Observe(c kinet.State, t float64) {
	total := c.Total()

	if m.samples == 0 {
		m.initialMass = total
	}
	m.samples++

	if m.initialMass != 0 {
		drift := math.Abs(total-m.initialMass) / math.Abs(m.initialMass)
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *MassDrift) Value() float64 {
	return m.maxDrift
}

func (m *MassDrift) Reset() {
	m.initialMass = 0
	m.maxDrift = 0
	m.samples = 0
}
