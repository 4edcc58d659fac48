package integrators

import "github.com/minseo-dev/kinsim/internal/kinet"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys kinet.System, c kinet.State, t, dt float64) kinet.State {
	dc := sys.Derive(c, t)
	result := make(kinet.State, len(c))
	for i := range c {
		result[i] = c[i] + dt*dc[i]
	}
	return result
}
