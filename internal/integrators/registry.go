package integrators

import (
	"fmt"

	"github.com/minseo-dev/kinsim/internal/kinet"
)

// New returns the integrator registered under name.
func New(name string) (kinet.Integrator, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4", "":
		return NewRK4(), nil
	case "rk45":
		return NewRK45(), nil
	default:
		return nil, fmt.Errorf("unknown integrator %q (want euler, rk4 or rk45)", name)
	}
}

// Names lists the registered integrator names.
func Names() []string {
	return []string{"euler", "rk4", "rk45"}
}
