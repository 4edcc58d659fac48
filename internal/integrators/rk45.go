package integrators

import (
	"math"

	"github.com/minseo-dev/kinsim/internal/kinet"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// RK45 is useful when a network mixes fast and slow rate constants:
// the embedded error estimate suggests a step size that keeps the stiff
// channel stable.
type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

func (r *RK45) Step(sys kinet.System, c kinet.State, t, dt float64) kinet.State {
	newC, _, _ := r.StepAdaptive(sys, c, t, dt, 1e-6)
	return newC
}

func (r *RK45) StepAdaptive(sys kinet.System, c kinet.State, t, dt, tol float64) (kinet.State, float64, error) {
	n := len(c)

	k1 := sys.Derive(c, t)

	c2 := make(kinet.State, n)
	for i := 0; i < n; i++ {
		c2[i] = c[i] + dt*b21*k1[i]
	}
	k2 := sys.Derive(c2, t+a2*dt)

	c3s := make(kinet.State, n)
	for i := 0; i < n; i++ {
		c3s[i] = c[i] + dt*(b31*k1[i]+b32*k2[i])
	}
	k3 := sys.Derive(c3s, t+a3*dt)

	c4s := make(kinet.State, n)
	for i := 0; i < n; i++ {
		c4s[i] = c[i] + dt*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := sys.Derive(c4s, t+a4*dt)

	c5s := make(kinet.State, n)
	for i := 0; i < n; i++ {
		c5s[i] = c[i] + dt*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := sys.Derive(c5s, t+a5*dt)

	c6s := make(kinet.State, n)
	for i := 0; i < n; i++ {
		c6s[i] = c[i] + dt*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := sys.Derive(c6s, t+dt)

	cNew := make(kinet.State, n)
	for i := 0; i < n; i++ {
		cNew[i] = c[i] + dt*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}

	k7 := sys.Derive(cNew, t+dt)

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := dt * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := math.Abs(c[i]) + math.Abs(dt*k1[i]) + 1e-10
		errMax = math.Max(errMax, math.Abs(errEst)/scale)
	}

	errRatio := errMax / tol

	var dtNew float64
	if errRatio > 1 {
		scale := math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
		dtNew = dt * scale
	} else {
		if errRatio > 0 {
			scale := math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
			dtNew = dt * scale
		} else {
			dtNew = dt * r.maxScale
		}
	}

	return cNew, dtNew, nil
}
