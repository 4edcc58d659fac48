// Package kinet provides core primitives for reaction-network kinetics
// simulation.
//
// The package defines the fundamental interfaces and types for numerical
// integration of chemical rate equations (dc/dt = f(c, t)):
//
//   - [State]: concentration vector, one entry per registered species
//   - [System]: interface for the assembled ODE right-hand side
//   - [Integrator]: fixed-step numerical scheme interface
//   - [TempFn]: temperature-vs-time schedule
//   - [Result]: the complete time series of one run
//
// # Example
//
//	net := chem.NewNetwork(reg, rules, kinet.ConstantTemp(298.15))
//	s := sim.New(net, integrators.NewRK4())
//	result, _ := s.Run(ctx, c0, kinet.DefaultConfig())
//
// # Thread Safety
//
// A run owns its State exclusively. Parsed networks are read-only after
// construction and may be shared across concurrent runs; everything else
// must be per-run.
package kinet
