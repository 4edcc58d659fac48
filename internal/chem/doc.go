// Package chem parses reaction specifications into an executable
// reaction network.
//
// A reaction is written in standard chemical notation:
//
//	2A + B -> C        irreversible, mass-action
//	A <-> B            reversible (also ⇌ or =)
//
// Each [Spec] pairs an equation with rate parameters: a fixed rate
// constant k, or an Arrhenius pair (A, Ea) resolved against the run
// temperature. Reversible rules additionally carry an explicit reverse
// constant or an equilibrium constant Keq from which k_r = k_f/Keq.
//
// Species register themselves in a [Registry] the first time they
// appear in any equation; the [Network] assembled from the parsed rules
// implements [kinet.System] and is immutable once built.
package chem
