package chem

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSpecies indicates a reference to a species that was never
	// registered by any reaction.
	ErrUnknownSpecies = errors.New("chem: unknown species")

	// ErrMalformedReaction indicates a structurally invalid reaction spec.
	ErrMalformedReaction = errors.New("chem: malformed reaction")
)

// UnknownSpeciesError names the offending species.
type UnknownSpeciesError struct {
	Name string
}

func (e *UnknownSpeciesError) Error() string {
	return fmt.Sprintf("unknown species %q", e.Name)
}

func (e *UnknownSpeciesError) Unwrap() error {
	return ErrUnknownSpecies
}

// MalformedReactionError carries the offending spec string and its index
// in the input list so callers can point at the bad line.
type MalformedReactionError struct {
	Index  int
	Spec   string
	Reason string
}

func (e *MalformedReactionError) Error() string {
	return fmt.Sprintf("reaction %d %q: %s", e.Index, e.Spec, e.Reason)
}

func (e *MalformedReactionError) Unwrap() error {
	return ErrMalformedReaction
}
