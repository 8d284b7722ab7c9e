// SPDX-License-Identifier: Unlicense OR MIT

package cast

import "fmt"

// Modifier is a DMA-BUF format modifier, an opaque vendor-defined
// tiling/compression tag negotiated between producer and consumer.
type Modifier uint64

// Format fully describes a negotiated pixel format.
type Format struct {
	Width, Height int
	Alpha         bool
	Modifier      Modifier
	PlaneCount    int
}

// CastStateKind tags the state a Cast's negotiation currently occupies
// (spec §4.8 "Cast negotiation": ResizePending → ConfirmationPending →
// Ready).
type CastStateKind uint8

const (
	StateResizePending CastStateKind = iota
	StateConfirmationPending
	StateReady
)

// CastState is the Cast negotiation state machine. Exactly one of the
// fields below is meaningful, selected by Kind.
type CastState struct {
	Kind CastStateKind

	// ResizePending
	PendingWidth, PendingHeight int

	// ConfirmationPending and Ready share the negotiated format.
	Format Format
}

// ResizePending constructs the initial state for a stream awaiting a
// format at the given size.
func ResizePending(width, height int) CastState {
	return CastState{Kind: StateResizePending, PendingWidth: width, PendingHeight: height}
}

// ExpectedSize returns the size a proposed format must match: the
// pending size in ResizePending, and the negotiated format's size in
// ConfirmationPending and Ready.
func (s CastState) ExpectedSize() (w, h int, ok bool) {
	switch s.Kind {
	case StateResizePending:
		return s.PendingWidth, s.PendingHeight, true
	case StateConfirmationPending, StateReady:
		return s.Format.Width, s.Format.Height, true
	default:
		return 0, 0, false
	}
}

// ModifierResolver finds a concrete modifier and plane count for a
// candidate format by performing a trial allocation — modeled as a
// caller-supplied function since the allocator itself (GBM) is out of
// scope for this module (SPEC_FULL §3 DOMAIN STACK).
type ModifierResolver func(width, height int, alpha bool, candidates []Modifier) (Modifier, int, error)

// FormatProposal is a format proposal received from the stream
// consumer, mirroring the PipeWire `param_changed` payload the
// original negotiation reacts to.
type FormatProposal struct {
	Width, Height int
	Alpha         bool
	// DontFixate is true when the consumer offered a modifier *choice*
	// (an enum of alternatives) rather than a single fixed value,
	// requiring the producer to pick one and move to
	// ConfirmationPending before the consumer re-proposes the fixed
	// choice back (spec §4.8, and the original's DONT_FIXATE pod flag).
	DontFixate         bool
	ModifierCandidates []Modifier
	FixedModifier      Modifier
}

// ErrWrongSize indicates a proposal doesn't match the size the state
// machine is currently waiting for, and should be ignored (the
// consumer is still catching up to a resize already in flight).
var ErrWrongSize = fmt.Errorf("cast: proposed format size does not match expected size")

// ErrUnexpectedChoice indicates ConfirmationPending or Ready rejected
// a re-proposal whose alpha or modifier changed from what was already
// negotiated, without going through a fresh ResizePending.
var ErrUnexpectedChoice = fmt.Errorf("cast: format changed outside of a resize")

// Advance applies a format proposal to the state machine, returning
// the new state. This is the Go rendering of the original's
// param_changed handler: in ResizePending, a wrong size is tolerated
// (still waiting); in any other state a wrong size is an error: the
// producer wasn't expecting the consumer to resize on its own.
func (s CastState) Advance(p FormatProposal, resolve ModifierResolver) (CastState, error) {
	if w, h, ok := s.ExpectedSize(); ok {
		if p.Width != w || p.Height != h {
			if s.Kind == StateResizePending {
				return s, nil // waiting; not yet an error
			}
			return s, ErrWrongSize
		}
	}

	if p.DontFixate {
		modifier, planes, err := resolve(p.Width, p.Height, p.Alpha, p.ModifierCandidates)
		if err != nil {
			return s, fmt.Errorf("cast: fixating modifier: %w", err)
		}
		return CastState{
			Kind: StateConfirmationPending,
			Format: Format{
				Width: p.Width, Height: p.Height, Alpha: p.Alpha,
				Modifier: modifier, PlaneCount: planes,
			},
		}, nil
	}

	if s.Kind == StateConfirmationPending || s.Kind == StateReady {
		if s.Format.Alpha == p.Alpha && s.Format.Modifier == p.FixedModifier {
			ready := s.Format
			ready.Width, ready.Height = p.Width, p.Height
			return CastState{Kind: StateReady, Format: ready}, nil
		}
	}

	// Negotiating a single modifier from scratch, or alpha/modifier
	// changed: a fresh trial allocation is required.
	modifier, planes, err := resolve(p.Width, p.Height, p.Alpha, []Modifier{p.FixedModifier})
	if err != nil {
		return s, fmt.Errorf("cast: test allocation: %w", err)
	}
	return CastState{
		Kind: StateReady,
		Format: Format{
			Width: p.Width, Height: p.Height, Alpha: p.Alpha,
			Modifier: modifier, PlaneCount: planes,
		},
	}, nil
}

// RequestResize transitions back to ResizePending at a new target
// size, used when the compositor itself decides the stream's source
// content changed size (spec §4.8).
func (s CastState) RequestResize(width, height int) (CastState, bool) {
	if s.Kind == StateReady && s.Format.Width == width && s.Format.Height == height {
		return s, false
	}
	return ResizePending(width, height), true
}
