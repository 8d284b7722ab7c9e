// SPDX-License-Identifier: Unlicense OR MIT

package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sciurus-wm/corium/cast"
	"github.com/sciurus-wm/corium/wm"
)

// stubModifierResolver is a placeholder DMA-BUF trial allocator: it
// accepts the first candidate modifier (or the implicit modifier 0
// when the consumer offered none) with a single plane, performing no
// allocation at all. A real backend satisfies cast.ModifierResolver
// with a GBM trial allocation; no GBM/DRM binding exists anywhere in
// the retrieved pack (SPEC_FULL §3 DOMAIN STACK; DESIGN.md's cast/state
// entry).
func stubModifierResolver(width, height int, alpha bool, candidates []cast.Modifier) (cast.Modifier, int, error) {
	if len(candidates) == 0 {
		return 0, 1, nil
	}
	return candidates[0], 1, nil
}

// instantFence is a placeholder Fence that is always already
// signalled, standing in for a real GPU sync point until a renderer
// exists to produce one (spec §4.8 "Buffer lifecycle").
type instantFence struct{}

func (instantFence) Reached() bool { return true }

// screencastSession drives one output's screencast stream end to end
// — format negotiation, the frame-pacing gate, and the buffer
// pipeline — tied to the compositor's own frame tick (spec §4.8).
// dequeueing and rendering into a real DMA-BUF is out of scope (spec
// §1 "the GLES renderer itself"), so this stub only exercises the
// state machine and bookkeeping every real cast goes through.
type screencastSession struct {
	cast    *cast.Cast
	nextBuf cast.BufferHandle
}

func outputName(id wm.OutputID) string {
	return fmt.Sprintf("output-%d", id)
}

// newScreencastSession creates a stream targeting output and registers
// it in registry, awaiting its first format proposal.
func newScreencastSession(registry *cast.Registry, output *wm.Output) *screencastSession {
	size := output.Area.Size()
	c := cast.NewCast(cast.NewSessionID(), cast.NewStreamID(),
		cast.Target{Kind: cast.TargetOutput, OutputName: outputName(output.ID)},
		cast.CursorMetadata, int(size.X), int(size.Y))
	registry.Register(c)
	return &screencastSession{cast: c}
}

// negotiate feeds a synthetic consumer format proposal through the
// cast's state machine, standing in for the multimedia bus's real
// param_changed callback (spec §4.8) until one is wired up.
func (s *screencastSession) negotiate(width, height int, refreshMillihz uint32) error {
	if err := s.cast.Negotiate(cast.FormatProposal{
		Width: width, Height: height, FixedModifier: 0,
	}, stubModifierResolver); err != nil {
		return err
	}
	s.cast.SetRefresh(refreshMillihz)
	return nil
}

// renderFrame gates, then dequeues/renders/queues one frame if the
// cast is ready and not currently throttled (spec §4.8 "Frame pacing"
// and "Buffer lifecycle").
func (s *screencastSession) renderFrame(now time.Duration, log zerolog.Logger) {
	if !s.cast.IsReady() {
		return
	}

	skip, deadline, token := s.cast.CheckTimeAndSchedule(now)
	if skip {
		log.Debug().
			Dur("deadline", deadline).
			Uint64("token", uint64(token)).
			Msg("cast frame throttled, redraw scheduled")
		return
	}

	buf := s.nextBuf
	s.nextBuf++
	s.cast.Pipeline().BeginRender(buf, instantFence{})
	for _, ready := range s.cast.Pipeline().ReadyToQueue() {
		seq := s.cast.Pipeline().MarkGood()
		log.Debug().
			Uint64("buffer", uint64(ready)).
			Uint64("sequence", seq).
			Msg("cast buffer queued")
	}
	s.cast.MarkFrameRendered(now)
}
