// SPDX-License-Identifier: Unlicense OR MIT

// Package cast implements the screencast negotiation and buffer
// lifecycle state machine described in SPEC_FULL.md §4.8: a Cast
// negotiates pixel format and DMA-BUF modifier with its consumer
// before ever producing a frame, then queues rendered buffers in
// strict sequence order.
package cast

import "github.com/google/uuid"

// SessionID identifies one screencast session, which may host several
// streams (spec §6, SPEC_FULL §9 "cyclic references" design note: a
// session owns its streams but streams are looked up by id through the
// Registry below rather than holding a direct back-pointer).
type SessionID uuid.UUID

// StreamID identifies a single stream (one output or one window)
// within a session.
type StreamID uuid.UUID

// NewSessionID allocates a fresh random session identifier.
func NewSessionID() SessionID { return SessionID(uuid.New()) }

// NewStreamID allocates a fresh random stream identifier.
func NewStreamID() StreamID { return StreamID(uuid.New()) }

func (id SessionID) String() string { return uuid.UUID(id).String() }
func (id StreamID) String() string  { return uuid.UUID(id).String() }

// Registry is the central lookup table from id to live Cast, breaking
// the session/stream cyclic reference: a Session holds only ids, and
// looks streams up here rather than holding pointers back to them
// (SPEC_FULL §9).
type Registry struct {
	casts map[StreamID]*Cast
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{casts: make(map[StreamID]*Cast)}
}

// Register adds c under its stream id.
func (r *Registry) Register(c *Cast) {
	r.casts[c.StreamID] = c
}

// Lookup returns the cast registered under id, if any.
func (r *Registry) Lookup(id StreamID) (*Cast, bool) {
	c, ok := r.casts[id]
	return c, ok
}

// Unregister removes the cast registered under id.
func (r *Registry) Unregister(id StreamID) {
	delete(r.casts, id)
}

// BySession returns every cast belonging to session.
func (r *Registry) BySession(session SessionID) []*Cast {
	var out []*Cast
	for _, c := range r.casts {
		if c.SessionID == session {
			out = append(out, c)
		}
	}
	return out
}
