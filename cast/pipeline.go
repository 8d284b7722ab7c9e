// SPDX-License-Identifier: Unlicense OR MIT

package cast

import "sync"

// Fence is a caller-owned synchronization primitive that signals once
// a render into a buffer has completed. The renderer/GPU driver that
// produces a real fence is out of scope (SPEC_FULL §3 DOMAIN STACK);
// this is the narrow interface the pipeline schedules against.
type Fence interface {
	// Reached reports whether the fence has signaled. Called
	// repeatedly (it never blocks); golang.org/x/sys/unix readiness on
	// the fence's underlying fd is what should trigger re-checking it
	// from the event loop (spec §5).
	Reached() bool
}

type pendingBuffer struct {
	handle BufferHandle
	fence  Fence
}

// BufferHandle is an opaque identifier for a buffer dequeued from the
// stream transport. The pipeline never interprets it beyond identity
// and ordering.
type BufferHandle uint64

// Pipeline manages one Cast's buffer lifecycle: dequeue, render,
// fence-wait, and queue-in-order (spec §4.8 "Buffer lifecycle").
type Pipeline struct {
	mu       sync.Mutex
	pending  []pendingBuffer
	sequence uint64
}

// NewPipeline creates an empty buffer pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// BeginRender records a buffer as rendering, to be queued once its
// fence signals. The sequence counter is not incremented here: it
// only advances once a buffer is actually marked good (MarkGood),
// matching the original's "incremented once per successful frame."
func (p *Pipeline) BeginRender(buf BufferHandle, fence Fence) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, pendingBuffer{handle: buf, fence: fence})
}

// ReadyToQueue returns every buffer, from oldest to newest, that can
// be handed back to the transport now — the prefix of pending buffers
// whose fences have all signaled, stopping at the first one that
// hasn't, so frames are never queued out of order (spec §4.8, ported
// from the original's queue_completed_buffers: "find the first still-
// rendering buffer, and queue everything up to that").
func (p *Pipeline) ReadyToQueue() []BufferHandle {
	p.mu.Lock()
	defer p.mu.Unlock()

	firstInProgress := len(p.pending)
	for i, b := range p.pending {
		if !b.fence.Reached() {
			firstInProgress = i
			break
		}
	}

	out := make([]BufferHandle, firstInProgress)
	for i := 0; i < firstInProgress; i++ {
		out[i] = p.pending[i].handle
	}
	p.pending = p.pending[firstInProgress:]
	return out
}

// PendingCount reports how many buffers are still awaiting their
// fence.
func (p *Pipeline) PendingCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// MarkGood increments the sequence counter and returns its new value,
// to be stamped into the buffer's metadata before it is queued (spec
// §4.8 "sequence counter"; ported from the original's
// mark_buffer_as_good).
func (p *Pipeline) MarkGood() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sequence++
	return p.sequence
}

// ReturnUnused marks the given buffer corrupted rather than rendering
// into it, for the case where a frame must be dropped (e.g. the cast
// isn't in StateReady). Real consumers check either a corrupted
// flag or a zero size field (spec §4.8; ported from the original's
// return_unused_buffer, which sets both for older-consumer
// compatibility). This module returns the marker for the caller's
// transport layer to apply, since the wire format itself is out of
// scope.
func ReturnUnused(buf BufferHandle) CorruptedMarker {
	return CorruptedMarker{Buffer: buf, Size: 0, Corrupted: true}
}

// CorruptedMarker is the metadata a caller must write into a buffer
// before queueing it back, to mark it unusable.
type CorruptedMarker struct {
	Buffer    BufferHandle
	Size      int
	Corrupted bool
}
