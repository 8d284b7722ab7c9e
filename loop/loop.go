// SPDX-License-Identifier: Unlicense OR MIT

// Package loop implements the compositor's single-threaded event
// loop: a poll(2)-driven dispatch of registered file descriptors plus
// a self-pipe for cross-thread wakeups, generalized from the
// teacher's own window event loop (spec §5) to host an arbitrary
// number of sources instead of one fixed display fd and one
// notification pipe.
package loop

import (
	"sync"

	"golang.org/x/sys/unix"
)

// Source is a file descriptor the loop polls for readiness.
type Source interface {
	// FD returns the descriptor to poll. It must stay valid for as
	// long as the source is registered.
	FD() int
	// Dispatch is called when the descriptor becomes readable,
	// writable, or errors out. It returns false to have the loop
	// unregister and stop polling this source.
	Dispatch(readable, writable, errored bool) bool
}

// Task is a deferred callback run once per loop iteration, the
// generalization of the teacher's notify-pipe "redraw" flag into an
// arbitrary queue of work, modeled after calloop's channel-backed
// event sources.
type Task func()

// Loop is a single-threaded, poll-based event loop. It is not safe
// for concurrent use except for Wakeup and Spawn, which may be called
// from any goroutine to interrupt a blocked Run.
type Loop struct {
	mu      sync.Mutex
	sources map[int]Source
	tasks   []Task
	closed  bool

	wakeRead, wakeWrite int
}

// New creates a Loop with its self-pipe wakeup source installed.
func New() (*Loop, error) {
	fds, err := pipe2NonBlocking()
	if err != nil {
		return nil, err
	}
	l := &Loop{
		sources:   make(map[int]Source),
		wakeRead:  fds[0],
		wakeWrite: fds[1],
	}
	return l, nil
}

func pipe2NonBlocking() ([2]int, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return fds, err
	}
	return fds, nil
}

// AddSource registers src for polling. Registering a source already
// present replaces it.
func (l *Loop) AddSource(src Source) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources[src.FD()] = src
}

// RemoveSource unregisters the source with the given fd.
func (l *Loop) RemoveSource(fd int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sources, fd)
}

// Spawn queues fn to run on the loop's own goroutine at the start of
// its next iteration, and wakes the loop if it is currently blocked
// in poll. Safe to call from any goroutine.
func (l *Loop) Spawn(fn Task) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	l.Wakeup()
}

// Wakeup interrupts a blocked Run, even from another goroutine.
func (l *Loop) Wakeup() {
	var b [1]byte
	for {
		_, err := unix.Write(l.wakeWrite, b[:])
		if err == unix.EAGAIN {
			return
		}
		if err == unix.EINTR {
			continue
		}
		return
	}
}

// Close stops the loop and releases its self-pipe. Registered sources
// are left for the caller to close.
func (l *Loop) Close() error {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	unix.Close(l.wakeRead)
	unix.Close(l.wakeWrite)
	return nil
}

// RunOnce drains queued tasks, then polls every registered source
// plus the wakeup pipe once, blocking up to timeoutMS milliseconds (-1
// blocks indefinitely, 0 never blocks). It returns false once Close
// has been called.
func (l *Loop) RunOnce(timeoutMS int) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	tasks := l.tasks
	l.tasks = nil
	l.mu.Unlock()

	for _, t := range tasks {
		t()
	}

	l.mu.Lock()
	pollfds := make([]unix.PollFd, 0, len(l.sources)+1)
	pollfds = append(pollfds, unix.PollFd{Fd: int32(l.wakeRead), Events: unix.POLLIN})
	order := make([]int, 0, len(l.sources))
	for fd := range l.sources {
		order = append(order, fd)
		pollfds = append(pollfds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
	}
	l.mu.Unlock()

	_, err := unix.Poll(pollfds, timeoutMS)
	if err != nil && err != unix.EINTR {
		return true
	}

	if pollfds[0].Revents&unix.POLLIN != 0 {
		drainWakePipe(l.wakeRead)
	}

	for i, fd := range order {
		revents := pollfds[i+1].Revents
		if revents == 0 {
			continue
		}
		readable := revents&unix.POLLIN != 0
		writable := revents&unix.POLLOUT != 0
		errored := revents&(unix.POLLERR|unix.POLLHUP) != 0

		l.mu.Lock()
		src, ok := l.sources[fd]
		l.mu.Unlock()
		if !ok {
			continue
		}
		if !src.Dispatch(readable, writable, errored) {
			l.RemoveSource(fd)
		}
	}

	return true
}

func drainWakePipe(fd int) {
	var buf [64]byte
	for {
		n, err := unix.Read(fd, buf[:])
		if err != nil {
			return
		}
		if n < len(buf) {
			return
		}
	}
}

// Run calls RunOnce in a loop, blocking indefinitely between
// iterations, until Close is called.
func (l *Loop) Run() {
	for l.RunOnce(-1) {
	}
}
