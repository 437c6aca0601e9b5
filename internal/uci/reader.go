package uci

import (
	"bufio"
	"fmt"
	"io"
	"sync"
)

// Reader is the UCI reader task: a goroutine that scans lines from an
// input stream, parses them, and hands them to the main task through
// an unbounded queue. A fixed-size Go channel would risk blocking the
// scanner goroutine on a slow consumer; this queue never blocks the
// producer, matching the original's unbounded mpsc channel.
//
// isready is answered specially: the first isready a session receives
// is forwarded like any other message, since the driver must run its
// own init before it can honestly claim readiness. Every isready after
// that is answered immediately by this goroutine with readyok,
// without waking the driver — the point being to keep the main task
// free to run the emulator instead of servicing a liveness probe.
type Reader struct {
	out io.Writer

	mu     sync.Mutex
	queue  []Message
	closed bool

	seenIsReady bool
}

// NewReader starts the reader goroutine against in, writing its
// self-answered readyok replies to out.
func NewReader(in io.Reader, out io.Writer) *Reader {
	r := &Reader{out: out}
	go r.run(in)
	return r
}

func (r *Reader) run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		msg := Parse(scanner.Text())
		if msg.Kind == KindUnknown {
			continue
		}
		if msg.Kind == KindIsReady {
			r.mu.Lock()
			already := r.seenIsReady
			r.seenIsReady = true
			r.mu.Unlock()
			if already {
				fmt.Fprintln(r.out, ReadyOk)
				continue
			}
		}
		r.push(msg)
	}
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

func (r *Reader) push(msg Message) {
	r.mu.Lock()
	r.queue = append(r.queue, msg)
	r.mu.Unlock()
}

// TryRecv returns the next queued message without blocking. ok is
// false if the queue is currently empty (not necessarily closed).
func (r *Reader) TryRecv() (msg Message, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		return Message{}, false
	}
	msg = r.queue[0]
	r.queue = r.queue[1:]
	return msg, true
}

// Closed reports whether stdin has reached EOF and the queue has been
// fully drained. Per the error-handling design, a caller that observes
// this should treat it as the fatal "StdinClosed" condition.
func (r *Reader) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed && len(r.queue) == 0
}
