// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import "time"

// Reliability selects the delivery guarantee for an operation. DAT
// streams are immutably [ReliabilityNoDrop]; EVT posting defaults to
// [ReliabilityMayDrop]; CMD is conceptually NoDrop and does not consult
// this field.
type Reliability int

const (
	// ReliabilityMayDrop permits the runtime to discard a message rather
	// than block or grow a queue without bound. This is the default for
	// EVT posting.
	ReliabilityMayDrop Reliability = iota

	// ReliabilityNoDrop requires the runtime to either deliver a message
	// or surface a failure; it never silently discards one. DAT streams
	// always behave as if this were set, regardless of [Options.Reliability].
	ReliabilityNoDrop
)

// waitMode is the resolved blocking behavior an [Options] value selects
// for an operation: wait forever, don't wait, or wait up to a deadline.
type waitMode int

const (
	waitBlocking waitMode = iota
	waitNonBlock
	waitTimeout
)

// Options carries the orthogonal flags every blocking operation accepts:
// how long to wait, whether EVT posting waits for delivery, and whether
// a discipline may drop a message under backpressure.
//
// The zero value is NONBLOCK, ASYNC, MayDrop; [DefaultOptions] gives
// the runtime's default behavior, which is BLOCKING.
type Options struct {
	// timeout is the wait budget. Its interpretation depends on blocking:
	// zero means NONBLOCK, [timeoutInfinite] means BLOCKING, anything
	// else is a TIMEOUT duration. Use the With* constructors instead of
	// setting this directly.
	timeout time.Duration
	blocking bool

	// sync, when true, makes [PostEVT] wait until all locally matched
	// subscribers have run their callback. Only EVT posting consults
	// this field; every other discipline is inherently synchronous.
	sync bool

	// reliability selects MayDrop vs NoDrop for disciplines that allow
	// the choice (EVT). DAT ignores this field and always behaves as
	// NoDrop.
	reliability Reliability
}

// timeoutInfinite is the sentinel [Options.timeout] value meaning "wait
// without a deadline", distinct from the zero Duration (which means
// NONBLOCK).
const timeoutInfinite time.Duration = -1

// DefaultOptions returns the default [Options]: BLOCKING wait, ASYNC
// posting, MayDrop reliability.
func DefaultOptions() Options {
	return Options{timeout: timeoutInfinite, blocking: true}
}

// WithBlocking returns a copy of opts that waits indefinitely.
func (opts Options) WithBlocking() Options {
	opts.blocking = true
	opts.timeout = timeoutInfinite
	return opts
}

// WithNonBlock returns a copy of opts that never waits.
func (opts Options) WithNonBlock() Options {
	opts.blocking = false
	opts.timeout = 0
	return opts
}

// WithTimeout returns a copy of opts that waits up to d before returning
// [ResultTimeout]. A zero or negative d behaves like [Options.WithNonBlock].
func (opts Options) WithTimeout(d time.Duration) Options {
	if d <= 0 {
		return opts.WithNonBlock()
	}
	opts.blocking = false
	opts.timeout = d
	return opts
}

// WithSync returns a copy of opts that makes [PostEVT] wait for local
// subscriber delivery before returning.
func (opts Options) WithSync() Options {
	opts.sync = true
	return opts
}

// WithAsync returns a copy of opts that lets [PostEVT] return before
// subscriber delivery completes. This is the default.
func (opts Options) WithAsync() Options {
	opts.sync = false
	return opts
}

// WithReliability returns a copy of opts carrying the given [Reliability].
func (opts Options) WithReliability(r Reliability) Options {
	opts.reliability = r
	return opts
}

// mode resolves the wait behavior this Options value selects.
func (opts Options) mode() waitMode {
	switch {
	case opts.blocking:
		return waitBlocking
	case opts.timeout > 0:
		return waitTimeout
	default:
		return waitNonBlock
	}
}

// deadline returns the absolute deadline for a wait started at now, and
// whether one applies at all (false for BLOCKING).
func (opts Options) deadline(now time.Time) (time.Time, bool) {
	switch opts.mode() {
	case waitTimeout:
		return now.Add(opts.timeout), true
	default:
		return time.Time{}, false
	}
}

// IsSync reports whether EVT posting should wait for local delivery.
func (opts Options) IsSync() bool {
	return opts.sync
}

// IsNoDrop reports whether the reliability mode forbids silent drops.
func (opts Options) IsNoDrop() bool {
	return opts.reliability == ReliabilityNoDrop
}
