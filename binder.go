// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"context"
	"net"
	"time"
)

// Binder is the protocol binding interface every transport implements:
// bind/unbind a service's listener resource, connect, and accept.
// Closing a link ([Link]'s closeLink) and message operations
// (EVT/CMD/DAT) are not part of this
// interface — once a link's duplex conn exists, [Link]'s own methods
// drive all three disciplines identically regardless of which Binder
// produced the conn, per the "one framer serves every transport" design.
type Binder interface {
	// Bind claims the transport-specific listener resource for svc.
	Bind(ctx context.Context, svc *serviceRecord) Result

	// Unbind releases svc's listener resource. All server-side links it
	// produced must already be closed, or are forcibly torn down first.
	Unbind(svc *serviceRecord) Result

	// Connect dials uri, returning a ready [*Link] or an error Result
	// ([ResultConnectionRefused], [ResultNotExistService], [ResultTimeout]).
	Connect(ctx context.Context, uri ServiceURI, roles []Role, opts Options) (*Link, Result)

	// Accept produces the next server-side [*Link] for svc, pairing it
	// with a pending connect. Returns [ResultTimeout] if opts' wait
	// budget expires first.
	Accept(ctx context.Context, svc *serviceRecord, opts Options) (*Link, Result)
}

// acceptWait receives from ch honoring opts' wait mode, used by both
// [*FIFOBinder] and [*TCPBinder] to implement Accept's blocking
// semantics identically.
func acceptWait(ctx context.Context, ch <-chan net.Conn, opts Options, now func() time.Time) (net.Conn, Result) {
	switch opts.mode() {
	case waitNonBlock:
		select {
		case c := <-ch:
			return c, ResultSuccess
		case <-ctx.Done():
			return nil, ResultLinkBroken
		default:
			return nil, ResultTimeout
		}
	case waitTimeout:
		deadline, _ := opts.deadline(now())
		timer := time.NewTimer(time.Until(deadline))
		defer timer.Stop()
		select {
		case c := <-ch:
			return c, ResultSuccess
		case <-ctx.Done():
			return nil, ResultLinkBroken
		case <-timer.C:
			return nil, ResultTimeout
		}
	default:
		select {
		case c := <-ch:
			return c, ResultSuccess
		case <-ctx.Done():
			return nil, ResultLinkBroken
		}
	}
}

// handoffWait sends conn on ch honoring opts' wait mode, used by
// Connect to hand the server-side end of a pending connection to a
// service's Accept queue.
func handoffWait(ctx context.Context, ch chan<- net.Conn, conn net.Conn, opts Options, now func() time.Time) Result {
	switch opts.mode() {
	case waitNonBlock:
		select {
		case ch <- conn:
			return ResultSuccess
		default:
			return ResultTimeout
		}
	case waitTimeout:
		deadline, _ := opts.deadline(now())
		timer := time.NewTimer(time.Until(deadline))
		defer timer.Stop()
		select {
		case ch <- conn:
			return ResultSuccess
		case <-timer.C:
			return ResultTimeout
		}
	default:
		select {
		case ch <- conn:
			return ResultSuccess
		case <-ctx.Done():
			return ResultLinkBroken
		}
	}
}
