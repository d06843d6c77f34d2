// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"context"
	"net"

	"github.com/bassosimone/sud"
)

// FIFOBinder implements [Binder] over in-process [net.Pipe] duplexes.
// Connect builds the pipe and hands the server-side end to the
// service's pending-accept queue; Accept drains that same queue. Both
// ends then drive EVT/CMD/DAT through the identical frame-based [Link]
// machinery TCP uses, so FIFO and TCP links are behaviorally
// indistinguishable above the Binder boundary.
//
// Connect wraps the client end with [sud.NewSingleUseDialer] and drives
// it through [Dialer.DialContext], the same call shape [*TCPBinder]
// uses via [ConnectFunc] — grounded on the teacher's HTTPConnFunc,
// which uses the identical sud.SingleUseDialer idiom to let an existing
// conn masquerade as a freshly dialed one.
type FIFOBinder struct {
	reg *registry
	cfg *Config
}

func newFIFOBinder(reg *registry, cfg *Config) *FIFOBinder {
	return &FIFOBinder{reg: reg, cfg: cfg}
}

var _ Binder = &FIFOBinder{}

// Bind claims nothing beyond what [registry.registerService] already
// did; FIFO has no OS-level resource to acquire.
func (b *FIFOBinder) Bind(ctx context.Context, svc *serviceRecord) Result {
	return ResultSuccess
}

// Unbind is a no-op for FIFO: there is no listener resource to release.
func (b *FIFOBinder) Unbind(svc *serviceRecord) Result {
	return ResultSuccess
}

// Connect implements [Binder].
func (b *FIFOBinder) Connect(ctx context.Context, uri ServiceURI, roles []Role, opts Options) (*Link, Result) {
	svc, result := b.reg.resolveServiceByURI(uri.Key())
	if result != ResultSuccess {
		return nil, ResultNotExistService
	}
	if svc.URI.Protocol != ProtocolFIFO {
		return nil, ResultInvalidParam
	}

	client, server := net.Pipe()
	dialer := sud.NewSingleUseDialer(client)
	conn, err := dialer.DialContext(ctx, "fifo", uri.String())
	if err != nil {
		return nil, ResultConnectionRefused
	}

	if result := handoffWait(ctx, svc.acceptQueue, server, opts, b.cfg.TimeNow); result != ResultSuccess {
		conn.Close()
		server.Close()
		return nil, result
	}

	link := newLink(LinkID(b.cfg.NewID()), svc.ID, roles, conn, b.cfg)
	if result := b.reg.registerLink(link); result != ResultSuccess {
		link.closeLink()
		return nil, result
	}
	return link, ResultSuccess
}

// Accept implements [Binder].
func (b *FIFOBinder) Accept(ctx context.Context, svc *serviceRecord, opts Options) (*Link, Result) {
	conn, result := acceptWait(ctx, svc.acceptQueue, opts, b.cfg.TimeNow)
	if result != ResultSuccess {
		return nil, result
	}
	link := newLink(LinkID(b.cfg.NewID()), svc.ID, svc.Roles, conn, b.cfg)
	if result := b.reg.registerLink(link); result != ResultSuccess {
		link.closeLink()
		return nil, result
	}
	return link, ResultSuccess
}

// mirrorRoles derives the accepting side's role set from the
// connecting side's requested roles: producer mirrors to consumer,
// initiator mirrors to executor, sender mirrors to receiver, and vice
// versa, matching a point-to-point Link's two complementary ends.
func mirrorRoles(roles []Role) []Role {
	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, mirrorRole(r))
	}
	return out
}

func mirrorRole(r Role) Role {
	switch r {
	case RoleEvtProducer:
		return RoleEvtConsumer
	case RoleEvtConsumer:
		return RoleEvtProducer
	case RoleCmdInitiator:
		return RoleCmdExecutor
	case RoleCmdExecutor:
		return RoleCmdInitiator
	case RoleDatSender:
		return RoleDatReceiver
	case RoleDatReceiver:
		return RoleDatSender
	default:
		return r
	}
}
