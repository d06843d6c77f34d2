// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"context"
	"fmt"
	"net"
	"net/netip"

	"golang.org/x/sync/errgroup"
)

// TCPBinder implements [Binder] over loopback TCP. A listener goroutine
// per bound service accepts sockets and feeds them to the service's
// accept queue. The acceptor runs under an [*errgroup.Group] (promoted
// from the teacher's indirect dependency to direct use here); a fatal
// acceptor error stops the acceptor and cancels the group's context,
// and [TCPBinder.Unbind] waits for the group but discards that error.
//
// Each accepted net.Conn is wrapped with [ObserveConnFunc] for
// structured I/O logging, matching the teacher's connection-observing
// idiom unchanged, and with [CancelWatchFunc] bound to the acceptor's
// context, so cancelling that context closes every accepted conn.
type TCPBinder struct {
	reg    *registry
	cfg    *Config
	dial   Func[netip.AddrPort, net.Conn]
	accept Func[net.Conn, net.Conn]
}

func newTCPBinder(reg *registry, cfg *Config) *TCPBinder {
	return &TCPBinder{
		reg: reg,
		cfg: cfg,
		dial: Compose2[netip.AddrPort, net.Conn, net.Conn](
			NewConnectFunc(cfg, "tcp", cfg.Logger),
			NewObserveConnFunc(cfg, cfg.Logger),
		),
		accept: Compose2[net.Conn, net.Conn, net.Conn](
			NewObserveConnFunc(cfg, cfg.Logger),
			NewCancelWatchFunc(),
		),
	}
}

var _ Binder = &TCPBinder{}

// tcpListener is the opaque listener resource a bound TCP service owns
// (the [serviceRecord.listener] value for TCP services).
type tcpListener struct {
	ln     net.Listener
	group  *errgroup.Group
	cancel context.CancelFunc
}

// Bind starts a net.Listener for svc.URI and an errgroup-supervised
// acceptor goroutine that feeds accepted connections into
// svc.acceptQueue.
func (b *TCPBinder) Bind(ctx context.Context, svc *serviceRecord) Result {
	addr := fmt.Sprintf("%s:%d", svc.URI.Host, svc.URI.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return ResultPortInUse
	}

	acceptCtx, cancel := context.WithCancel(context.Background())
	group, groupCtx := errgroup.WithContext(acceptCtx)
	group.Go(func() error {
		return b.acceptLoop(groupCtx, ln, svc)
	})

	svc.listener = &tcpListener{ln: ln, group: group, cancel: cancel}
	return ResultSuccess
}

func (b *TCPBinder) acceptLoop(ctx context.Context, ln net.Listener, svc *serviceRecord) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		// Wrapping with the acceptor's context means Unbind's cancel
		// forcibly closes every connection this listener ever produced,
		// queued or not — satisfying Binder.Unbind's teardown contract.
		watched, _ := b.accept.Call(ctx, conn)
		select {
		case svc.acceptQueue <- watched:
		case <-ctx.Done():
			watched.Close()
			return nil
		}
	}
}

// Unbind stops the acceptor and closes the listener socket.
func (b *TCPBinder) Unbind(svc *serviceRecord) Result {
	tl, ok := svc.listener.(*tcpListener)
	if !ok {
		return ResultSuccess
	}
	tl.cancel()
	tl.ln.Close()
	tl.group.Wait()
	return ResultSuccess
}

// Connect implements [Binder] by dialing uri's host:port via
// [ConnectFunc], the same Dialer-backed call [*FIFOBinder] makes
// through [sud.SingleUseDialer].
func (b *TCPBinder) Connect(ctx context.Context, uri ServiceURI, roles []Role, opts Options) (*Link, Result) {
	if uri.Protocol != ProtocolTCP {
		return nil, ResultInvalidParam
	}
	addr, err := netip.ParseAddr(uri.Host)
	var target netip.AddrPort
	if err == nil {
		target = netip.AddrPortFrom(addr, uri.Port)
	} else {
		resolved, rerr := net.ResolveTCPAddr("tcp", fmt.Sprintf("%s:%d", uri.Host, uri.Port))
		if rerr != nil {
			return nil, ResultInvalidParam
		}
		ip, ok := netip.AddrFromSlice(resolved.IP)
		if !ok {
			return nil, ResultInvalidParam
		}
		target = netip.AddrPortFrom(ip, uri.Port)
	}

	conn, dialErr := b.dial.Call(ctx, target)
	if dialErr != nil {
		return nil, ResultConnectionRefused
	}
	link := newLink(LinkID(b.cfg.NewID()), "", roles, conn, b.cfg)
	if result := b.reg.registerLink(link); result != ResultSuccess {
		link.closeLink()
		return nil, result
	}
	return link, ResultSuccess
}

// Accept implements [Binder].
func (b *TCPBinder) Accept(ctx context.Context, svc *serviceRecord, opts Options) (*Link, Result) {
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
