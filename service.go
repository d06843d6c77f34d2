// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"context"
	"net"
)

// Runtime is the process-wide handle every API call operates through. A
// process normally owns exactly one Runtime (see [NewRuntime]); tests
// construct additional instances to exercise isolated registries.
type Runtime struct {
	reg *registry
	cfg *Config

	fifo *FIFOBinder
	tcp  *TCPBinder
}

// NewRuntime creates a [*Runtime] with cfg, or [NewConfig]'s defaults
// if cfg is nil.
func NewRuntime(cfg *Config) *Runtime {
	if cfg == nil {
		cfg = NewConfig()
	}
	reg := newRegistry(cfg)
	return &Runtime{
		reg:  reg,
		cfg:  cfg,
		fifo: newFIFOBinder(reg, cfg),
		tcp:  newTCPBinder(reg, cfg),
	}
}

func (rt *Runtime) binderFor(proto Protocol) (Binder, Result) {
	switch proto {
	case ProtocolFIFO:
		return rt.fifo, ResultSuccess
	case ProtocolTCP:
		return rt.tcp, ResultSuccess
	default:
		return nil, ResultInvalidParam
	}
}

// ServiceArgs configures a service brought online by [OnlineService].
type ServiceArgs struct {
	URI   string
	Roles []Role

	// Broadcast is recorded on the service record. No code path reads
	// it: every service accepts any number of clients whether or not it
	// is set.
	Broadcast bool

	// AutoAccept starts a background goroutine that calls AcceptClient
	// on this service's behalf for as long as the service stays online,
	// wiring CmdExecutor/DatReceiver on every accepted link and then
	// discarding the handle. Set this when the caller only cares about
	// the executor/receiver callbacks and never needs to address an
	// accepted link directly (e.g. SendDAT/ExecCMD back to a specific
	// client) — callers needing that must leave it false and call
	// AcceptClient themselves.
	AutoAccept bool

	// CmdExecutor, if set, wires a callback executor on every link this
	// service accepts; nil leaves commands to the polling [Link.WaitCMD]
	// path.
	CmdExecutor     CbExecCmd_F
	CmdExecutorData any

	// DatReceiver, if set, wires a callback DAT receiver on every link
	// this service accepts; nil leaves chunks to the polling
	// [Link.RecvDAT] path.
	DatReceiver     CbRecvDat_F
	DatReceiverData any
}

// OnlineService parses args.URI, resolves its [Binder] (FIFO or TCP,
// following [ProtocolAuto]'s LocalProcess convention), and registers the
// service so peers can [ConnectService] to it. Returns the minted
// [ServiceID] and [ResultPortInUse] if the URI is already online.
func (rt *Runtime) OnlineService(ctx context.Context, args ServiceArgs) (ServiceID, Result) {
	uri, result := ParseServiceURI(args.URI)
	if result != ResultSuccess {
		return "", result
	}
	binder, result := rt.binderFor(uri.Protocol)
	if result != ResultSuccess {
		return "", result
	}

	svc := &serviceRecord{
		ID:          ServiceID(rt.cfg.NewID()),
		URI:         uri,
		Roles:       args.Roles,
		AutoAccept:  args.AutoAccept,
		Broadcast:   args.Broadcast,
		binder:      binder,
		acceptQueue: make(chan net.Conn, rt.cfg.FIFOQueueCapacity),
		cmdExecCb:   args.CmdExecutor,
		cmdExecData: args.CmdExecutorData,
		datRecvCb:   args.DatReceiver,
		datRecvData: args.DatReceiverData,
		links:       make(map[LinkID]*Link),
	}

	if result := rt.reg.registerService(svc); result != ResultSuccess {
		return "", result
	}
	if result := binder.Bind(ctx, svc); result != ResultSuccess {
		rt.reg.unregisterService(svc.ID)
		return "", result
	}
	if svc.AutoAccept {
		acceptCtx, cancel := context.WithCancel(context.Background())
		svc.autoAcceptCancel = cancel
		go rt.autoAcceptLoop(acceptCtx, svc)
	}
	return svc.ID, ResultSuccess
}

// autoAcceptLoop repeatedly accepts clients on svc until acceptCtx is
// cancelled (by OfflineService) or the service stops resolving (it was
// taken offline from under the loop). Each accepted link is left
// registered with whatever executor/receiver callbacks OnlineService
// wired; the loop itself never touches the link again.
func (rt *Runtime) autoAcceptLoop(acceptCtx context.Context, svc *serviceRecord) {
	for {
		_, result := rt.AcceptClient(acceptCtx, svc.ID, DefaultOptions())
		switch result {
		case ResultSuccess:
			continue
		case ResultLinkBroken:
			return
		case ResultNotExistService:
			return
		default:
			continue
		}
	}
}

// OfflineService unbinds the service's listener resource (closing any
// links it owns that are still open) and removes it from the registry.
func (rt *Runtime) OfflineService(id ServiceID) Result {
	svc, result := rt.reg.unregisterService(id)
	if result != ResultSuccess {
		return result
	}
	if svc.autoAcceptCancel != nil {
		svc.autoAcceptCancel()
	}
	for _, link := range svc.links {
		link.closeLink()
		rt.reg.unregisterLink(link.ID)
	}
	return svc.binder.Unbind(svc)
}

// ConnectService dials the service at uri as a client, returning a
// ready [*Link] with the given roles.
func (rt *Runtime) ConnectService(ctx context.Context, uri string, roles []Role, opts Options) (*Link, Result) {
	parsed, result := ParseServiceURI(uri)
	if result != ResultSuccess {
		return nil, result
	}
	binder, result := rt.binderFor(parsed.Protocol)
	if result != ResultSuccess {
		return nil, result
	}
	return binder.Connect(ctx, parsed, roles, opts)
}

// AcceptClient accepts the next pending connect on id, wiring whatever
// CMD executor / DAT receiver callbacks the service was configured with
// at [OnlineService] time.
func (rt *Runtime) AcceptClient(ctx context.Context, id ServiceID, opts Options) (*Link, Result) {
	svc, result := rt.reg.resolveService(id)
	if result != ResultSuccess {
		return nil, result
	}
	link, result := svc.binder.Accept(ctx, svc, opts)
	if result != ResultSuccess {
		return nil, result
	}
	if svc.cmdExecCb != nil {
		link.setExecutor(svc.cmdExecCb, svc.cmdExecData)
	}
	if svc.datRecvCb != nil {
		link.setDatReceiverCallback(svc.datRecvCb, svc.datRecvData)
	}
	return link, ResultSuccess
}
