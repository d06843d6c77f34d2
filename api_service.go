// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

// SubEVT subscribes callback to events matching ids on id, or on
// [AutoLinkID] for the process-wide connectionless hub.
func (rt *Runtime) SubEVT(id LinkID, callback CbProcEvt_F, privateData any, ids []EvtID) (*EvtSubscription, Result) {
	if id == AutoLinkID {
		return rt.reg.hub.Sub(callback, privateData, ids)
	}
	link, result := rt.reg.resolveLink(id)
	if result != ResultSuccess {
		return nil, result
	}
	return link.SubEVT(callback, privateData, ids)
}

// UnsubEVT removes sub from id, or from the AUTO_LINK hub.
func (rt *Runtime) UnsubEVT(id LinkID, sub *EvtSubscription) Result {
	if id == AutoLinkID {
		return rt.reg.hub.Unsub(sub)
	}
	link, result := rt.reg.resolveLink(id)
	if result != ResultSuccess {
		return result
	}
	return link.UnsubEVT(sub)
}

// PostEVT posts evt on id.
func (rt *Runtime) PostEVT(id LinkID, evt EvtDesc, opts Options) Result {
	link, result := rt.reg.resolveLink(id)
	if result != ResultSuccess {
		return result
	}
	return link.PostEVT(evt, opts)
}

// BroadcastEVT posts evt process-wide on [AutoLinkID], the
// connectionless counterpart to [Runtime.PostEVT].
func (rt *Runtime) BroadcastEVT(evt EvtDesc, opts Options) Result {
	return rt.reg.hub.Post(evt, opts)
}

// ForceProcEVT delivers evt to AUTO_LINK subscribers synchronously on
// the calling goroutine, bypassing the hub's queue.
func (rt *Runtime) ForceProcEVT(evt EvtDesc) Result {
	return rt.reg.hub.ForceProc(evt)
}

// WakeupProcEVT always returns Success without doing any work: the
// AUTO_LINK drain goroutine already wakes on every post.
func (rt *Runtime) WakeupProcEVT() Result {
	return rt.reg.hub.WakeupProc()
}

// ExecCMD sends cmd on id and blocks for its reply.
func (rt *Runtime) ExecCMD(id LinkID, cmd *CmdDesc, opts Options) Result {
	link, result := rt.reg.resolveLink(id)
	if result != ResultSuccess {
		return result
	}
	return link.ExecCMD(cmd, opts)
}

// WaitCMD blocks for the next command request on id (the polling
// executor path).
func (rt *Runtime) WaitCMD(id LinkID, opts Options) (CmdDesc, Result) {
	link, result := rt.reg.resolveLink(id)
	if result != ResultSuccess {
		return CmdDesc{}, result
	}
	return link.WaitCMD(opts)
}

// AckCMD sends the executor's completed cmd back to the initiator on id.
func (rt *Runtime) AckCMD(id LinkID, cmd CmdDesc, opts Options) Result {
	link, result := rt.reg.resolveLink(id)
	if result != ResultSuccess {
		return result
	}
	return link.AckCMD(cmd, opts)
}

// SendDAT sends data as one chunk on id.
func (rt *Runtime) SendDAT(id LinkID, data Payload, opts Options) Result {
	link, result := rt.reg.resolveLink(id)
	if result != ResultSuccess {
		return result
	}
	return link.SendDAT(data, opts)
}

// RecvDAT blocks for the next chunk on id (the polling receiver path).
func (rt *Runtime) RecvDAT(id LinkID, opts Options) (DatDesc, Result) {
	link, result := rt.reg.resolveLink(id)
	if result != ResultSuccess {
		return DatDesc{}, result
	}
	return link.RecvDAT(opts)
}

// FlushDAT waits for id's in-flight chunks to be fully written.
func (rt *Runtime) FlushDAT(id LinkID, opts Options) Result {
	link, result := rt.reg.resolveLink(id)
	if result != ResultSuccess {
		return result
	}
	return link.FlushDAT(opts)
}
