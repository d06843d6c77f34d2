// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import "time"

// setExecutor wires cb as this link's command-executor callback. Called
// by [Runtime.AcceptClient] when the service was brought online with an
// executor callback. Every incoming CmdID is handed to cb: there is no
// per-link set of supported CmdIDs, and [ResultNoCmdExecutor] is
// produced only when the link does not carry [RoleCmdExecutor].
func (l *Link) setExecutor(cb CbExecCmd_F, privateData any) {
	l.cmdMu.Lock()
	defer l.cmdMu.Unlock()
	l.cmdExecCb = cb
	l.cmdExecData = privateData
}

// ExecCMD sends cmd to the peer and blocks for its response. If the
// caller's opts specify an explicit wait (TIMEOUT/NONBLOCK), that takes
// precedence over cmd.TimeoutMs; otherwise cmd.TimeoutMs governs the
// wait when positive.
func (l *Link) ExecCMD(cmd *CmdDesc, opts Options) Result {
	if !l.hasRole(RoleCmdInitiator) {
		return ResultInvalidParam
	}
	if r := l.state.Enter(RoleCmdInitiator, SubstateCmdInitiatorBusyExecCmd); r != ResultSuccess {
		return r
	}
	defer l.state.Exit(RoleCmdInitiator)

	cmd.SeqID = l.nextSeq()
	cmd.Timestamp = l.cfg.TimeNow()
	cmd.Status = CmdStatusExecuting

	effective := opts
	if opts.mode() == waitBlocking && cmd.TimeoutMs > 0 {
		effective = opts.WithTimeout(time.Duration(cmd.TimeoutMs) * time.Millisecond)
	}

	replyCh := make(chan CmdDesc, 1)
	l.cmdMu.Lock()
	l.cmdPending[cmd.SeqID] = replyCh
	l.cmdMu.Unlock()

	if err := l.writeFrame(frameCmdRequest, encodeCmdRequest(*cmd)); err != nil {
		l.cmdMu.Lock()
		delete(l.cmdPending, cmd.SeqID)
		l.cmdMu.Unlock()
		return OSErrClassifier(err)
	}

	reply, result := waitForResult(replyCh, effective, l.cfg.TimeNow, l.state.Done())
	l.cmdMu.Lock()
	delete(l.cmdPending, cmd.SeqID)
	l.cmdMu.Unlock()

	switch result {
	case ResultSuccess:
		cmd.Status = reply.Status
		cmd.Result = reply.Result
		cmd.OutputPayload = reply.OutputPayload
		return reply.Result
	case ResultTimeout:
		cmd.Finish(CmdStatusTimeout, Payload{}, ResultTimeout)
		return ResultTimeout
	default:
		cmd.Finish(CmdStatusFailed, Payload{}, result)
		return result
	}
}

// WaitCMD is the polling-executor counterpart to a registered
// [CbExecCmd_F]: it blocks until a command request arrives on this
// link, returning it for the caller to process and acknowledge via
// [Link.AckCMD].
func (l *Link) WaitCMD(opts Options) (CmdDesc, Result) {
	if !l.hasRole(RoleCmdExecutor) {
		return CmdDesc{}, ResultInvalidParam
	}
	if r := l.state.Enter(RoleCmdExecutor, SubstateCmdExecutorBusyWaitCmd); r != ResultSuccess {
		return CmdDesc{}, r
	}
	defer l.state.Exit(RoleCmdExecutor)

	cmd, result := waitForResult(l.cmdExecQueue, opts, l.cfg.TimeNow, l.state.Done())
	if result == ResultNoData {
		return CmdDesc{}, ResultNoCmdPending
	}
	return cmd, result
}

// AckCMD sends the executor's completed cmd (Status/Result/OutputPayload
// already filled in by the caller) back to the initiator, completing
// the polling-executor path started by [Link.WaitCMD]. The write itself
// runs under [SubstateCmdExecutorBusyAckCmd], matching the callback
// path's own Busy window around the reply frame.
func (l *Link) AckCMD(cmd CmdDesc, opts Options) Result {
	if !l.hasRole(RoleCmdExecutor) {
		return ResultInvalidParam
	}
	if r := l.state.Enter(RoleCmdExecutor, SubstateCmdExecutorBusyAckCmd); r != ResultSuccess {
		return r
	}
	defer l.state.Exit(RoleCmdExecutor)

	if err := l.writeFrame(frameCmdReply, encodeCmdReply(cmd)); err != nil {
		return OSErrClassifier(err)
	}
	return ResultSuccess
}

// sendCmdReply writes cmd's reply frame under SubstateCmdExecutorBusyAckCmd
// whenever the role can still enter it; a failed Enter (link already
// gone, or not ours to hold) just falls through to the write so the
// peer is still notified.
func (l *Link) sendCmdReply(cmd CmdDesc) {
	if r := l.state.Enter(RoleCmdExecutor, SubstateCmdExecutorBusyAckCmd); r == ResultSuccess {
		defer l.state.Exit(RoleCmdExecutor)
	}
	l.writeFrame(frameCmdReply, encodeCmdReply(cmd))
}

// dispatchCmdRequest runs on the reader goroutine when a CMD request
// frame arrives: it either invokes the registered callback executor
// on a fresh goroutine (callback-mode, per §4.8), or
// enqueues the request for a polling executor to pick up via
// [Link.WaitCMD].
func (l *Link) dispatchCmdRequest(cmd CmdDesc) {
	l.cmdMu.Lock()
	cb, privateData := l.cmdExecCb, l.cmdExecData
	l.cmdMu.Unlock()

	if cb != nil {
		go l.runExecCallback(cb, privateData, cmd)
		return
	}

	select {
	case l.cmdExecQueue <- cmd:
	default:
		cmd.Finish(CmdStatusFailed, Payload{}, ResultBusy)
		l.sendCmdReply(cmd)
	}
}

func (l *Link) runExecCallback(cb CbExecCmd_F, privateData any, cmd CmdDesc) {
	if !l.hasRole(RoleCmdExecutor) {
		cmd.Finish(CmdStatusFailed, Payload{}, ResultNoCmdExecutor)
		l.sendCmdReply(cmd)
		return
	}
	if r := l.state.Enter(RoleCmdExecutor, SubstateCmdExecutorBusyExecCmd); r != ResultSuccess {
		cmd.Finish(CmdStatusFailed, Payload{}, r)
		l.sendCmdReply(cmd)
		return
	}

	result := cb(l.ID, &cmd, privateData)
	l.state.Exit(RoleCmdExecutor)

	if cmd.Status == CmdStatusPending || cmd.Status == CmdStatusExecuting {
		if result == ResultSuccess {
			cmd.Status = CmdStatusSuccess
		} else {
			cmd.Status = CmdStatusFailed
		}
	}
	cmd.Result = result
	l.sendCmdReply(cmd)
}

// dispatchCmdReply runs on the reader goroutine when a CMD reply frame
// arrives: it wakes the initiator blocked in [Link.ExecCMD] on the
// matching sequence number.
func (l *Link) dispatchCmdReply(reply CmdDesc) {
	l.cmdMu.Lock()
	ch, ok := l.cmdPending[reply.SeqID]
	l.cmdMu.Unlock()
	if ok {
		ch <- reply
	}
}
