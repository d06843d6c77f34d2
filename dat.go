// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"errors"
	"os"
	"time"
)

// setDatReceiverCallback wires cb as this link's DAT receive callback.
// When set, [Link.dispatchDat] invokes it directly on the reader
// goroutine instead of queuing for [Link.RecvDAT].
func (l *Link) setDatReceiverCallback(cb CbRecvDat_F, privateData any) {
	l.datRecvMu.Lock()
	defer l.datRecvMu.Unlock()
	l.datRecvCb = cb
	l.datRecvData = privateData
}

// SendDAT sends data as one DAT chunk. DAT is immutably NoDrop: a
// [ResultSuccess] return guarantees the chunk was handed to the
// transport; [Options.WithNonBlock] maps transport backpressure to
// [ResultBufferFull] instead of silently dropping the chunk. A chunk
// larger than [Config.TCPMaxFramePayload] is rejected with
// [ResultDataTooLarge].
func (l *Link) SendDAT(data Payload, opts Options) Result {
	if !l.hasRole(RoleDatSender) {
		return ResultInvalidParam
	}
	if data.Len() > l.cfg.TCPMaxFramePayload {
		return ResultDataTooLarge
	}
	if r := l.state.Enter(RoleDatSender, SubstateDatSenderBusySendDat); r != ResultSuccess {
		return r
	}
	defer l.state.Exit(RoleDatSender)

	desc := NewDatDesc(data, l.nextSeq(), l.cfg.TimeNow())

	switch opts.mode() {
	case waitNonBlock:
		l.conn.SetWriteDeadline(l.cfg.TimeNow())
	case waitTimeout:
		deadline, _ := opts.deadline(l.cfg.TimeNow())
		l.conn.SetWriteDeadline(deadline)
	default:
		l.conn.SetWriteDeadline(time.Time{})
	}
	defer l.conn.SetWriteDeadline(time.Time{})

	if err := l.writeFrame(frameDat, encodeDatDesc(desc)); err != nil {
		if isWriteDeadlineExceeded(err) {
			return ResultBufferFull
		}
		return OSErrClassifier(err)
	}
	return ResultSuccess
}

func isWriteDeadlineExceeded(err error) bool {
	return errors.Is(err, os.ErrDeadlineExceeded)
}

// RecvDAT blocks for the next DAT chunk when no [CbRecvDat_F] is
// registered (polling mode). Returns [ResultNoData] (NONBLOCK, nothing
// pending), [ResultTimeout], or [ResultLinkBroken] when the link is torn
// down.
func (l *Link) RecvDAT(opts Options) (DatDesc, Result) {
	if !l.hasRole(RoleDatReceiver) {
		return DatDesc{}, ResultInvalidParam
	}
	if r := l.state.Enter(RoleDatReceiver, SubstateDatReceiverBusyRecvDat); r != ResultSuccess {
		return DatDesc{}, r
	}
	defer l.state.Exit(RoleDatReceiver)

	return waitForResult(l.datRecvQueue, opts, l.cfg.TimeNow, l.state.Done())
}

// FlushDAT waits for any chunks already handed to the transport to be
// fully written. Because [Link.SendDAT] writes straight through to the
// underlying conn (no app-level staging buffer), every successful
// SendDAT call has already flushed by the time it returns; FlushDAT is
// therefore a fence with no additional transport work to do.
func (l *Link) FlushDAT(opts Options) Result {
	if !l.hasRole(RoleDatSender) {
		return ResultInvalidParam
	}
	return ResultSuccess
}

// dispatchDat runs on the reader goroutine when a DAT frame arrives: it
// either invokes the registered receive callback synchronously
// (entering/exiting [SubstateDatReceiverBusyCbRecvDat] around the call)
// or enqueues the chunk for a polling [Link.RecvDAT] caller. DAT is
// immutably NoDrop (§4.9): when datRecvQueue is full, this blocks the
// reader goroutine — and so the transport itself — until RecvDAT drains
// it or the link starts closing, rather than discarding the chunk.
func (l *Link) dispatchDat(desc DatDesc) {
	l.datRecvMu.Lock()
	cb, privateData := l.datRecvCb, l.datRecvData
	l.datRecvMu.Unlock()

	if cb == nil {
		select {
		case l.datRecvQueue <- desc:
		case <-l.state.Done():
		}
		return
	}

	if r := l.state.Enter(RoleDatReceiver, SubstateDatReceiverBusyCbRecvDat); r != ResultSuccess {
		return
	}
	defer l.state.Exit(RoleDatReceiver)
	cb(l.ID, desc, privateData)
}
