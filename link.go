// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// CbProcEvt_F is the callback signature a subscriber registers with
// [SubEVT]. It runs on the delivering goroutine; a non-Success return is
// logged but never torn the link down, matching the original
// subscriber-delivery contract.
type CbProcEvt_F func(linkID LinkID, evt EvtDesc, privateData any) Result

// CbExecCmd_F is the callback signature a command executor registers
// at [OnlineService] time. It decodes a [CmdDesc], fills in its output
// payload and status, and returns the executor's [Result].
type CbExecCmd_F func(linkID LinkID, cmd *CmdDesc, privateData any) Result

// CbRecvDat_F is the callback signature a DAT receiver registers to be
// invoked once per received chunk, instead of polling [RecvDAT].
type CbRecvDat_F func(linkID LinkID, dat DatDesc, privateData any) Result

// EvtSubscription is the capability object [SubEVT] returns. Its
// identity — not a (function pointer, private-data) pair — is what
// [UnsubEVT] matches against, per the rewrite's subscription design
// note: typed closures over raw callback+void* pairs.
type EvtSubscription struct {
	callback    CbProcEvt_F
	privateData any
	evtIDs      map[EvtID]bool
}

func (s *EvtSubscription) matches(id EvtID) bool {
	return s.evtIDs[id]
}

// Link is the runtime's stateful connection endpoint: one end of a
// point-to-point byte-duplex (real TCP socket or net.Pipe) driving the
// three message disciplines through a shared frame reader goroutine.
//
// All exported operations are safe for concurrent use from multiple
// goroutines, subject to the per-role mutual exclusion enforced by the
// embedded state machine (see [linkStateMachine]).
type Link struct {
	ID    LinkID
	Roles []Role
	SrvID ServiceID

	cfg    *Config
	logger SLogger

	conn  net.Conn
	wmu   sync.Mutex
	state *linkStateMachine
	seq   atomic.Uint64

	evtMu   sync.Mutex
	evtSubs []*EvtSubscription

	cmdMu        sync.Mutex
	cmdPending   map[uint64]chan CmdDesc
	cmdExecCb    CbExecCmd_F
	cmdExecData  any
	cmdExecQueue chan CmdDesc

	datRecvMu    sync.Mutex
	datRecvQueue chan DatDesc
	datRecvCb    CbRecvDat_F
	datRecvData  any

	closeOnce  sync.Once
	readerDone chan struct{}
}

func newLink(id LinkID, srvID ServiceID, roles []Role, conn net.Conn, cfg *Config) *Link {
	l := &Link{
		ID:           id,
		Roles:        roles,
		SrvID:        srvID,
		cfg:          cfg,
		logger:       cfg.Logger,
		conn:         conn,
		state:        newLinkStateMachine(roles),
		cmdPending:   make(map[uint64]chan CmdDesc),
		cmdExecQueue: make(chan CmdDesc, cfg.FIFOQueueCapacity),
		datRecvQueue: make(chan DatDesc, cfg.FIFOQueueCapacity),
		readerDone:   make(chan struct{}),
	}
	l.state.SetConnState(ConnStateReady)
	go l.readLoop()
	return l
}

func (l *Link) hasRole(r Role) bool {
	for _, role := range l.Roles {
		if role == r {
			return true
		}
	}
	return false
}

func (l *Link) nextSeq() uint64 {
	return l.seq.Add(1)
}

// readLoop is the link's single reader goroutine: it owns all reads off
// conn (net.Conn reads are not safe for concurrent use, writes are
// serialized separately via wmu) and fans decoded frames out to
// subscriptions, pending CMD replies, the CMD executor queue, and the
// DAT receive path.
func (l *Link) readLoop() {
	defer close(l.readerDone)
	threshold := l.cfg.EmbeddedPayloadThreshold
	// TCPMaxFramePayload bounds a chunk's payload; the frame body also
	// carries the descriptor's fixed header (at most 28 bytes, for a CMD
	// request), so a payload exactly at the bound still fits.
	maxBody := l.cfg.TCPMaxFramePayload + 28
	for {
		typ, body, err := readFrame(l.conn, maxBody)
		if err != nil {
			l.onTransportError(err)
			return
		}
		switch typ {
		case frameEvt:
			d, err := decodeEvtDesc(body)
			if err == nil {
				d.Timestamp = l.cfg.TimeNow()
				l.dispatchEvt(d)
			}
		case frameCmdRequest:
			d, err := decodeCmdRequest(body, threshold)
			if err == nil {
				l.dispatchCmdRequest(d)
			}
		case frameCmdReply:
			d, err := decodeCmdReply(body, threshold)
			if err == nil {
				l.dispatchCmdReply(d)
			}
		case frameDat:
			d, err := decodeDatDesc(body, threshold)
			if err == nil {
				l.dispatchDat(d)
			}
		case frameClose:
			l.state.SetConnState(ConnStateClosing)
			l.state.SetConnState(ConnStateClosed)
			return
		}
	}
}

func (l *Link) onTransportError(err error) {
	l.logger.Info("linkBroken",
		slog.String("linkID", string(l.ID)),
		slog.Any("err", err),
		slog.String("errClass", l.cfg.ErrClassifier.Classify(err)))
	l.state.SetConnState(ConnStateClosing)
	l.state.SetConnState(ConnStateClosed)
}

func (l *Link) writeFrame(typ frameType, body []byte) error {
	l.wmu.Lock()
	defer l.wmu.Unlock()
	return writeFrame(l.conn, typ, body)
}

// waitForResult waits on ch honoring opts, returning the received value
// and ResultSuccess on delivery, [ResultNoData] under NONBLOCK when
// nothing is pending, [ResultTimeout] on expiry, and [ResultLinkBroken]
// once done is closed.
func waitForResult[T any](ch <-chan T, opts Options, now func() time.Time, done <-chan struct{}) (T, Result) {
	var zero T
	switch opts.mode() {
	case waitNonBlock:
		select {
		case v := <-ch:
			return v, ResultSuccess
		case <-done:
			return zero, ResultLinkBroken
		default:
			return zero, ResultNoData
		}
	case waitTimeout:
		deadline, _ := opts.deadline(now())
		timer := time.NewTimer(time.Until(deadline))
		defer timer.Stop()
		select {
		case v := <-ch:
			return v, ResultSuccess
		case <-done:
			return zero, ResultLinkBroken
		case <-timer.C:
			return zero, ResultTimeout
		}
	default: // waitBlocking
		select {
		case v := <-ch:
			return v, ResultSuccess
		case <-done:
			return zero, ResultLinkBroken
		}
	}
}
