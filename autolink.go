// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"sync"
	"time"
)

// autoLinkHub implements Conles-mode (connectionless) event posting
// rooted at [AutoLinkID]: any process-wide subscriber receives a
// broadcast event, with no Service/Link pairing involved.
//
// A single bounded channel, drained by one dedicated goroutine, decouples
// posting from delivery the same way a per-link queue would, but scoped
// to the whole process rather than one connection.
type autoLinkHub struct {
	cfg *Config

	mu   sync.Mutex
	subs []*EvtSubscription

	queue chan EvtDesc
	seq   uint64
	seqMu sync.Mutex

	stop chan struct{}
}

func newAutoLinkHub(cfg *Config) *autoLinkHub {
	h := &autoLinkHub{
		cfg:   cfg,
		queue: make(chan EvtDesc, cfg.AutoLinkQueueCapacity),
		stop:  make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *autoLinkHub) run() {
	for {
		select {
		case evt := <-h.queue:
			h.deliver(evt)
		case <-h.stop:
			return
		}
	}
}

func (h *autoLinkHub) close() {
	close(h.stop)
}

func (h *autoLinkHub) nextSeq() uint64 {
	h.seqMu.Lock()
	defer h.seqMu.Unlock()
	h.seq++
	return h.seq
}

// Sub registers a process-wide subscriber for evtIDs.
func (h *autoLinkHub) Sub(callback CbProcEvt_F, privateData any, evtIDs []EvtID) (*EvtSubscription, Result) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		if funcsEqual(sub.callback, callback) && sub.privateData == privateData {
			return nil, ResultConflictEventConsumer
		}
	}
	set := make(map[EvtID]bool, len(evtIDs))
	for _, id := range evtIDs {
		set[id] = true
	}
	sub := &EvtSubscription{callback: callback, privateData: privateData, evtIDs: set}
	h.subs = append(h.subs, sub)
	return sub, ResultSuccess
}

// Unsub removes sub from the process-wide subscriber set.
func (h *autoLinkHub) Unsub(sub *EvtSubscription) Result {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, s := range h.subs {
		if s == sub {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			return ResultSuccess
		}
	}
	return ResultInvalidParam
}

func (h *autoLinkHub) matched(id EvtID) []*EvtSubscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*EvtSubscription, 0, len(h.subs))
	for _, sub := range h.subs {
		if sub.matches(id) {
			out = append(out, sub)
		}
	}
	return out
}

func (h *autoLinkHub) deliver(evt EvtDesc) {
	for _, sub := range h.matched(evt.EvtID) {
		sub.callback(AutoLinkID, evt, sub.privateData)
	}
}

// Post enqueues evt for asynchronous delivery by the drain goroutine,
// honoring opts' wait mode when the queue is full. NONBLOCK-on-full
// returns [ResultTooManyQueuingEvtDesc], the AUTO_LINK-specific
// counterpart to a per-link queue's BufferFull/Busy codes.
func (h *autoLinkHub) Post(evt EvtDesc, opts Options) Result {
	evt.SeqID = h.nextSeq()
	evt.Timestamp = h.cfg.TimeNow()

	switch opts.mode() {
	case waitNonBlock:
		select {
		case h.queue <- evt:
			return ResultSuccess
		default:
			return ResultTooManyQueuingEvtDesc
		}
	case waitTimeout:
		deadline, _ := opts.deadline(h.cfg.TimeNow())
		timer := time.NewTimer(time.Until(deadline))
		defer timer.Stop()
		select {
		case h.queue <- evt:
			return ResultSuccess
		case <-timer.C:
			return ResultTimeout
		}
	default:
		h.queue <- evt
		return ResultSuccess
	}
}

// ForceProc runs evt's matched callbacks synchronously on the calling
// goroutine, bypassing the queue entirely — the deterministic delivery
// policy chosen for forceProcEVT.
func (h *autoLinkHub) ForceProc(evt EvtDesc) Result {
	evt.SeqID = h.nextSeq()
	evt.Timestamp = h.cfg.TimeNow()
	h.deliver(evt)
	return ResultSuccess
}

// WakeupProc runs no callback on the caller's goroutine and does not
// touch the drain goroutine. Because the drain goroutine already blocks
// on a channel receive (so any Post immediately wakes it), there is
// nothing to nudge in this implementation; WakeupProc exists for
// API parity with the original source's distinct wakeup call and always
// succeeds.
func (h *autoLinkHub) WakeupProc() Result {
	return ResultSuccess
}
