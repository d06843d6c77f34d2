// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"log/slog"
	"reflect"
)

// SubEVT registers callback to receive events whose [EvtID] is in ids.
// The returned [*EvtSubscription] is the capability an unsubscribe call
// must present via [Link.UnsubEVT]. Subscribing the identical
// (callback, privateData) pair a second time returns
// [ResultConflictEventConsumer] — see [Link.subConflicts].
func (l *Link) SubEVT(callback CbProcEvt_F, privateData any, ids []EvtID) (*EvtSubscription, Result) {
	if !l.hasRole(RoleEvtConsumer) {
		return nil, ResultInvalidParam
	}
	l.evtMu.Lock()
	defer l.evtMu.Unlock()

	if l.subConflicts(callback, privateData) {
		return nil, ResultConflictEventConsumer
	}

	set := make(map[EvtID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	sub := &EvtSubscription{callback: callback, privateData: privateData, evtIDs: set}
	l.evtSubs = append(l.evtSubs, sub)
	return sub, ResultSuccess
}

// subConflicts reports whether an identical (callback, privateData)
// pair is already registered; identity is compared by value since
// CbProcEvt_F is a plain func value.
func (l *Link) subConflicts(callback CbProcEvt_F, privateData any) bool {
	for _, sub := range l.evtSubs {
		if funcsEqual(sub.callback, callback) && sub.privateData == privateData {
			return true
		}
	}
	return false
}

// UnsubEVT removes sub from this link's subscription set. Safe to call
// concurrently with [PostEVT]; a post either observes a subscription
// entirely or not at all.
func (l *Link) UnsubEVT(sub *EvtSubscription) Result {
	l.evtMu.Lock()
	defer l.evtMu.Unlock()
	for i, s := range l.evtSubs {
		if s == sub {
			l.evtSubs = append(l.evtSubs[:i], l.evtSubs[i+1:]...)
			return ResultSuccess
		}
	}
	return ResultInvalidParam
}

// Resubscribe atomically swaps sub's EvtID set for newIDs, supporting
// the dynamic-resubscription contract (unsubscribe-then-subscribe must
// become visible after a bounded number of subsequent posts) without a
// window where neither set is active.
func (sub *EvtSubscription) Resubscribe(newIDs []EvtID) {
	set := make(map[EvtID]bool, len(newIDs))
	for _, id := range newIDs {
		set[id] = true
	}
	sub.evtIDs = set
}

// PostEVT posts evt on this link. With [Options.WithSync], the call
// does not return until all matched local subscribers have run; the
// default ASYNC mode dispatches on a detached goroutine per
// subscriber and may return before delivery completes. Returns
// [ResultNoEventConsumer] if no subscription matches.
func (l *Link) PostEVT(evt EvtDesc, opts Options) Result {
	if !l.hasRole(RoleEvtProducer) {
		return ResultInvalidParam
	}
	if r := l.state.Enter(RoleEvtProducer, SubstateDefault); r != ResultSuccess {
		return r
	}
	defer l.state.Exit(RoleEvtProducer)

	evt.SeqID = l.nextSeq()
	evt.Timestamp = l.cfg.TimeNow()

	l.evtMu.Lock()
	matched := make([]*EvtSubscription, 0, len(l.evtSubs))
	for _, sub := range l.evtSubs {
		if sub.matches(evt.EvtID) {
			matched = append(matched, sub)
		}
	}
	l.evtMu.Unlock()

	if err := l.writeFrame(frameEvt, encodeEvtDesc(evt)); err != nil {
		return OSErrClassifier(err)
	}

	if len(matched) == 0 {
		return ResultNoEventConsumer
	}
	l.deliver(matched, evt, opts.IsSync())
	return ResultSuccess
}

func (l *Link) deliver(subs []*EvtSubscription, evt EvtDesc, sync bool) {
	run := func(sub *EvtSubscription) {
		if r := sub.callback(l.ID, evt, sub.privateData); r != ResultSuccess {
			l.logger.Debug("evtCallbackFailed",
				slog.String("linkID", string(l.ID)),
				slog.String("evtID", evt.EvtID.String()),
				slog.String("result", r.String()))
		}
	}
	if sync {
		for _, sub := range subs {
			run(sub)
		}
		return
	}
	for _, sub := range subs {
		go run(sub)
	}
}

// dispatchEvt runs when the peer's frame reader decodes an EVT frame:
// it delivers to local subscribers exactly like a locally posted event,
// completing the producer→consumer half of PostEVT.
func (l *Link) dispatchEvt(evt EvtDesc) {
	l.evtMu.Lock()
	matched := make([]*EvtSubscription, 0, len(l.evtSubs))
	for _, sub := range l.evtSubs {
		if sub.matches(evt.EvtID) {
			matched = append(matched, sub)
		}
	}
	l.evtMu.Unlock()
	l.deliver(matched, evt, false)
}

// funcsEqual compares two CbProcEvt_F values for identity. Go forbids
// comparing func values with ==; reflect.Value.Pointer is the idiomatic
// workaround for closures and top-level functions alike (it is not
// reliable for comparing two distinct closures over the same function
// literal, which is an accepted limitation of callback-identity
// matching here, mirroring the same caveat the original source's
// function-pointer comparison carried).
func funcsEqual(a, b CbProcEvt_F) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
