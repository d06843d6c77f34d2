// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import "time"

// EvtDesc describes a single posted event: a header, the [EvtID] being
// posted, and one opaque 64-bit value slot. Events are intentionally
// narrow — unlike CmdDesc/DatDesc they carry no byte payload, matching
// the original source's deliberately minimal IOC_EvtDesc_T.
type EvtDesc struct {
	msgHeader

	// EvtID identifies which event is being posted.
	EvtID EvtID

	// Value is an opaque 64-bit value the producer attaches to the
	// event; its meaning is a convention between producer and consumer,
	// not interpreted by the runtime.
	Value uint64
}

// NewEvtDesc builds an [EvtDesc] for id carrying value, stamped with
// seqID and now.
func NewEvtDesc(id EvtID, value uint64, seqID uint64, now time.Time) EvtDesc {
	return EvtDesc{
		msgHeader: newMsgHeader(seqID, now),
		EvtID:     id,
		Value:     value,
	}
}
