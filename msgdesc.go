// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import "time"

// msgHeader is the common prefix every descriptor (EvtDesc, CmdDesc,
// DatDesc) carries: its per-link sequence number and when it was minted.
// Descriptors are plain data, constructed by the caller or the
// transport layer, never by the registry — unlike ServiceID/LinkID they
// are not opaque handles.
type msgHeader struct {
	// SeqID is a per-link monotonically increasing sequence number,
	// assigned by the sending side; a CMD reply carries its request's
	// SeqID so the initiator can match the two.
	SeqID uint64

	// Timestamp records when the descriptor was constructed.
	Timestamp time.Time
}

func newMsgHeader(seqID uint64, now time.Time) msgHeader {
	return msgHeader{SeqID: seqID, Timestamp: now}
}
