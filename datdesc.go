// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import "time"

// StreamStatus tracks a DAT stream's lifecycle as observed through a
// given [DatDesc].
type StreamStatus int

const (
	StreamStatusOpen StreamStatus = iota
	StreamStatusClosed
)

func (s StreamStatus) String() string {
	if s == StreamStatusClosed {
		return "Closed"
	}
	return "Open"
}

// DatDesc describes one chunk of a DAT stream: a header, the stream's
// current status, the result the runtime observed delivering or
// receiving this chunk, and the chunk's payload.
type DatDesc struct {
	msgHeader

	// Status reflects whether the stream is still open when this
	// descriptor was produced.
	Status StreamStatus

	// Result is the outcome of the send/recv that produced this
	// descriptor.
	Result Result

	// Payload carries the chunk's bytes.
	Payload Payload
}

// NewDatDesc builds a [DatDesc] for an open stream carrying data,
// stamped with seqID and now.
func NewDatDesc(data Payload, seqID uint64, now time.Time) DatDesc {
	return DatDesc{
		msgHeader: newMsgHeader(seqID, now),
		Status:    StreamStatusOpen,
		Result:    ResultSuccess,
		Payload:   data,
	}
}
