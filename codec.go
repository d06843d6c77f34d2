// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"encoding/binary"
	"fmt"
	"time"
)

// zeroTime stands in for a descriptor's Timestamp on the receiving end
// of a decode: the wire format never carries timestamps (only the
// sender's local Timestamp would be meaningful, and clocks aren't
// synchronized across processes), so the receiver's own code stamps a
// fresh one immediately after decoding where it matters.
var zeroTime = time.Time{}

// Wire encoding for the three descriptor kinds that cross a frame
// boundary. Payloads are opaque byte ranges (per the runtime's
// Non-goals: no codec/schema evolution), so these are fixed, minimal
// layouts rather than a general-purpose serialization format — each
// discipline gets exactly the fields it needs on the wire, and nothing
// else (e.g. Timestamp is stamped locally on receipt, never sent).

func encodeEvtDesc(d EvtDesc) []byte {
	buf := make([]byte, 24)
	binary.BigEndian.PutUint64(buf[0:], d.SeqID)
	binary.BigEndian.PutUint64(buf[8:], uint64(d.EvtID))
	binary.BigEndian.PutUint64(buf[16:], d.Value)
	return buf
}

func decodeEvtDesc(body []byte) (EvtDesc, error) {
	if len(body) < 24 {
		return EvtDesc{}, fmt.Errorf("ioc: short EvtDesc frame (%d bytes)", len(body))
	}
	return EvtDesc{
		msgHeader: newMsgHeader(binary.BigEndian.Uint64(body[0:]), zeroTime),
		EvtID:     EvtID(binary.BigEndian.Uint64(body[8:])),
		Value:     binary.BigEndian.Uint64(body[16:]),
	}, nil
}

// encodeCmdRequest encodes the initiator→executor direction of a CmdDesc.
func encodeCmdRequest(d CmdDesc) []byte {
	input := d.InputPayload
	body := input.Bytes()
	buf := make([]byte, 28+len(body))
	binary.BigEndian.PutUint64(buf[0:], d.SeqID)
	binary.BigEndian.PutUint64(buf[8:], uint64(d.CmdID))
	binary.BigEndian.PutUint64(buf[16:], uint64(d.TimeoutMs))
	binary.BigEndian.PutUint32(buf[24:], uint32(len(body)))
	copy(buf[28:], body)
	return buf
}

func decodeCmdRequest(body []byte, threshold int) (CmdDesc, error) {
	if len(body) < 28 {
		return CmdDesc{}, fmt.Errorf("ioc: short CmdDesc request frame (%d bytes)", len(body))
	}
	n := binary.BigEndian.Uint32(body[24:])
	if len(body) < 28+int(n) {
		return CmdDesc{}, fmt.Errorf("ioc: truncated CmdDesc request payload")
	}
	return CmdDesc{
		msgHeader:    newMsgHeader(binary.BigEndian.Uint64(body[0:]), zeroTime),
		CmdID:        CmdID(binary.BigEndian.Uint64(body[8:])),
		TimeoutMs:    int64(binary.BigEndian.Uint64(body[16:])),
		InputPayload: NewPayload(body[28:28+n], threshold),
		Status:       CmdStatusExecuting,
		Result:       ResultSuccess,
	}, nil
}

// encodeCmdReply encodes the executor→initiator direction of a CmdDesc.
func encodeCmdReply(d CmdDesc) []byte {
	output := d.OutputPayload
	body := output.Bytes()
	buf := make([]byte, 17+len(body))
	binary.BigEndian.PutUint64(buf[0:], d.SeqID)
	buf[8] = byte(d.Status)
	binary.BigEndian.PutUint32(buf[9:], uint32(d.Result))
	binary.BigEndian.PutUint32(buf[13:], uint32(len(body)))
	copy(buf[17:], body)
	return buf
}

func decodeCmdReply(body []byte, threshold int) (CmdDesc, error) {
	if len(body) < 17 {
		return CmdDesc{}, fmt.Errorf("ioc: short CmdDesc reply frame (%d bytes)", len(body))
	}
	n := binary.BigEndian.Uint32(body[13:])
	if len(body) < 17+int(n) {
		return CmdDesc{}, fmt.Errorf("ioc: truncated CmdDesc reply payload")
	}
	return CmdDesc{
		msgHeader:     newMsgHeader(binary.BigEndian.Uint64(body[0:]), zeroTime),
		Status:        CmdStatus(body[8]),
		Result:        Result(int32(binary.BigEndian.Uint32(body[9:]))),
		OutputPayload: NewPayload(body[17:17+n], threshold),
	}, nil
}

func encodeDatDesc(d DatDesc) []byte {
	body := d.Payload.Bytes()
	buf := make([]byte, 17+len(body))
	binary.BigEndian.PutUint64(buf[0:], d.SeqID)
	buf[8] = byte(d.Status)
	binary.BigEndian.PutUint32(buf[9:], uint32(d.Result))
	binary.BigEndian.PutUint32(buf[13:], uint32(len(body)))
	copy(buf[17:], body)
	return buf
}

func decodeDatDesc(body []byte, threshold int) (DatDesc, error) {
	if len(body) < 17 {
		return DatDesc{}, fmt.Errorf("ioc: short DatDesc frame (%d bytes)", len(body))
	}
	n := binary.BigEndian.Uint32(body[13:])
	if len(body) < 17+int(n) {
		return DatDesc{}, fmt.Errorf("ioc: truncated DatDesc payload")
	}
	return DatDesc{
		msgHeader: newMsgHeader(binary.BigEndian.Uint64(body[0:]), zeroTime),
		Status:    StreamStatus(body[8]),
		Result:    Result(int32(binary.BigEndian.Uint32(body[9:]))),
		Payload:   NewPayload(body[17:17+n], threshold),
	}, nil
}
