// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import "time"

// CmdStatus tracks a [CmdDesc]'s lifecycle as it travels initiator →
// executor → initiator.
type CmdStatus int

const (
	CmdStatusPending CmdStatus = iota
	CmdStatusExecuting
	CmdStatusSuccess
	CmdStatusFailed
	CmdStatusTimeout
)

func (s CmdStatus) String() string {
	switch s {
	case CmdStatusPending:
		return "Pending"
	case CmdStatusExecuting:
		return "Executing"
	case CmdStatusSuccess:
		return "Success"
	case CmdStatusFailed:
		return "Failed"
	case CmdStatusTimeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// CmdDesc describes one command round-trip: the command being invoked,
// its input and output payloads, its lifecycle status, the result code
// the executor finished with, the caller's timeout budget, and an
// optional opaque context value the caller can use to correlate this
// descriptor with application state across the callback boundary.
type CmdDesc struct {
	msgHeader

	// CmdID identifies which command is being invoked.
	CmdID CmdID

	// InputPayload carries the initiator's request bytes.
	InputPayload Payload

	// OutputPayload carries the executor's response bytes. Zero until
	// Status reaches [CmdStatusSuccess] or [CmdStatusFailed].
	OutputPayload Payload

	// Status is the command's current lifecycle state.
	Status CmdStatus

	// Result is the outcome the runtime or the executor's callback
	// produced. ResultSuccess while Status is Pending/Executing.
	Result Result

	// TimeoutMs bounds how long the initiator waits for completion; zero
	// means the caller's [Options] alone govern the wait.
	TimeoutMs int64

	// UserContext is an opaque value the caller may stash here; it stays
	// on the caller's own descriptor and is not sent to the peer, so the
	// executor callback does not see it. The runtime never inspects it.
	UserContext any
}

// NewCmdDesc builds a [CmdDesc] in [CmdStatusPending] for id carrying
// input, stamped with seqID and now.
func NewCmdDesc(id CmdID, input Payload, timeoutMs int64, seqID uint64, now time.Time) CmdDesc {
	return CmdDesc{
		msgHeader:    newMsgHeader(seqID, now),
		CmdID:        id,
		InputPayload: input,
		Status:       CmdStatusPending,
		Result:       ResultSuccess,
		TimeoutMs:    timeoutMs,
	}
}

// Finish transitions desc to a terminal status, recording output and
// result. status must be one of [CmdStatusSuccess], [CmdStatusFailed],
// or [CmdStatusTimeout].
func (desc *CmdDesc) Finish(status CmdStatus, output Payload, result Result) {
	desc.Status = status
	desc.OutputPayload = output
	desc.Result = result
}
