// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

// Result is the runtime's error taxonomy. Every public operation returns
// a Result instead of an ad hoc error value, so failures can be compared
// with == in both production code and tests.
//
// Result implements the error interface so it composes with normal Go
// error-handling idiom (it can be wrapped, checked with errors.Is against
// itself, and passed to an [ErrClassifier] or [SLogger] field).
type Result int

// Result taxonomy. ResultSuccess is the zero value so a freshly declared
// Result (and a nil error converted via [ResultFromError]) is never
// mistaken for a failure.
const (
	ResultSuccess Result = iota
	ResultInvalidParam
	ResultNotExistLink
	ResultNotExistService
	ResultLinkBroken
	ResultTimeout
	ResultBusy
	ResultBufferFull
	ResultNoData
	ResultNoCmdPending
	ResultStreamClosed
	ResultDataTooLarge
	ResultDataCorrupted
	ResultNoEventConsumer
	ResultTooManyEventConsumers
	ResultConflictEventConsumer
	ResultTooManyQueuingEvtDesc
	ResultNoCmdExecutor
	ResultCmdExecFailed
	ResultPortInUse
	ResultConnectionRefused
	ResultNotSupported
	ResultNotImplemented
	ResultPosixEnomem
	// ResultBug is the catch-all for internal invariant violations. Tests
	// must treat any occurrence of ResultBug as a failure, not a result
	// to branch on.
	ResultBug
)

// resultNames is an array indexed by [Result] holding one name per
// constant (no reflection, no generated code).
var resultNames = [...]string{
	ResultSuccess:               "Success",
	ResultInvalidParam:          "InvalidParam",
	ResultNotExistLink:          "NotExistLink",
	ResultNotExistService:       "NotExistService",
	ResultLinkBroken:            "LinkBroken",
	ResultTimeout:               "Timeout",
	ResultBusy:                  "Busy",
	ResultBufferFull:            "BufferFull",
	ResultNoData:                "NoData",
	ResultNoCmdPending:          "NoCmdPending",
	ResultStreamClosed:          "StreamClosed",
	ResultDataTooLarge:          "DataTooLarge",
	ResultDataCorrupted:         "DataCorrupted",
	ResultNoEventConsumer:       "NoEventConsumer",
	ResultTooManyEventConsumers: "TooManyEventConsumers",
	ResultConflictEventConsumer: "ConflictEventConsumer",
	ResultTooManyQueuingEvtDesc: "TooManyQueuingEvtDesc",
	ResultNoCmdExecutor:         "NoCmdExecutor",
	ResultCmdExecFailed:         "CmdExecFailed",
	ResultPortInUse:             "PortInUse",
	ResultConnectionRefused:     "ConnectionRefused",
	ResultNotSupported:          "NotSupported",
	ResultNotImplemented:        "NotImplemented",
	ResultPosixEnomem:           "PosixEnomem",
	ResultBug:                   "Bug",
}

// String implements fmt.Stringer.
func (r Result) String() string {
	if int(r) >= 0 && int(r) < len(resultNames) && resultNames[r] != "" {
		return resultNames[r]
	}
	return "Unknown"
}

// Error implements the error interface, so a Result can be returned
// wherever Go idiom expects an error while still comparing equal with ==
// in tests (assert.Equal(t, ResultTimeout, err)).
func (r Result) Error() string {
	return r.String()
}

// IsSuccess reports whether r is [ResultSuccess].
func (r Result) IsSuccess() bool {
	return r == ResultSuccess
}

// ResultFromError maps a nil error to [ResultSuccess] and any non-nil,
// non-Result error to [ResultBug], since every internal failure path is
// expected to already carry a specific Result; anything else indicates a
// code path that forgot to classify its failure.
func ResultFromError(err error) Result {
	if err == nil {
		return ResultSuccess
	}
	if r, ok := err.(Result); ok {
		return r
	}
	return ResultBug
}
