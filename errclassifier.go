// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import "github.com/bassosimone/errclass"

// ErrClassifier classifies errors into categorical strings for analysis.
//
// Implementations map errors to short, descriptive labels (e.g., "ETIMEDOUT",
// "ECONNRESET") that facilitate systematic analysis of runtime log events.
type ErrClassifier interface {
	Classify(err error) string
}

// ErrClassifierFunc adapts a function to the [ErrClassifier] interface.
//
// This allows using simple functions as classifiers:
//
//	op.ErrClassifier = ErrClassifierFunc(errclass.New)
type ErrClassifierFunc func(error) string

var _ ErrClassifier = ErrClassifierFunc(nil)

// Classify implements [ErrClassifier].
func (f ErrClassifierFunc) Classify(err error) string {
	return f(err)
}

// DefaultErrClassifier classifies errors using [errclass.New].
var DefaultErrClassifier = ErrClassifierFunc(errclass.New)

// OSErrClassifier maps a transport-level error into a [Result] from the
// runtime's result taxonomy, instead of a logging label. [Link]'s EVT,
// CMD and DAT operations use it to decide which [Result] to return when
// a frame write fails.
//
// The mapping is grounded on the same OS error families the teacher's
// vendored errclass/unix.go and errclass/windows.go classify by label:
// ECONNRESET/ECONNABORTED/ENOTCONN mean the peer tore the link down
// ([ResultLinkBroken]); ECONNREFUSED means nothing is listening
// ([ResultConnectionRefused]); EADDRINUSE means the service's URI is
// already bound ([ResultPortInUse]); ETIMEDOUT maps to [ResultTimeout];
// any other error maps to [ResultLinkBroken].
func OSErrClassifier(err error) Result {
	if err == nil {
		return ResultSuccess
	}
	switch errclass.New(err) {
	case errclass.ECONNRESET, errclass.ECONNABORTED, errclass.ENOTCONN:
		return ResultLinkBroken
	case errclass.ECONNREFUSED:
		return ResultConnectionRefused
	case errclass.EADDRINUSE:
		return ResultPortInUse
	case errclass.ETIMEDOUT:
		return ResultTimeout
	default:
		return ResultLinkBroken
	}
}
