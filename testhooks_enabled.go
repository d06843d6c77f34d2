// SPDX-License-Identifier: GPL-3.0-or-later

//go:build ioctest

package ioc

import "sync/atomic"

// testFailNextAllocCount is the number of remaining registry allocations
// (service or link registration) that [testShouldFailAlloc] forces to
// fail with [ResultPosixEnomem], for exercising the runtime's allocation
// failure path without actually exhausting memory.
var testFailNextAllocCount atomic.Int32

// testSetFailNextAlloc arms the next n registry allocations to fail.
// Only linked into builds tagged ioctest; production builds call the
// no-op counterpart in testhooks_disabled.go.
func testSetFailNextAlloc(n int32) {
	testFailNextAllocCount.Store(n)
}

// testShouldFailAlloc reports whether the next registry allocation
// should fail, decrementing the counter if so.
func testShouldFailAlloc() bool {
	for {
		n := testFailNextAllocCount.Load()
		if n <= 0 {
			return false
		}
		if testFailNextAllocCount.CompareAndSwap(n, n-1) {
			return true
		}
	}
}
