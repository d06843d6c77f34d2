// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCmdIDRoundTrip(t *testing.T) {
	id := NewCmdID(ClassTest, 42)
	assert.Equal(t, ClassTest, id.Class())
	assert.Equal(t, uint64(42), id.Name())
	assert.Equal(t, "TEST/0x2a", id.String())
}

func TestEvtIDRoundTrip(t *testing.T) {
	id := NewEvtID(ClassSystem, 7)
	assert.Equal(t, ClassSystem, id.Class())
	assert.Equal(t, uint64(7), id.Name())
	assert.Equal(t, "SYSTEM/0x7", id.String())
}

func TestMsgClassUnknown(t *testing.T) {
	id := CmdID(packMsgID(msgClass(0), 1))
	assert.Equal(t, "UNKNOWN", id.Class().String())
}

func TestWellKnownIDs(t *testing.T) {
	assert.Equal(t, ClassTest, EvtIDTestKeepalive.Class())
	assert.Equal(t, ClassTest, CmdIDTestPing.Class())
}
