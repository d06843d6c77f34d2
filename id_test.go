// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewObjectID(t *testing.T) {
	id1 := NewObjectID()
	id2 := NewObjectID()

	assert.NotEmpty(t, id1)
	assert.NotEmpty(t, id2)
	assert.NotEqual(t, id1, id2)
}

func TestAutoLinkIDIsStable(t *testing.T) {
	assert.Equal(t, LinkID("AUTO_LINK"), AutoLinkID)
}
