// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFrame(&buf, frameDat, []byte("hello")))

	typ, body, err := readFrame(&buf, defaultMaxFrameBody)
	require.NoError(t, err)
	assert.Equal(t, frameDat, typ)
	assert.Equal(t, "hello", string(body))
}

func TestWriteReadFrameEmptyBody(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFrame(&buf, frameClose, nil))

	typ, body, err := readFrame(&buf, defaultMaxFrameBody)
	require.NoError(t, err)
	assert.Equal(t, frameClose, typ)
	assert.Empty(t, body)
}

func TestReadFrameRejectsOversizedBody(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFrame(&buf, frameDat, make([]byte, 128)))

	_, _, err := readFrame(&buf, 64)
	assert.ErrorIs(t, err, errFrameTooLarge)
}

func TestReadFrameEOF(t *testing.T) {
	var buf bytes.Buffer
	_, _, err := readFrame(&buf, defaultMaxFrameBody)
	assert.ErrorIs(t, err, io.EOF)
}

func TestIsLinkBrokenErr(t *testing.T) {
	assert.False(t, isLinkBrokenErr(nil))
	assert.True(t, isLinkBrokenErr(io.EOF))
	assert.True(t, isLinkBrokenErr(io.ErrUnexpectedEOF))
}
