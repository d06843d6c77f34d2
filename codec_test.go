// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvtDescCodecRoundTrip(t *testing.T) {
	d := NewEvtDesc(EvtIDTestKeepalive, 99, 5, zeroTime)
	got, err := decodeEvtDesc(encodeEvtDesc(d))
	require.NoError(t, err)
	assert.Equal(t, d.EvtID, got.EvtID)
	assert.Equal(t, d.Value, got.Value)
	assert.Equal(t, d.SeqID, got.SeqID)
}

func TestCmdRequestCodecRoundTrip(t *testing.T) {
	d := NewCmdDesc(CmdIDTestPing, NewPayload([]byte("PING"), 64), 5000, 3, zeroTime)
	got, err := decodeCmdRequest(encodeCmdRequest(d), 64)
	require.NoError(t, err)
	assert.Equal(t, d.CmdID, got.CmdID)
	assert.Equal(t, d.TimeoutMs, got.TimeoutMs)
	assert.Equal(t, "PING", string(got.InputPayload.Bytes()))
}

func TestCmdReplyCodecRoundTrip(t *testing.T) {
	d := NewCmdDesc(CmdIDTestPing, Payload{}, 5000, 3, zeroTime)
	d.Finish(CmdStatusSuccess, NewPayload([]byte("PONG"), 64), ResultSuccess)

	got, err := decodeCmdReply(encodeCmdReply(d), 64)
	require.NoError(t, err)
	assert.Equal(t, CmdStatusSuccess, got.Status)
	assert.Equal(t, ResultSuccess, got.Result)
	assert.Equal(t, "PONG", string(got.OutputPayload.Bytes()))
}

func TestDatDescCodecRoundTrip(t *testing.T) {
	d := NewDatDesc(NewPayload([]byte("chunk"), 64), 9, zeroTime)
	got, err := decodeDatDesc(encodeDatDesc(d), 64)
	require.NoError(t, err)
	assert.Equal(t, d.Status, got.Status)
	assert.Equal(t, "chunk", string(got.Payload.Bytes()))
}

func TestDecodeRejectsShortFrames(t *testing.T) {
	_, err := decodeEvtDesc(nil)
	assert.Error(t, err)

	_, err = decodeCmdRequest(nil, 64)
	assert.Error(t, err)

	_, err = decodeCmdReply(nil, 64)
	assert.Error(t, err)

	_, err = decodeDatDesc(nil, 64)
	assert.Error(t, err)
}
