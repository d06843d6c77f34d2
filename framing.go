// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"encoding/binary"
	"errors"
	"io"
	"net"
)

// frameType tags the discipline a frame's body belongs to. The same
// length-prefixed codec serves both [*FIFOBinder] (over net.Pipe) and
// [*TCPBinder] (over a real socket), so a link's message-discipline
// code never needs to know which transport it is running on.
type frameType byte

const (
	frameEvt frameType = iota + 1
	frameCmdRequest
	frameCmdReply
	frameDat
	frameClose
)

// frameHeaderLen is type(1) | reserved(1) | length(4, big-endian),
// matching the TCP transport's wire format from the protocol design.
const frameHeaderLen = 6

// defaultMaxFrameBody is a frame body bound for [readFrame], which
// rejects a larger body with errFrameTooLarge instead of allocating it.
// Links pass their own bound derived from [Config.TCPMaxFramePayload].
const defaultMaxFrameBody = 1 << 20

// writeFrame writes one length-prefixed frame to w. Safe for use on any
// net.Conn (real socket or net.Pipe); callers serialize their own
// writes per-link since net.Conn.Write is not safe for concurrent use.
func writeFrame(w io.Writer, typ frameType, body []byte) error {
	var hdr [frameHeaderLen]byte
	hdr[0] = byte(typ)
	hdr[1] = 0
	binary.BigEndian.PutUint32(hdr[2:], uint32(len(body)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	_, err := w.Write(body)
	return err
}

// readFrame reads one length-prefixed frame from r, rejecting bodies
// larger than maxBody with [errFrameTooLarge] rather than allocating an
// attacker- or bug-controlled amount of memory.
func readFrame(r io.Reader, maxBody int) (frameType, []byte, error) {
	var hdr [frameHeaderLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, nil, err
	}
	typ := frameType(hdr[0])
	length := binary.BigEndian.Uint32(hdr[2:])
	if int(length) > maxBody {
		return 0, nil, errFrameTooLarge
	}
	body := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, body); err != nil {
			return 0, nil, err
		}
	}
	return typ, body, nil
}

var errFrameTooLarge = errors.New("ioc: frame body exceeds configured maximum")

// isLinkBrokenErr reports whether err from a frame read/write indicates
// the peer tore the link down, as opposed to a more specific failure
// the caller should classify itself.
func isLinkBrokenErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	return false
}
