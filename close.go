// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

// closeLink implements the synchronous, idempotent close contract
// (§3.5/§4.10): transition Level 1 to Closing (waking every blocked
// operation on this link with [ResultLinkBroken] via the state
// machine's done channel), notify the peer, drop the conn, then
// transition to Closed. Removing the link from the registry is left to
// [Runtime.CloseLink].
func (l *Link) closeLink() Result {
	l.closeOnce.Do(func() {
		l.state.SetConnState(ConnStateClosing)
		l.writeFrame(frameClose, nil)
		l.conn.Close()
		l.state.SetConnState(ConnStateClosed)
	})
	return ResultSuccess
}

// CloseLink closes link, waking any blocked operation on it with
// [ResultLinkBroken], and removes it from the registry. A closed
// LinkID is never reused; a second CloseLink on the same ID returns
// [ResultNotExistLink].
func (rt *Runtime) CloseLink(id LinkID) Result {
	link, result := rt.reg.resolveLink(id)
	if result != ResultSuccess {
		return result
	}
	result = link.closeLink()
	rt.reg.unregisterLink(id)
	return result
}

// GetLinkState returns the (Conn, Op, Sub) triple for id and role, or
// [ResultNotExistLink] if id is unknown or already closed.
func (rt *Runtime) GetLinkState(id LinkID, role Role) (LinkState, Result) {
	link, result := rt.reg.resolveLink(id)
	if result != ResultSuccess {
		return LinkState{}, result
	}
	return link.state.Snapshot(role), ResultSuccess
}
