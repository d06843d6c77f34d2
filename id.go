// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// ServiceID opaquely identifies a bound [Service] within the process. The
// registry is the only code allowed to construct one (via [Config.NewID]).
type ServiceID string

// LinkID opaquely identifies one end of a point-to-point Link, or the
// broadcast root of a connectionless group (see [AutoLinkID]). A LinkID
// is never reused within a process's lifetime: once registered, the
// string value returned by [Config.NewID] is retired for good, even
// after the Link it named is closed.
type LinkID string

// AutoLinkID is the distinguished sentinel LinkID denoting the
// process-wide connectionless event link (Conles mode). Unlike every
// other LinkID, it is never minted by [Config.NewID] and is valid for
// the lifetime of the process.
const AutoLinkID LinkID = "AUTO_LINK"

// NewObjectID mints a UUIDv7 string suitable for use as a [ServiceID] or
// [LinkID]. UUIDv7 embeds a millisecond timestamp in its high bits, so
// IDs minted later sort after IDs minted earlier — useful for log
// correlation even though the runtime treats the value as opaque.
//
// This is the default for [Config.NewID], grounded on the teacher's
// NewSpanID (same UUIDv7-via-runtimex.PanicOnError1 idiom, renamed
// because these IDs identify long-lived services/links rather than the
// teacher's short-lived observability spans).
//
// This function panics if the system random number generator fails,
// which should only happen under extraordinary circumstances.
func NewObjectID() string {
	return runtimex.PanicOnError1(uuid.NewV7()).String()
}
