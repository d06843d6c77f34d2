// SPDX-License-Identifier: GPL-3.0-or-later

// Package ioc implements an inter-object-communication runtime: an
// in-process and cross-process message fabric that unifies three message
// disciplines over a single connection-oriented abstraction, a Link.
//
// # Disciplines
//
//   - EVT: fire-and-forget events, posted to subscribers of a link or,
//     in connectionless mode, to every process-wide subscriber (see
//     [SubEVT], [PostEVT], [BroadcastEVT], [AutoLinkID]).
//   - CMD: synchronous request/response commands with timeout and
//     cancellation semantics, executed either via callback or by polling
//     (see [ExecCMD], [WaitCMD], [AckCMD]).
//   - DAT: ordered, reliable, backpressured chunk streams (see [SendDAT],
//     [RecvDAT], [FlushDAT]).
//
// # Services and Links
//
// A producer creates a [Service] bound to a transport with [OnlineService].
// A consumer calls [ConnectService] to obtain a client [Link]; the
// service's [AcceptClient] call (or its auto-accept flag) produces the
// paired server-side Link. Every subsequent EVT/CMD/DAT operation is
// issued against a LinkID and is routed through the transport that bound
// the service (see [Binder], [FIFOBinder], [TCPBinder]).
//
// Every Link carries a three-level state — connection state, per-role
// operation state, and substate — queryable atomically via [GetLinkState].
//
// # Observability
//
// All primitives support structured logging via [SLogger] (compatible
// with [log/slog]). By default, logging is disabled. Error classification
// for logging is configurable via [ErrClassifier]; the runtime
// additionally uses [OSErrClassifier] to translate OS-level socket errors
// into the [Result] taxonomy used throughout the public API.
//
// # Concurrency
//
// Callers may invoke the public API from any goroutine. Blocking
// operations ([ConnectService], [AcceptClient], [ExecCMD], [WaitCMD],
// [AckCMD], [SendDAT], [RecvDAT], [FlushDAT], and [PostEVT] in SYNC mode)
// respect the caller's [Options] (BLOCKING / NONBLOCK / TIMEOUT) and wake
// up with [ResultLinkBroken] when [CloseLink] tears down the link they
// are waiting on.
//
// # Persistence
//
// None. The runtime is strictly in-memory; all state is lost at process
// exit. There is no security/auth layer, no cross-host routing beyond a
// loopback TCP transport, and no codec/schema evolution for payloads
// (payloads are opaque byte ranges).
package ioc
