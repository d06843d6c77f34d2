// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"net"
	"time"
)

// Config holds common configuration for runtime operations.
//
// Pass this to [NewRuntime], which hands it to the [Binder]
// implementations and every [Link] they create. All fields have
// sensible defaults set by [NewConfig].
type Config struct {
	// Dialer is used by [*TCPBinder] to establish outbound connections.
	//
	// Set by [NewConfig] to [*net.Dialer].
	Dialer Dialer

	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewConfig] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] used for structured logging of lifecycle
	// and I/O events.
	//
	// Set by [NewConfig] to [DefaultSLogger].
	Logger SLogger

	// TimeNow returns the current time.
	//
	// Set by [NewConfig] to [time.Now].
	TimeNow func() time.Time

	// NewID mints a new opaque identifier for services and links.
	//
	// Set by [NewConfig] to [NewObjectID].
	NewID func() string

	// FIFOQueueCapacity bounds each link's CMD-executor and DAT-receive
	// queues (on FIFO and TCP links alike) and each service's accept
	// queue.
	//
	// Set by [NewConfig] to 64.
	FIFOQueueCapacity int

	// EmbeddedPayloadThreshold is the maximum payload size, in bytes,
	// that [Payload] stores inline instead of on the heap.
	//
	// Set by [NewConfig] to 64.
	EmbeddedPayloadThreshold int

	// TCPMaxFramePayload bounds the payload a single frame carries on
	// any link (FIFO or TCP); larger DAT chunks are rejected with
	// [ResultDataTooLarge].
	//
	// Set by [NewConfig] to 1<<20 (1 MiB).
	TCPMaxFramePayload int

	// AutoLinkQueueCapacity bounds the process-wide connectionless
	// event queue rooted at [AutoLinkID].
	//
	// Set by [NewConfig] to 256.
	AutoLinkQueueCapacity int
}

// NewConfig creates a [*Config] with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Dialer:                   &net.Dialer{},
		ErrClassifier:            DefaultErrClassifier,
		Logger:                   DefaultSLogger(),
		TimeNow:                  time.Now,
		NewID:                    NewObjectID,
		FIFOQueueCapacity:        64,
		EmbeddedPayloadThreshold: 64,
		TCPMaxFramePayload:       1 << 20,
		AutoLinkQueueCapacity:    256,
	}
}
