// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Protocol selects which [Binder] a [ServiceURI] resolves to.
type Protocol string

const (
	// ProtocolAuto picks [ProtocolFIFO] when Host is [LocalProcessHost],
	// [ProtocolTCP] otherwise.
	ProtocolAuto Protocol = "auto"
	ProtocolFIFO Protocol = "fifo"
	ProtocolTCP  Protocol = "tcp"
)

// LocalProcessHost is the distinguished host value selecting the
// in-process FIFO transport regardless of protocol.
const LocalProcessHost = "LocalProcess"

// ServiceURI identifies a bindable service endpoint: protocol://host[:port]/path.
// Two services with the same normalized URI cannot be online simultaneously.
type ServiceURI struct {
	Protocol Protocol
	Host     string
	Port     uint16
	Path     string
}

// ParseServiceURI parses "protocol://host[:port]/path" into a
// [ServiceURI], resolving [ProtocolAuto] per the host convention:
// [LocalProcessHost] selects FIFO, anything else selects TCP.
func ParseServiceURI(raw string) (ServiceURI, Result) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ServiceURI{}, ResultInvalidParam
	}

	proto := Protocol(strings.ToLower(u.Scheme))
	switch proto {
	case ProtocolAuto, ProtocolFIFO, ProtocolTCP:
	default:
		return ServiceURI{}, ResultInvalidParam
	}

	host := u.Hostname()
	var port uint16
	if portStr := u.Port(); portStr != "" {
		n, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil {
			return ServiceURI{}, ResultInvalidParam
		}
		port = uint16(n)
	}

	resolved := proto
	if resolved == ProtocolAuto {
		if host == LocalProcessHost {
			resolved = ProtocolFIFO
		} else {
			resolved = ProtocolTCP
		}
	}
	if resolved == ProtocolTCP && port == 0 {
		return ServiceURI{}, ResultInvalidParam
	}

	return ServiceURI{
		Protocol: resolved,
		Host:     host,
		Port:     port,
		Path:     strings.TrimPrefix(u.Path, "/"),
	}, ResultSuccess
}

// String renders the URI back to "protocol://host[:port]/path" form,
// using the resolved protocol (never "auto").
func (u ServiceURI) String() string {
	hostport := u.Host
	if u.Port != 0 {
		hostport = fmt.Sprintf("%s:%d", u.Host, u.Port)
	}
	return fmt.Sprintf("%s://%s/%s", u.Protocol, hostport, u.Path)
}

// Key is the normalized identity used by the registry to reject
// duplicate online services: two URIs with the same Key cannot be
// online simultaneously.
func (u ServiceURI) Key() string {
	return u.String()
}
