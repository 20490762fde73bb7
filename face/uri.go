/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"net"
	"strconv"
	"strings"

	"github.com/named-data/mobifd/ndn/util"
)

type uriType int

const (
	nullURI uriType = iota
	udpURI
	wsURI
	wsclientURI
	internalURI
)

// URI represents a URI for a face.
type URI struct {
	uriType uriType
	scheme  string
	path    string
	port    uint16
}

// MakeNullFaceURI constructs a null face URI.
func MakeNullFaceURI() *URI {
	return &URI{nullURI, "null", "", 0}
}

// MakeUDPFaceURI constructs a URI for a UDP face.
func MakeUDPFaceURI(ipVersion int, host string, port uint16) *URI {
	return &URI{udpURI, "udp" + strconv.Itoa(ipVersion), host, port}
}

// MakeWebSocketServerFaceURI constructs a URI for a WebSocket server.
func MakeWebSocketServerFaceURI(host string, port uint16) *URI {
	return &URI{wsURI, "ws", host, port}
}

// MakeWebSocketClientFaceURI constructs a URI for a WebSocket client.
func MakeWebSocketClientFaceURI(addr net.Addr) *URI {
	host, portStr, _ := net.SplitHostPort(addr.String())
	port, _ := strconv.ParseUint(portStr, 10, 16)
	return &URI{wsclientURI, "wsclient", host, uint16(port)}
}

// MakeInternalFaceURI constructs a URI for an internal face.
func MakeInternalFaceURI() *URI {
	return &URI{internalURI, "internal", "", 0}
}

// Scheme returns the scheme of the face URI.
func (u *URI) Scheme() string {
	return u.scheme
}

// Path returns the path of the face URI.
func (u *URI) Path() string {
	return u.path
}

// PathHost returns the host component of the path of the face URI.
func (u *URI) PathHost() string {
	pathComponents := strings.Split(u.path, "%")
	if len(pathComponents) < 1 {
		return ""
	}
	return pathComponents[0]
}

// Port returns the port of the face URI.
func (u *URI) Port() uint16 {
	return u.port
}

// IsCanonical returns whether the face URI is canonical.
func (u *URI) IsCanonical() bool {
	switch u.uriType {
	case nullURI:
		return u.scheme == "null" && u.path == "" && u.port == 0
	case udpURI:
		ip := net.ParseIP(u.PathHost())
		return ip != nil && ((u.scheme == "udp4" && ip.To4() != nil) || (u.scheme == "udp6" && ip.To16() != nil)) && u.port > 0
	case wsURI:
		return u.scheme == "ws" && u.port > 0
	case wsclientURI:
		return u.scheme == "wsclient" && net.ParseIP(u.PathHost()) != nil && u.port > 0
	case internalURI:
		return u.scheme == "internal" && u.path == "" && u.port == 0
	default:
		return false
	}
}

// Canonize attempts to canonize the URI, if not already canonical. Hostnames
// are resolved and the scheme is adjusted to the resolved address family.
func (u *URI) Canonize() error {
	if u.IsCanonical() {
		return nil
	}

	switch u.uriType {
	case udpURI, wsclientURI:
		ip := net.ParseIP(u.PathHost())
		if ip == nil {
			resolved, err := net.ResolveIPAddr("ip", u.PathHost())
			if err != nil {
				return util.ErrNonExistent
			}
			ip = resolved.IP
		}
		u.path = ip.String()
		if u.uriType == udpURI {
			if ip.To4() != nil {
				u.scheme = "udp4"
			} else {
				u.scheme = "udp6"
			}
		}
	}

	if !u.IsCanonical() {
		return util.ErrNonExistent
	}
	return nil
}

func (u *URI) String() string {
	switch u.uriType {
	case udpURI, wsclientURI:
		if strings.Contains(u.path, ":") {
			return u.scheme + "://[" + u.path + "]:" + strconv.FormatUint(uint64(u.port), 10)
		}
		return u.scheme + "://" + u.path + ":" + strconv.FormatUint(uint64(u.port), 10)
	case wsURI:
		return u.scheme + "://" + net.JoinHostPort(u.path, strconv.FormatUint(uint64(u.port), 10))
	case internalURI:
		return "internal://"
	default:
		return "null://"
	}
}
