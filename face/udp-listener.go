/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"context"
	"net"
	"strconv"

	"github.com/named-data/mobifd/core"
	"github.com/named-data/mobifd/face/impl"
	"github.com/named-data/mobifd/ndn/tlv"
	"github.com/named-data/mobifd/ndn/util"
)

// UDPListener listens for incoming UDP unicast remotes and creates a face for
// each new remote endpoint.
type UDPListener struct {
	conn     net.PacketConn
	localURI *URI
	HasQuit  chan bool
}

// MakeUDPListener constructs a UDPListener.
func MakeUDPListener(localURI *URI) (*UDPListener, error) {
	localURI.Canonize()
	if !localURI.IsCanonical() || (localURI.Scheme() != "udp4" && localURI.Scheme() != "udp6") {
		return nil, util.ErrNonExistent
	}

	l := new(UDPListener)
	l.localURI = localURI
	l.HasQuit = make(chan bool, 1)
	return l, nil
}

func (l *UDPListener) String() string {
	return "UDPListener, " + l.localURI.String()
}

// Run starts the UDP listener.
func (l *UDPListener) Run() {
	// Allow the per-remote transports to share the listen port
	listenConfig := &net.ListenConfig{Control: impl.SyscallReuseAddr}

	var listenAddr string
	if l.localURI.Scheme() == "udp4" {
		listenAddr = l.localURI.PathHost() + ":" + strconv.Itoa(int(l.localURI.Port()))
	} else {
		listenAddr = "[" + l.localURI.Path() + "]:" + strconv.Itoa(int(l.localURI.Port()))
	}

	var err error
	l.conn, err = listenConfig.ListenPacket(context.Background(), l.localURI.Scheme(), listenAddr)
	if err != nil {
		core.LogError(l, "Unable to start UDP listener: ", err)
		l.HasQuit <- true
		return
	}

	ipVersion := 4
	if l.localURI.Scheme() == "udp6" {
		ipVersion = 6
	}

	recvBuf := make([]byte, tlv.MaxNDNPacketSize)
	for !core.ShouldQuit {
		readSize, remoteAddr, err := l.conn.ReadFrom(recvBuf)
		if err != nil {
			core.LogWarn(l, "Unable to read from socket (", err, ") - stopping listener")
			break
		}

		host, portStr, err := net.SplitHostPort(remoteAddr.String())
		if err != nil {
			core.LogWarn(l, "Unable to create face from ", remoteAddr.String(), ": could not split host from port")
			continue
		}
		port, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil {
			core.LogWarn(l, "Unable to create face from ", remoteAddr.String(), ": invalid port")
			continue
		}
		remoteURI := MakeUDPFaceURI(ipVersion, host, uint16(port))
		remoteURI.Canonize()
		if !remoteURI.IsCanonical() {
			core.LogWarn(l, "Unable to create face from ", remoteURI.String(), ": remote URI is not canonical")
			continue
		}

		core.LogTrace(l, "Receive of size ", readSize, " from ", remoteURI.String())

		_, _, tlvSize, err := tlv.DecodeTypeLength(recvBuf[:readSize])
		if err != nil {
			core.LogDebug(l, "Received non-TLV from ", remoteURI.String(), " - ignoring")
			continue
		}
		if readSize < tlvSize {
			core.LogDebug(l, "Received truncated TLV from ", remoteURI.String(), " - ignoring")
			continue
		}

		// An existing face for this remote reads from its own connected
		// socket; a frame arriving here means a new remote endpoint
		if existing := FaceTable.GetByURI(remoteURI); existing != nil {
			existing.handleIncomingFrame(recvBuf[:tlvSize])
			continue
		}

		newTransport, err := MakeUnicastUDPTransport(remoteURI, l.localURI)
		if err != nil {
			core.LogError(l, "Failed to create new unicast UDP transport: ", err)
			continue
		}
		newLinkService := MakeBasicLinkService(newTransport)

		// Add face to table and start its thread
		FaceTable.Add(newLinkService)
		go newLinkService.Run()

		// Pass this first frame to the link service for processing
		newLinkService.handleIncomingFrame(recvBuf[:tlvSize])
	}

	l.conn.Close()
	l.HasQuit <- true
}
