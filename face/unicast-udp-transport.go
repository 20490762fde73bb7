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

	"github.com/named-data/mobifd/core"
	"github.com/named-data/mobifd/ndn"
	"github.com/named-data/mobifd/ndn/tlv"
	"github.com/named-data/mobifd/ndn/util"
	"golang.org/x/sys/unix"
)

// UnicastUDPTransport is a unicast UDP transport.
type UnicastUDPTransport struct {
	socket int
	transportBase
}

// MakeUnicastUDPTransport creates a new unicast UDP transport.
func MakeUnicastUDPTransport(remoteURI *URI, localURI *URI) (*UnicastUDPTransport, error) {
	remoteURI.Canonize()
	localURI.Canonize()
	if !remoteURI.IsCanonical() || !localURI.IsCanonical() ||
		(remoteURI.Scheme() != "udp4" && remoteURI.Scheme() != "udp6") ||
		remoteURI.Scheme() != localURI.Scheme() {
		return nil, util.ErrNonExistent
	}

	t := new(UnicastUDPTransport)
	t.makeTransportBase(remoteURI, localURI, ndn.NonLocal, ndn.PointToPoint, tlv.MaxNDNPacketSize)

	var err error
	if remoteURI.Scheme() == "udp4" {
		t.socket, err = unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, unix.IPPROTO_UDP)
	} else {
		t.socket, err = unix.Socket(unix.AF_INET6, unix.SOCK_DGRAM, unix.IPPROTO_UDP)
	}
	if err != nil {
		return nil, err
	}

	if err := unix.SetsockoptInt(t.socket, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(t.socket)
		return nil, err
	}

	if remoteURI.Scheme() == "udp4" {
		var localAddr unix.SockaddrInet4
		copy(localAddr.Addr[:], net.ParseIP(localURI.PathHost()).To4())
		localAddr.Port = int(localURI.Port())
		if err := unix.Bind(t.socket, &localAddr); err != nil {
			unix.Close(t.socket)
			return nil, err
		}

		var remoteAddr unix.SockaddrInet4
		copy(remoteAddr.Addr[:], net.ParseIP(remoteURI.PathHost()).To4())
		remoteAddr.Port = int(remoteURI.Port())
		if err := unix.Connect(t.socket, &remoteAddr); err != nil {
			unix.Close(t.socket)
			return nil, err
		}
	} else {
		var localAddr unix.SockaddrInet6
		copy(localAddr.Addr[:], net.ParseIP(localURI.PathHost()).To16())
		localAddr.Port = int(localURI.Port())
		if err := unix.Bind(t.socket, &localAddr); err != nil {
			unix.Close(t.socket)
			return nil, err
		}

		var remoteAddr unix.SockaddrInet6
		copy(remoteAddr.Addr[:], net.ParseIP(remoteURI.PathHost()).To16())
		remoteAddr.Port = int(remoteURI.Port())
		if err := unix.Connect(t.socket, &remoteAddr); err != nil {
			unix.Close(t.socket)
			return nil, err
		}
	}

	t.state = ndn.Up
	return t, nil
}

func (t *UnicastUDPTransport) String() string {
	return "UnicastUDPTransport, FaceID=" + strconv.FormatUint(t.faceID, 10) +
		", RemoteURI=" + t.remoteURI.String() + ", LocalURI=" + t.localURI.String()
}

func (t *UnicastUDPTransport) sendFrame(frame []byte) {
	if len(frame) > t.MTU() {
		core.LogWarn(t, "Attempted to send frame larger than MTU - DROP")
		return
	}

	core.LogDebug(t, "Sending frame of size ", len(frame))
	if _, err := unix.Write(t.socket, frame); err != nil {
		core.LogWarn(t, "Unable to write on socket - DROP and Face DOWN")
		t.changeState(ndn.Down)
		return
	}
	t.nOutBytes += uint64(len(frame))
}

func (t *UnicastUDPTransport) runReceive() {
	recvBuf := make([]byte, tlv.MaxNDNPacketSize)
	for !core.ShouldQuit && t.state == ndn.Up {
		readSize, err := unix.Read(t.socket, recvBuf)
		if err != nil {
			core.LogWarn(t, "Unable to read from socket (", err, ") - DROP and Face DOWN")
			t.changeState(ndn.Down)
			break
		}

		core.LogTrace(t, "Receive of size ", readSize)
		t.nInBytes += uint64(readSize)

		// Determine whether a valid packet was received
		_, _, tlvSize, err := tlv.DecodeTypeLength(recvBuf[:readSize])
		if err == nil && readSize == tlvSize {
			t.linkService.handleIncomingFrame(recvBuf[:tlvSize])
		} else {
			core.LogDebug(t, "Received frame without valid TLV block - DROP")
		}
	}

	t.changeState(ndn.Down)
}

func (t *UnicastUDPTransport) changeState(new ndn.State) {
	if t.state == new {
		return
	}

	core.LogInfo(t, "state: ", t.state, " -> ", new)
	t.state = new

	if t.state != ndn.Up {
		core.LogInfo(t, "Closing UDP socket")
		unix.Close(t.socket)
		t.hasQuit <- true
	}
}
