/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/named-data/mobifd/core"
	"github.com/named-data/mobifd/ndn"
	"github.com/named-data/mobifd/ndn/tlv"
	"github.com/named-data/mobifd/tools/mobility"
)

// hasNonLoopbackAddress reports whether any up interface carries a
// non-loopback address, i.e. whether the host is attached to a network.
func hasNonLoopbackAddress() bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		if len(addrs) > 0 {
			return true
		}
	}
	return false
}

func main() {
	var prefixString string
	flag.StringVar(&prefixString, "prefix", "/example/producer", "Name prefix to serve")
	var forwarder string
	flag.StringVar(&forwarder, "forwarder", "127.0.0.1:6363", "Address of forwarder to connect to")
	var probeInterval time.Duration
	flag.DurationVar(&probeInterval, "probe-interval", 500*time.Millisecond, "Attachment probe interval")
	var payload string
	flag.StringVar(&payload, "payload", "hello", "Content carried in produced Data packets")
	flag.Parse()

	core.InitializeLogger()

	prefix, err := ndn.NameFromString(prefixString)
	if err != nil {
		fmt.Println("Invalid prefix: " + err.Error())
		os.Exit(1)
	}

	conn, err := net.Dial("udp", forwarder)
	if err != nil {
		fmt.Println("Unable to connect to forwarder: " + err.Error())
		os.Exit(1)
	}
	defer conn.Close()

	monitor := mobility.NewAttachmentMonitor(hasNonLoopbackAddress, probeInterval)
	go monitor.Run()
	defer monitor.Stop()

	core.LogInfo("Producer", "Serving ", prefix, " via ", forwarder)

	recvBuf := make([]byte, tlv.MaxNDNPacketSize)
	for {
		readSize, err := conn.Read(recvBuf)
		if err != nil {
			core.LogFatal("Producer", "Unable to read from forwarder: ", err)
		}

		interest, err := ndn.DecodeInterest(recvBuf[:readSize])
		if err != nil {
			core.LogDebug("Producer", "Received non-Interest frame - ignoring")
			continue
		}
		if !prefix.PrefixOf(interest.Name()) {
			core.LogDebug("Producer", "Received Interest outside served prefix - ignoring")
			continue
		}

		data := ndn.NewData(interest.Name().DeepCopy(), []byte(payload))
		data.SetFreshnessPeriod(time.Second)
		if monitor.Annotate(data) {
			core.LogInfo("Producer", "Announcing fresh attachment with Data ", data.Name())
		}

		wire, err := data.Encode()
		if err != nil {
			core.LogWarn("Producer", "Unable to encode Data ", data.Name(), ": ", err)
			continue
		}
		if _, err := conn.Write(wire); err != nil {
			core.LogFatal("Producer", "Unable to write to forwarder: ", err)
		}
		core.LogDebug("Producer", "Satisfied Interest ", interest.Name())
	}
}
