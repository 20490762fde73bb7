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
	"strconv"
	"time"

	"github.com/named-data/mobifd/core"
	"github.com/named-data/mobifd/ndn"
	"github.com/named-data/mobifd/ndn/tlv"
	"github.com/named-data/mobifd/tools/mobility"
)

func main() {
	var prefixString string
	flag.StringVar(&prefixString, "prefix", "/example/producer", "Name prefix to request under")
	var forwarder string
	flag.StringVar(&forwarder, "forwarder", "127.0.0.1:6363", "Address of forwarder to connect to")
	var interval time.Duration
	flag.DurationVar(&interval, "interval", time.Second, "Request interval")
	var lifetime time.Duration
	flag.DurationVar(&lifetime, "lifetime", 4*time.Second, "Interest lifetime")
	var threshold int
	flag.IntVar(&threshold, "threshold", mobility.DefaultFailureThreshold, "Consecutive failures before flood-tagging")
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

	tracker := mobility.NewRequestTracker(threshold)

	// Receive loop records successes
	go func() {
		recvBuf := make([]byte, tlv.MaxNDNPacketSize)
		for {
			readSize, err := conn.Read(recvBuf)
			if err != nil {
				core.LogFatal("Consumer", "Unable to read from forwarder: ", err)
			}
			data, err := ndn.DecodeData(recvBuf[:readSize])
			if err != nil {
				core.LogDebug("Consumer", "Received non-Data frame - ignoring")
				continue
			}
			tracker.RecordSuccess(data.Name())
			core.LogInfo("Consumer", "Received Data ", data.Name())
		}
	}()

	send := func(name *ndn.Name) {
		interest := ndn.NewInterest(name)
		interest.SetLifetime(lifetime)
		if tracker.Annotate(interest) {
			core.LogInfo("Consumer", "Requesting flood discovery with Interest ", name)
		}

		wire, err := interest.Encode()
		if err != nil {
			core.LogWarn("Consumer", "Unable to encode Interest ", name, ": ", err)
			return
		}
		if _, err := conn.Write(wire); err != nil {
			core.LogFatal("Consumer", "Unable to write to forwarder: ", err)
		}
		tracker.RecordSent(name)
	}

	core.LogInfo("Consumer", "Requesting under ", prefix, " via ", forwarder)

	seq := uint64(0)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if n := tracker.CollectExpired(lifetime); n > 0 {
			core.LogInfo("Consumer", n, " request(s) expired; ", tracker.ConsecutiveFailures(), " consecutive failures")
		}

		// Retransmissions drain before new requests
		if name := tracker.NextRetransmission(); name != nil {
			send(name)
			continue
		}

		name := prefix.DeepCopy().Append(ndn.NewGenericNameComponent([]byte(strconv.FormatUint(seq, 10))))
		seq++
		send(name)
	}
}
