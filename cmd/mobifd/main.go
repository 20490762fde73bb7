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
	"os/signal"
	"syscall"
	"time"

	"github.com/named-data/mobifd/core"
	"github.com/named-data/mobifd/dispatch"
	"github.com/named-data/mobifd/face"
	"github.com/named-data/mobifd/fw"
	"github.com/named-data/mobifd/table"
)

// Version of MobiFD.
var Version string

// BuildTime contains the timestamp of when this version of MobiFD was built.
var BuildTime string

func main() {
	core.Version = Version
	core.BuildTime = BuildTime
	core.StartTimestamp = time.Now()

	var shouldPrintVersion bool
	flag.BoolVar(&shouldPrintVersion, "version", false, "Print version and exit")
	var configFileName string
	flag.StringVar(&configFileName, "config", "/usr/local/etc/mobifd/mobifd.toml", "Configuration file location")
	flag.IntVar(&core.NumForwardingThreads, "threads", 8, "Number of forwarding threads")
	var disableWebSocket bool
	flag.BoolVar(&disableWebSocket, "disable-websocket", false, "Disable WebSocket listener")
	flag.Parse()

	if shouldPrintVersion {
		fmt.Println("MobiFD: a mobility-bridging NDN forwarding daemon")
		fmt.Println("Version " + core.Version + " (Built " + core.BuildTime + ")")
		fmt.Println("Copyright (C) 2024-2026 The MobiFD Authors")
		fmt.Println("Released under the terms of the MIT License")
		return
	}

	if core.NumForwardingThreads < 1 || core.NumForwardingThreads > fw.MaxFwThreads {
		fmt.Println("Number of forwarding threads must be in range [1, ", fw.MaxFwThreads, "]")
		os.Exit(1)
	}

	if _, err := os.Stat(configFileName); err == nil {
		core.LoadConfig(configFileName)
	}
	core.InitializeLogger()
	table.Configure()
	fw.Configure()
	face.Configure()

	core.LogInfo("Main", "Starting MobiFD")

	// Create forwarding threads
	fw.Threads = make(map[int]*fw.Thread)
	for i := 0; i < core.NumForwardingThreads; i++ {
		newThread := fw.NewThread(i)
		fw.Threads[i] = newThread
		dispatch.AddFWThread(i, newThread)
		go fw.Threads[i].Run()
	}

	// Create a UDP listener for every up interface address
	ifaces, err := net.Interfaces()
	if err != nil {
		core.LogFatal("Main", "Unable to access network interfaces: ", err)
		os.Exit(2)
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			core.LogInfo("Main", "Skipping interface ", iface.Name, " because not up")
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			core.LogFatal("Main", "Unable to access addresses on network interface ", iface.Name, ": ", err)
			os.Exit(2)
		}
		for _, addr := range addrs {
			ipAddr := addr.(*net.IPNet)

			ipVersion := 4
			path := ipAddr.IP.String()
			if ipAddr.IP.To4() == nil {
				ipVersion = 6
				path += "%" + iface.Name
			}

			udpListener, err := face.MakeUDPListener(face.MakeUDPFaceURI(ipVersion, path, face.UDPUnicastPort))
			if err != nil {
				core.LogError("Main", "Unable to create UDP listener for ", path, " on ", iface.Name, ": ", err)
				continue
			}
			go udpListener.Run()
			core.LogInfo("Main", "Created UDP listener for ", path, " on ", iface.Name)
		}
	}

	// Set up WebSocket listener
	var wsListener *face.WebSocketListener
	if !disableWebSocket {
		wsListener = face.MakeWebSocketListener("", face.WebSocketPort)
		go wsListener.Run()
		core.LogInfo("Main", "Created WebSocket listener on port ", face.WebSocketPort)
	}

	// Set up signal handler channel and wait for interrupt
	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM)
	receivedSig := <-sigChannel
	core.LogInfo("Main", "Received signal ", receivedSig, " - exiting")
	core.ShouldQuit = true

	if wsListener != nil {
		wsListener.Close()
	}

	// Tell all forwarding threads to quit
	for _, thread := range fw.Threads {
		thread.TellToQuit()
	}

	// Wait for all forwarding threads to have quit
	for _, thread := range fw.Threads {
		<-thread.HasQuit
	}
}
