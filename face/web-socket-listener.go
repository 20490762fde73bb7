/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/named-data/mobifd/core"
)

// WebSocketListener listens for incoming WebSocket connections.
type WebSocketListener struct {
	server   http.Server
	upgrader websocket.Upgrader
	localURI *URI
}

// MakeWebSocketListener constructs a WebSocketListener.
func MakeWebSocketListener(bind string, port uint16) *WebSocketListener {
	l := new(WebSocketListener)
	l.localURI = MakeWebSocketServerFaceURI(bind, port)
	l.server = http.Server{Addr: net.JoinHostPort(bind, strconv.FormatUint(uint64(port), 10))}
	l.upgrader = websocket.Upgrader{
		WriteBufferPool: &sync.Pool{},
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	return l
}

func (l *WebSocketListener) String() string {
	return "WebSocketListener, " + l.localURI.String()
}

// Run starts the WebSocket listener.
func (l *WebSocketListener) Run() {
	l.server.Handler = http.HandlerFunc(l.handler)

	err := l.server.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		core.LogFatal(l, "Unable to start listener: ", err)
	}
}

func (l *WebSocketListener) handler(w http.ResponseWriter, r *http.Request) {
	c, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	newTransport := NewWebSocketTransport(l.localURI, c)
	core.LogInfo(l, "Accepting new WebSocket face ", newTransport.RemoteURI())

	newLinkService := MakeBasicLinkService(newTransport)
	FaceTable.Add(newLinkService)
	go newLinkService.Run()
}

// Close stops the WebSocket listener.
func (l *WebSocketListener) Close() {
	core.LogInfo(l, "Stopping listener")
	l.server.Shutdown(context.TODO())
}
