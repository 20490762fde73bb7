/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package dispatch

import (
	"sync"

	"github.com/named-data/mobifd/ndn"
)

// FWThread provides an interface that forwarding threads can satisfy (to
// avoid circular dependency between faces and forwarding).
type FWThread interface {
	String() string

	QueueInterest(packet *ndn.PendingPacket)
	QueueData(packet *ndn.PendingPacket)
}

// fwDispatch is used to allow faces to interact with forwarding without a
// circular dependency issue.
var fwDispatch sync.Map

// AddFWThread adds the specified forwarding thread to the dispatch list.
func AddFWThread(id int, thread FWThread) {
	fwDispatch.Store(id, thread)
}

// GetFWThread returns the specified forwarding thread or nil if it does not exist.
func GetFWThread(id int) FWThread {
	thread, ok := fwDispatch.Load(id)
	if !ok {
		return nil
	}
	return thread.(FWThread)
}
