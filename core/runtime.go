/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import "time"

// Version of MobiFD.
var Version string

// BuildTime contains the timestamp of when this version of MobiFD was built.
var BuildTime string

// StartTimestamp is the time the forwarder was started.
var StartTimestamp time.Time

// NumForwardingThreads is the number of forwarding threads.
var NumForwardingThreads int

// ShouldQuit indicates whether all forwarding goroutines should quit.
var ShouldQuit bool
