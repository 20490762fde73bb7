/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

// Scope indicates the scope of a face.
type Scope int

const (
	// Unknown indicates that the scope is unknown.
	Unknown Scope = -1
	// NonLocal indicates the face is non-local (to another forwarder).
	NonLocal Scope = 0
	// Local indicates the face is local (to an application).
	Local Scope = 1
)

// State indicates the state of a face.
type State int

const (
	// Up indicates the face is up.
	Up State = 0
	// Down indicates the face is down.
	Down State = 1
	// AdminDown indicates the face is administratively down.
	AdminDown State = 2
)

func (s State) String() string {
	switch s {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case AdminDown:
		return "AdminDown"
	default:
		return "Unknown"
	}
}

// LinkType indicates the type of a link.
type LinkType int

const (
	// PointToPoint indicates the link is point-to-point.
	PointToPoint LinkType = 0
	// MultiAccess indicates the link is multi-access.
	MultiAccess LinkType = 1
)
