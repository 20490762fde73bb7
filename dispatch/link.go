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

// Link provides an interface that faces can satisfy (to avoid circular
// dependency between faces and forwarding).
type Link interface {
	String() string
	SetFaceID(faceID uint64)

	FaceID() uint64
	Scope() ndn.Scope
	State() ndn.State

	SendPacket(packet *ndn.PendingPacket) bool
}

// faceDispatch is used to allow forwarding to interact with faces without a
// circular dependency issue.
var faceDispatch sync.Map

// AddFace adds the specified face to the dispatch list.
func AddFace(id uint64, face Link) {
	faceDispatch.Store(id, face)
}

// GetFace returns the specified face or nil if it does not exist.
func GetFace(id uint64) Link {
	face, ok := faceDispatch.Load(id)
	if !ok {
		return nil
	}
	return face.(Link)
}

// GetAllFaces returns all faces currently in the dispatch list.
func GetAllFaces() []Link {
	faces := make([]Link, 0)
	faceDispatch.Range(func(_, face interface{}) bool {
		faces = append(faces, face.(Link))
		return true
	})
	return faces
}

// RemoveFace removes the specified face from the dispatch list.
func RemoveFace(id uint64) {
	faceDispatch.Delete(id)
}
