/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"container/list"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/named-data/mobifd/ndn"
)

// FibTable is the global steady-state FIB, shared across all forwarding threads.
var FibTable *Fib

// FibNextHopEntry represents a nexthop in a FIB entry.
type FibNextHopEntry struct {
	Nexthop uint64
	Cost    uint64
}

type fibTreeEntry struct {
	component ndn.NameComponent
	name      *ndn.Name
	depth     int
	parent    *fibTreeEntry
	children  []*fibTreeEntry
	nexthops  []*FibNextHopEntry
}

// Fib represents a tree implementation of the steady-state FIB.
type Fib struct {
	root *fibTreeEntry

	// fibRWMutex synchronizes accesses to the FIB, which is shared across
	// all the forwarding threads.
	fibRWMutex sync.RWMutex

	fibPrefixes map[uint64]*fibTreeEntry
}

// CreateFibTable creates the global FIB.
func CreateFibTable() {
	FibTable = new(Fib)
	FibTable.root = new(fibTreeEntry)
	// Root component will be nil since it represents zero components
	FibTable.root.name = ndn.NewName()
	FibTable.fibPrefixes = make(map[uint64]*fibTreeEntry)
}

func init() {
	CreateFibTable()
}

// findExactMatchEntry returns the entry corresponding to the exact match of
// the given name. It returns nil if no exact match was found.
func (f *fibTreeEntry) findExactMatchEntry(name *ndn.Name) *fibTreeEntry {
	if name.Size() > f.depth {
		for _, child := range f.children {
			if name.At(child.depth - 1).Equals(child.component) {
				return child.findExactMatchEntry(name)
			}
		}
	} else if name.Size() == f.depth {
		return f
	}
	return nil
}

// findLongestPrefixEntry returns the entry corresponding to the longest
// prefix match of the given name.
func (f *fibTreeEntry) findLongestPrefixEntry(name *ndn.Name) *fibTreeEntry {
	if name.Size() > f.depth {
		for _, child := range f.children {
			if name.At(child.depth - 1).Equals(child.component) {
				return child.findLongestPrefixEntry(name)
			}
		}
	}
	return f
}

// fillTreeToPrefix breaks the given name into components and adds nodes to the
// tree for any missing components.
func (f *Fib) fillTreeToPrefix(name *ndn.Name) *fibTreeEntry {
	curNode := f.root.findLongestPrefixEntry(name)
	for depth := curNode.depth + 1; depth <= name.Size(); depth++ {
		newNode := new(fibTreeEntry)
		newNode.component = name.At(depth - 1).DeepCopy()
		newNode.depth = depth
		newNode.parent = curNode
		curNode.children = append(curNode.children, newNode)
		curNode = newNode
	}
	return curNode
}

// pruneIfEmpty prunes nodes from the tree if they no longer carry any
// information, where information is the combination of child nodes and nexthops.
func (f *fibTreeEntry) pruneIfEmpty() {
	for curNode := f; curNode.parent != nil && len(curNode.children) == 0 && len(curNode.nexthops) == 0; curNode = curNode.parent {
		// Remove from parent's children
		for i, child := range curNode.parent.children {
			if child == curNode {
				if i < len(curNode.parent.children)-1 {
					copy(curNode.parent.children[i:], curNode.parent.children[i+1:])
				}
				curNode.parent.children = curNode.parent.children[:len(curNode.parent.children)-1]
				break
			}
		}
	}
}

// FindNextHops returns the longest-prefix matching nexthop(s) matching the
// specified name, or nil if the steady-state table has no route.
func (f *Fib) FindNextHops(name *ndn.Name) []*FibNextHopEntry {
	f.fibRWMutex.RLock()
	defer f.fibRWMutex.RUnlock()

	// Find longest prefix matching entry, then step back up until we find a
	// node carrying nexthops.
	var nexthops []*FibNextHopEntry
	for curNode := f.root.findLongestPrefixEntry(name); curNode != nil; curNode = curNode.parent {
		if len(curNode.nexthops) > 0 {
			nexthops = make([]*FibNextHopEntry, len(curNode.nexthops))
			copy(nexthops, curNode.nexthops)
			break
		}
	}

	return nexthops
}

// InsertNextHop adds or updates a nexthop entry for the specified prefix.
func (f *Fib) InsertNextHop(name *ndn.Name, nexthop uint64, cost uint64) {
	f.fibRWMutex.Lock()
	defer f.fibRWMutex.Unlock()
	entry := f.fillTreeToPrefix(name)
	if entry.name == nil {
		entry.name = name
	}
	for _, existingNexthop := range entry.nexthops {
		if existingNexthop.Nexthop == nexthop {
			existingNexthop.Cost = cost
			return
		}
	}

	newEntry := new(FibNextHopEntry)
	newEntry.Nexthop = nexthop
	newEntry.Cost = cost
	entry.nexthops = append(entry.nexthops, newEntry)
	f.fibPrefixes[nameHash(name)] = entry
}

// ClearNextHops clears all nexthops for the specified prefix.
func (f *Fib) ClearNextHops(name *ndn.Name) {
	f.fibRWMutex.Lock()
	defer f.fibRWMutex.Unlock()

	if name == nil {
		return
	}
	node := f.root.findExactMatchEntry(name)
	if node != nil {
		node.nexthops = make([]*FibNextHopEntry, 0)
	}
}

// RemoveNextHop removes the specified nexthop entry from the specified prefix.
func (f *Fib) RemoveNextHop(name *ndn.Name, nexthop uint64) {
	f.fibRWMutex.Lock()
	defer f.fibRWMutex.Unlock()
	entry := f.root.findExactMatchEntry(name)
	if entry != nil {
		for i, existingNexthop := range entry.nexthops {
			if existingNexthop.Nexthop == nexthop {
				if i < len(entry.nexthops)-1 {
					copy(entry.nexthops[i:], entry.nexthops[i+1:])
				}
				entry.nexthops = entry.nexthops[:len(entry.nexthops)-1]
				break
			}
		}
		if len(entry.nexthops) == 0 {
			delete(f.fibPrefixes, nameHash(name))
		}
		entry.pruneIfEmpty()
	}
}

// CleanUpFace removes the specified face from all FIB entries.
func (f *Fib) CleanUpFace(faceID uint64) {
	f.fibRWMutex.Lock()
	defer f.fibRWMutex.Unlock()

	for hash, entry := range f.fibPrefixes {
		for i, existingNexthop := range entry.nexthops {
			if existingNexthop.Nexthop == faceID {
				if i < len(entry.nexthops)-1 {
					copy(entry.nexthops[i:], entry.nexthops[i+1:])
				}
				entry.nexthops = entry.nexthops[:len(entry.nexthops)-1]
				break
			}
		}
		if len(entry.nexthops) == 0 {
			delete(f.fibPrefixes, hash)
			entry.pruneIfEmpty()
		}
	}
}

// GetAllEntries returns all nexthop entries in the FIB.
func (f *Fib) GetAllEntries() []*ndn.Name {
	f.fibRWMutex.RLock()
	defer f.fibRWMutex.RUnlock()

	entries := make([]*ndn.Name, 0)
	// Walk tree in-order
	queue := list.New()
	queue.PushBack(f.root)
	for queue.Len() > 0 {
		fibEntry := queue.Front().Value.(*fibTreeEntry)
		queue.Remove(queue.Front())
		for _, child := range fibEntry.children {
			queue.PushFront(child)
		}

		if len(fibEntry.nexthops) > 0 {
			entries = append(entries, fibEntry.name)
		}
	}
	return entries
}

func nameHash(name *ndn.Name) uint64 {
	var hash uint64
	for i := 0; i < name.Size(); i++ {
		hash += xxhash.Sum64(name.At(i).Value())
	}
	return hash
}
