/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"github.com/named-data/mobifd/core"
	"github.com/named-data/mobifd/dispatch"
	"github.com/named-data/mobifd/ndn"
)

// handleFloodData runs the flood-control pipeline for a mobility-tagged Data
// packet: deduplicate, record the temporary route toward the ingress face,
// then re-flood to the remaining links under the rate and hop limits. The
// TFIB update happens before the rate-limit check so that local lookups
// benefit even when propagation is throttled.
func (t *Thread) handleFloodData(data *ndn.Data, ingress dispatch.Link) {
	announcement := data.FloodAnnouncement()
	if announcement == nil || !announcement.HasRequiredDataFields() {
		core.LogWarn(t, "Mobility Data ", data.Name(), " missing required flood fields - ignoring announcement")
		return
	}

	if t.floodDedup.Seen(*announcement.FloodID) {
		core.LogDebug(t, "Duplicate FloodID=", *announcement.FloodID, " - ignoring announcement")
		return
	}
	t.floodDedup.Record(*announcement.FloodID)

	// Point the temporary route at the face the announcement arrived on
	prefix := data.Name().Prefix(-1)
	t.tfib.Insert(prefix, ingress.FaceID(), *announcement.NewSequence, *announcement.FloodID)
	core.LogInfo(t, "TFIB updated: ", prefix, " -> FaceID=", ingress.FaceID(), ", Seq=", *announcement.NewSequence)

	if !t.rateLimiter.Admit() {
		core.LogWarn(t, "Flood rate limit exceeded - not re-flooding Data ", data.Name())
		t.Stats.NFloodsSuppressed++
		return
	}

	// Effective hop limit: taken from the announcement when present (zero
	// means the propagation budget is exhausted), else the default
	hopLimit := floodDefaultHopLimit
	if announcement.HopLimit != nil {
		if *announcement.HopLimit == 0 {
			core.LogDebug(t, "Mobility Data ", data.Name(), " reached hop limit - not flooding")
			return
		}
		hopLimit = *announcement.HopLimit - 1
	}

	outgoing := *announcement
	outgoing.HopLimit = new(uint8)
	*outgoing.HopLimit = hopLimit

	floodData := ndn.NewData(data.Name(), data.Content())
	floodData.SetFreshnessPeriod(data.FreshnessPeriod())
	floodData.SetFloodAnnouncement(&outgoing)
	wire, err := floodData.Encode()
	if err != nil {
		core.LogWarn(t, "Unable to encode flooded Data ", data.Name(), " (", err, ") - DROP")
		return
	}

	flooded := 0
	for _, link := range dispatch.GetAllFaces() {
		if link.FaceID() == ingress.FaceID() {
			// Don't send back to ingress
			continue
		}
		if link.State() != ndn.Up {
			continue
		}
		if len(announcement.TraceHint) > 0 && !shouldUseGuidedFlooding(link, announcement.TraceHint) {
			continue
		}

		pendingPacket := new(ndn.PendingPacket)
		pendingPacket.IncomingFaceID = new(uint64)
		*pendingPacket.IncomingFaceID = ingress.FaceID()
		pendingPacket.Wire = wire
		if !link.SendPacket(pendingPacket) {
			core.LogWarn(t, "Failed to flood Data ", data.Name(), " on FaceID=", link.FaceID())
			continue
		}
		flooded++
	}

	t.Stats.NFloodedData += uint64(flooded)
	core.LogInfo(t, "Mobility Data ", data.Name(), " flooded to ", flooded, " faces with hop limit ", hopLimit)
}

// handleRouteLookupMiss gives the flood-control engine first refusal on an
// Interest with no steady-state route. A live temporary route is always
// preferred over flooding: reaching a known current location is strictly
// better than blind dissemination. Returns whether the Interest was handled.
func (t *Thread) handleRouteLookupMiss(interest *ndn.Interest, ingress dispatch.Link) bool {
	if entry := t.tfib.FindLongestPrefixMatch(interest.Name()); entry != nil {
		core.LogInfo(t, "Using temporary route for ", interest.Name(), " -> FaceID=", entry.FaceID)
		t.processOutgoingInterest(interest, entry.FaceID, ingress.FaceID())
		return true
	}

	if interest.IsFloodEligible() {
		t.handleInterestFlooding(interest, ingress)
		return true
	}

	return false
}

// handleInterestFlooding floods a flood-eligible Interest to all up links
// except the ingress. The incoming pipeline has already decremented the hop
// limit, so a value of zero here means the propagation budget is exhausted;
// Interests without a hop limit are flooded with the default.
func (t *Thread) handleInterestFlooding(interest *ndn.Interest, ingress dispatch.Link) {
	core.LogDebug(t, "OnInterestFlooding: ", interest.Name(), ", FaceID=", ingress.FaceID())

	hopLimit := floodDefaultHopLimit
	if interest.HopLimit() != nil {
		if *interest.HopLimit() == 0 {
			core.LogDebug(t, "Interest ", interest.Name(), " reached hop limit - not flooding")
			return
		}
		hopLimit = *interest.HopLimit()
	}

	var announcement *ndn.FloodAnnouncement
	if interest.FloodAnnouncement() != nil {
		outgoing := *interest.FloodAnnouncement()
		announcement = &outgoing
	}

	floodInterest := ndn.NewInterest(interest.Name().DeepCopy())
	floodInterest.SetNonce(interest.Nonce())
	floodInterest.SetMustBeFresh(interest.MustBeFresh())
	floodInterest.SetLifetime(interest.Lifetime())
	floodInterest.SetHopLimit(hopLimit)
	floodInterest.SetFloodAnnouncement(announcement)
	wire, err := floodInterest.Encode()
	if err != nil {
		core.LogWarn(t, "Unable to encode flooded Interest ", interest.Name(), " (", err, ") - DROP")
		return
	}

	traceHint := []byte(nil)
	if announcement != nil {
		traceHint = announcement.TraceHint
	}

	flooded := 0
	for _, link := range dispatch.GetAllFaces() {
		if link.FaceID() == ingress.FaceID() {
			// Don't flood back to ingress
			continue
		}
		if link.State() != ndn.Up {
			continue
		}
		if len(traceHint) > 0 && !shouldUseGuidedFlooding(link, traceHint) {
			continue
		}

		pendingPacket := new(ndn.PendingPacket)
		pendingPacket.IncomingFaceID = new(uint64)
		*pendingPacket.IncomingFaceID = ingress.FaceID()
		pendingPacket.Wire = wire
		if !link.SendPacket(pendingPacket) {
			core.LogWarn(t, "Failed to flood Interest ", interest.Name(), " on FaceID=", link.FaceID())
			continue
		}
		flooded++
	}

	t.Stats.NFloodedInterests += uint64(flooded)
	core.LogInfo(t, "Interest ", interest.Name(), " flooded to ", flooded, " faces with hop limit ", hopLimit)
}

// shouldUseGuidedFlooding returns whether the specified link should receive a
// flood guided by the specified trace hint. Trace hints are advisory: hint
// data may be incomplete, so pruning by hint risks silently dropping valid
// paths. This version therefore floods to all eligible links; hint-based
// pruning is an extension point.
func shouldUseGuidedFlooding(link dispatch.Link, traceHint []byte) bool {
	return true
}
