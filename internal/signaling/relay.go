package signaling

import (
	"log"

	"gitlab.com/talentflow/services/backend/internal/models"
)

// forwardSignal unicasts a WebRTC negotiation message from one connection
// to another. Delivery is best-effort: an unknown target, a target outside
// the sender's room, or a full buffer drops the message silently, with no
// error back to the sender and no retry. The sender and target must share
// a room; a signal addressed across room boundaries is never relayed.
func (s *Service) forwardSignal(kind string, sender *Client, req models.SignalRequest) {
	if req.To == "" {
		log.Printf("[Signaling] %s from %s has no target", kind, shortID(sender.ID))
		return
	}

	roomID, ok := s.connections.RoomOf(sender.ID)
	if !ok || roomID == "" {
		log.Printf("[Signaling] %s from %s dropped: sender not in a room", kind, shortID(sender.ID))
		return
	}
	room, ok := s.rooms.Get(roomID)
	if !ok {
		return
	}

	// The relayed event uses the hyphenated server-side tag.
	eventType := kind
	if kind == "ice_candidate" {
		eventType = "ice-candidate"
	}

	data := models.MarshalMessage(eventType, models.ForwardedSignal{
		Offer:     req.Offer,
		Answer:    req.Answer,
		Candidate: req.Candidate,
		From:      sender.ID,
	})
	if data == nil {
		return
	}

	// Membership check and enqueue happen under the room lock so relayed
	// signals keep their order relative to broadcasts in the same room.
	room.mu.Lock()
	defer room.mu.Unlock()

	if _, member := room.participants[req.To]; !member {
		log.Printf("[Signaling] %s from %s dropped: target %s not in room %s",
			kind, shortID(sender.ID), shortID(req.To), roomID)
		return
	}
	if target, ok := s.connections.ClientOf(req.To); ok {
		target.Enqueue(data)
	}
}
