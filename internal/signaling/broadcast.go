package signaling

import (
	"gitlab.com/talentflow/services/backend/internal/models"
)

// send delivers one event to a single client, best-effort.
func (s *Service) send(client *Client, eventType string, payload interface{}) {
	client.Enqueue(models.MarshalMessage(eventType, payload))
}

// sendError reports a failure to the requesting connection only. Errors
// never terminate the connection and never reach other participants.
func (s *Service) sendError(client *Client, message string) {
	s.send(client, "room-error", models.RoomError{Error: message})
}

// broadcastToRoom fans an event out to every current member of the room
// except excludeID. Enqueueing happens under the room lock so all members
// observe the room's events in the order the server processed them;
// enqueue itself never blocks, so holding the lock here is bounded.
func (s *Service) broadcastToRoom(room *Room, eventType string, payload interface{}, excludeID string) {
	data := models.MarshalMessage(eventType, payload)
	if data == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	for id := range room.participants {
		if id == excludeID {
			continue
		}
		if client, ok := s.connections.ClientOf(id); ok {
			client.Enqueue(data)
		}
	}
}
