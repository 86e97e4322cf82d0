package signaling

import (
	"encoding/json"
	"log"
	"time"

	"gitlab.com/talentflow/services/backend/internal/models"
)

// Service is the room coordinator: it owns the connection and room
// registries and dispatches every client event. One Service instance
// serves all connections of the process.
type Service struct {
	connections *ConnectionRegistry
	rooms       *RoomRegistry
}

func NewService() *Service {
	return &Service{
		connections: NewConnectionRegistry(),
		rooms:       NewRoomRegistry(),
	}
}

// Connect registers a freshly upgraded connection with no room.
func (s *Service) Connect(client *Client) {
	s.connections.Register(client)
	log.Printf("[Signaling] Client connected: %s", shortID(client.ID))
}

// Disconnect runs the full cleanup path for a closed connection. Room
// cleanup is the same code path as an explicit leave_room.
func (s *Service) Disconnect(client *Client) {
	roomID, ok := s.connections.Unregister(client.ID)
	client.Close()
	if !ok {
		return
	}
	log.Printf("[Signaling] Client disconnected: %s", shortID(client.ID))
	if roomID != "" {
		s.removeFromRoom(client.ID, roomID)
	}
}

// HandleMessage decodes and dispatches one client event. A panic while
// handling an event is logged and reported to the requester only; it
// never takes down the connection or the process.
func (s *Service) HandleMessage(client *Client, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Signaling] Recovered handling event from %s: %v", shortID(client.ID), r)
			s.sendError(client, "Internal server error")
		}
	}()

	var msg models.WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("[Signaling] Malformed message from %s: %v", shortID(client.ID), err)
		s.sendError(client, "Invalid request")
		return
	}

	switch msg.Type {
	case "create_room":
		s.handleCreateRoom(client, msg.Payload)
	case "join_room":
		s.handleJoinRoom(client, msg.Payload)
	case "leave_room":
		s.handleLeaveRoom(client)
	case "offer", "answer", "ice_candidate":
		s.handleSignal(client, msg.Type, msg.Payload)
	case "toggle_audio":
		s.handleToggleAudio(client, msg.Payload)
	case "toggle_video":
		s.handleToggleVideo(client, msg.Payload)
	case "start_screen_share":
		s.handleScreenShare(client, true)
	case "stop_screen_share":
		s.handleScreenShare(client, false)
	case "chat_message":
		s.handleChatMessage(client, msg.Payload)
	case "get_room_info":
		s.handleRoomInfo(client, msg.Payload)
	case "get_active_rooms":
		s.handleActiveRooms(client)
	case "ping":
		s.send(client, "pong", models.Pong{Timestamp: time.Now()})
	default:
		log.Printf("[Signaling] Unknown event type %q from %s", msg.Type, shortID(client.ID))
	}
}

func (s *Service) handleCreateRoom(client *Client, payload json.RawMessage) {
	var req models.CreateRoomRequest
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			s.sendError(client, "Invalid request")
			return
		}
	}

	if roomID, ok := s.connections.RoomOf(client.ID); ok && roomID != "" {
		s.sendError(client, ErrAlreadyInRoom.Error())
		return
	}

	name := req.Name
	if name == "" {
		name = "Team Meeting"
	}
	settings := req.Settings.Merge(models.DefaultRoomSettings())

	room := s.rooms.CreateRoom(name, client.ID, settings)
	if _, err := room.addParticipant(client.ID, models.ParticipantInfo{
		Name:   "Host",
		Avatar: "H",
		Role:   "Host",
	}); err != nil {
		// Cannot happen on a fresh room; guard anyway.
		s.rooms.Remove(room.ID)
		s.sendError(client, err.Error())
		return
	}
	s.connections.SetRoom(client.ID, room.ID)

	s.send(client, "room-created", models.RoomCreated{
		RoomID:       room.ID,
		Name:         room.Name,
		Host:         true,
		Participants: room.participantsSnapshot(),
		Settings:     settings,
	})
}

func (s *Service) handleJoinRoom(client *Client, payload json.RawMessage) {
	var req models.JoinRoomRequest
	if err := json.Unmarshal(payload, &req); err != nil || req.RoomID == "" {
		s.sendError(client, "Invalid request")
		return
	}

	if roomID, ok := s.connections.RoomOf(client.ID); ok && roomID != "" {
		s.sendError(client, ErrAlreadyInRoom.Error())
		return
	}

	room, ok := s.rooms.Get(req.RoomID)
	if !ok {
		s.sendError(client, ErrRoomNotFound.Error())
		return
	}

	participant, err := room.addParticipant(client.ID, req.Participant)
	if err != nil {
		s.sendError(client, err.Error())
		return
	}
	s.connections.SetRoom(client.ID, room.ID)

	log.Printf("[Signaling] Client %s joined room %s", shortID(client.ID), room.ID)

	s.send(client, "room-joined", models.RoomJoined{
		RoomID:       room.ID,
		Name:         room.Name,
		Participants: room.participantsSnapshot(),
		Settings:     room.Settings(),
		ChatHistory:  room.recentChat(joinChatHistory),
	})

	s.broadcastToRoom(room, "participant-joined", participant, client.ID)
}

func (s *Service) handleLeaveRoom(client *Client) {
	roomID, ok := s.connections.RoomOf(client.ID)
	if !ok || roomID == "" {
		return
	}
	s.connections.SetRoom(client.ID, "")
	s.removeFromRoom(client.ID, roomID)
}

// removeFromRoom is the shared cleanup tail of leave_room and disconnect:
// drop the membership, notify the remainder, destroy the room when empty.
func (s *Service) removeFromRoom(connID, roomID string) {
	room, ok := s.rooms.Get(roomID)
	if !ok {
		return
	}

	removed, empty := room.removeParticipant(connID)
	if !removed {
		return
	}
	log.Printf("[Signaling] Client %s left room %s", shortID(connID), roomID)

	if empty {
		s.rooms.Remove(room.ID)
		return
	}
	s.broadcastToRoom(room, "participant-left", models.ParticipantLeft{ParticipantID: connID}, connID)
}

func (s *Service) handleSignal(client *Client, kind string, payload json.RawMessage) {
	var req models.SignalRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Printf("[Signaling] Malformed %s payload from %s: %v", kind, shortID(client.ID), err)
		return
	}
	s.forwardSignal(kind, client, req)
}

func (s *Service) handleToggleAudio(client *Client, payload json.RawMessage) {
	enabled := decodeToggle(payload)
	room, ok := s.currentRoom(client)
	if !ok {
		return
	}
	if !room.setAudio(client.ID, enabled) {
		return
	}
	s.broadcastToRoom(room, "participant-audio-toggle", models.MediaToggle{
		ParticipantID: client.ID,
		Enabled:       enabled,
	}, client.ID)
}

func (s *Service) handleToggleVideo(client *Client, payload json.RawMessage) {
	enabled := decodeToggle(payload)
	room, ok := s.currentRoom(client)
	if !ok {
		return
	}
	if !room.setVideo(client.ID, enabled) {
		return
	}
	s.broadcastToRoom(room, "participant-video-toggle", models.MediaToggle{
		ParticipantID: client.ID,
		Enabled:       enabled,
	}, client.ID)
}

func (s *Service) handleScreenShare(client *Client, sharing bool) {
	room, ok := s.currentRoom(client)
	if !ok {
		return
	}
	if !room.setScreenSharing(client.ID, sharing) {
		return
	}
	s.broadcastToRoom(room, "participant-screen-share", models.ScreenShareState{
		ParticipantID: client.ID,
		Sharing:       sharing,
	}, client.ID)
}

// handleChatMessage appends and broadcasts a chat message. Invalid
// requests (empty text, wrong or missing room) are silently ignored.
func (s *Service) handleChatMessage(client *Client, payload json.RawMessage) {
	var req models.ChatMessageRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}

	roomID, ok := s.connections.RoomOf(client.ID)
	if !ok || roomID == "" || req.RoomID != roomID {
		return
	}
	room, ok := s.rooms.Get(roomID)
	if !ok {
		return
	}

	msg, ok := room.appendChat(client.ID, req.Message)
	if !ok {
		return
	}
	// Chat goes to the full membership, sender included, so the sender
	// can confirm delivery and ordering.
	s.broadcastToRoom(room, "chat-message", msg, "")
}

func (s *Service) handleRoomInfo(client *Client, payload json.RawMessage) {
	var req models.RoomInfoRequest
	if err := json.Unmarshal(payload, &req); err != nil || req.RoomID == "" {
		s.sendError(client, "Invalid request")
		return
	}

	snapshot, err := s.rooms.Snapshot(req.RoomID)
	if err != nil {
		s.sendError(client, err.Error())
		return
	}
	s.send(client, "room-info", snapshot)
}

func (s *Service) handleActiveRooms(client *Client) {
	s.send(client, "active-rooms", models.ActiveRooms{Rooms: s.rooms.List()})
}

// currentRoom resolves the caller's room; the false return covers both
// "not in a room" and "room already destroyed".
func (s *Service) currentRoom(client *Client) (*Room, bool) {
	roomID, ok := s.connections.RoomOf(client.ID)
	if !ok || roomID == "" {
		return nil, false
	}
	return s.rooms.Get(roomID)
}

// ActiveRooms lists active room summaries for the REST surface.
func (s *Service) ActiveRooms() []models.RoomSummary {
	return s.rooms.List()
}

// RoomInfo returns the full snapshot of one room for the REST surface.
func (s *Service) RoomInfo(roomID string) (models.RoomSnapshot, error) {
	return s.rooms.Snapshot(roomID)
}

// ConnectionCount reports live connections, for health reporting.
func (s *Service) ConnectionCount() int {
	return s.connections.Count()
}

// decodeToggle reads the enabled flag, defaulting to true when absent.
func decodeToggle(payload json.RawMessage) bool {
	var req models.ToggleRequest
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return true
		}
	}
	if req.Enabled == nil {
		return true
	}
	return *req.Enabled
}
