package signaling

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gitlab.com/talentflow/services/backend/internal/models"
)

const (
	// Retained chat messages per room. Older entries are evicted so a
	// long-lived room cannot grow without bound.
	maxChatHistory = 500

	// Chat messages included in the room-joined snapshot.
	joinChatHistory = 50
)

// Room holds the state of one call session: settings, the participant
// set, and chat history. Every mutation is serialized by the room's own
// mutex; operations on different rooms never block each other.
type Room struct {
	ID        string
	Name      string
	HostID    string
	CreatedAt time.Time

	mu           sync.Mutex
	settings     models.RoomSettings
	participants map[string]*models.Participant
	chatHistory  []models.ChatMessage

	// closed is set the instant the participant count reaches zero, so a
	// join racing the destruction resolves to RoomNotFound.
	closed bool
}

func newRoom(id, name, hostID string, settings models.RoomSettings) *Room {
	return &Room{
		ID:           id,
		Name:         name,
		HostID:       hostID,
		CreatedAt:    time.Now(),
		settings:     settings,
		participants: make(map[string]*models.Participant),
	}
}

// addParticipant adds a membership record for the connection. It fails
// with ErrRoomFull at capacity and ErrRoomNotFound once the room has been
// emptied and closed.
func (r *Room) addParticipant(id string, info models.ParticipantInfo) (models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return models.Participant{}, ErrRoomNotFound
	}
	if len(r.participants) >= r.settings.MaxParticipants {
		return models.Participant{}, ErrRoomFull
	}

	name := info.Name
	if name == "" {
		name = "Anonymous"
	}
	avatar := info.Avatar
	if avatar == "" {
		avatar = "A"
	}
	role := info.Role
	if role == "" {
		role = "Member"
	}

	p := &models.Participant{
		ID:           id,
		Name:         name,
		Avatar:       avatar,
		Role:         role,
		JoinedAt:     time.Now(),
		IsHost:       id == r.HostID,
		AudioEnabled: true,
		VideoEnabled: true,
	}
	r.participants[id] = p
	return *p, nil
}

// removeParticipant deletes the membership record. The second return is
// true when the room is now empty; the room is closed at that moment.
func (r *Room) removeParticipant(id string) (removed, empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.participants[id]; !ok {
		return false, false
	}
	delete(r.participants, id)
	if len(r.participants) == 0 {
		r.closed = true
		return true, true
	}
	return true, false
}

// setAudio mutates the participant's audio flag. Returns false when the
// connection is not a member.
func (r *Room) setAudio(id string, enabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[id]
	if !ok {
		return false
	}
	p.AudioEnabled = enabled
	return true
}

func (r *Room) setVideo(id string, enabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[id]
	if !ok {
		return false
	}
	p.VideoEnabled = enabled
	return true
}

func (r *Room) setScreenSharing(id string, sharing bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[id]
	if !ok {
		return false
	}
	p.ScreenSharing = sharing
	return true
}

// appendChat validates and appends a chat message, returning the stored
// entry. Empty or whitespace-only text and non-member senders are rejected.
func (r *Room) appendChat(senderID, text string) (models.ChatMessage, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sender, ok := r.participants[senderID]
	if !ok {
		return models.ChatMessage{}, false
	}

	msg := models.ChatMessage{
		ID:              uuid.New().String(),
		ParticipantID:   senderID,
		ParticipantName: sender.Name,
		Message:         text,
		Timestamp:       time.Now(),
	}
	r.chatHistory = append(r.chatHistory, msg)
	if len(r.chatHistory) > maxChatHistory {
		r.chatHistory = r.chatHistory[len(r.chatHistory)-maxChatHistory:]
	}
	return msg, true
}

// recentChat returns up to n most recent messages in chronological order.
func (r *Room) recentChat(n int) []models.ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := 0
	if len(r.chatHistory) > n {
		start = len(r.chatHistory) - n
	}
	out := make([]models.ChatMessage, len(r.chatHistory)-start)
	copy(out, r.chatHistory[start:])
	return out
}

// participantsSnapshot returns a copy of the participant map.
func (r *Room) participantsSnapshot() map[string]models.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]models.Participant, len(r.participants))
	for id, p := range r.participants {
		out[id] = *p
	}
	return out
}

// snapshot returns the full room state for info queries.
func (r *Room) snapshot() models.RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	participants := make(map[string]models.Participant, len(r.participants))
	for id, p := range r.participants {
		participants[id] = *p
	}
	return models.RoomSnapshot{
		RoomID:           r.ID,
		Name:             r.Name,
		ParticipantCount: len(participants),
		MaxParticipants:  r.settings.MaxParticipants,
		Participants:     participants,
		Settings:         r.settings,
		CreatedAt:        r.CreatedAt,
	}
}

// summary returns the listing entry for this room.
func (r *Room) summary() models.RoomSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	return models.RoomSummary{
		RoomID:           r.ID,
		Name:             r.Name,
		ParticipantCount: len(r.participants),
		MaxParticipants:  r.settings.MaxParticipants,
		CreatedAt:        r.CreatedAt,
	}
}

// Settings returns a copy of the room settings.
func (r *Room) Settings() models.RoomSettings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}
