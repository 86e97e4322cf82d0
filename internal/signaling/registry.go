package signaling

import (
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"gitlab.com/talentflow/services/backend/internal/models"
)

var (
	// ErrRoomNotFound is returned when a room id is not registered.
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomFull is returned when a join would exceed maxParticipants.
	ErrRoomFull = errors.New("room is full")

	// ErrAlreadyInRoom is returned when a connection that is already a
	// member of a room attempts to create or join another one.
	ErrAlreadyInRoom = errors.New("already in a room")
)

// roomIDLength is the length of generated room ids. Short ids are easy
// to share, so uniqueness is enforced by a collision check rather than
// by id entropy alone.
const roomIDLength = 8

// RoomRegistry creates, looks up, and destroys rooms by id.
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]*Room),
	}
}

// CreateRoom constructs and registers a room with a fresh unique id.
func (r *RoomRegistry) CreateRoom(name, hostID string, settings models.RoomSettings) *Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	var id string
	for {
		id = uuid.New().String()[:roomIDLength]
		if _, taken := r.rooms[id]; !taken {
			break
		}
	}

	room := newRoom(id, name, hostID, settings)
	r.rooms[id] = room
	log.Printf("[Rooms] Created room %s (%q) for host %s", id, name, shortID(hostID))
	return room
}

// Get looks up a live room.
func (r *RoomRegistry) Get(id string) (*Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	return room, ok
}

// Remove deletes the room from the registry, freeing its id for reuse.
func (r *RoomRegistry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[id]; ok {
		delete(r.rooms, id)
		log.Printf("[Rooms] Deleted room %s", id)
	}
}

// List returns a summary of every active room.
func (r *RoomRegistry) List() []models.RoomSummary {
	r.mu.RLock()
	rooms := make([]*Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	r.mu.RUnlock()

	out := make([]models.RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, room.summary())
	}
	return out
}

// Snapshot returns the full state of one room.
func (r *RoomRegistry) Snapshot(id string) (models.RoomSnapshot, error) {
	room, ok := r.Get(id)
	if !ok {
		return models.RoomSnapshot{}, ErrRoomNotFound
	}
	return room.snapshot(), nil
}

// Count returns the number of active rooms.
func (r *RoomRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
