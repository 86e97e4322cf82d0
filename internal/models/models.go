package models

import (
	"encoding/json"
	"log"
	"time"
)

// WSMessage is the envelope for every client/server websocket message.
// Payload is left raw so the relay can forward signaling bodies untouched.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MarshalMessage builds a wire-ready envelope for an outbound event.
// A payload that fails to marshal is a programming error; it is logged
// and the envelope goes out with an empty payload instead of vanishing.
func MarshalMessage(eventType string, payload interface{}) []byte {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Printf("[Models] Failed to marshal %s payload: %v", eventType, err)
		} else {
			raw = data
		}
	}
	data, err := json.Marshal(WSMessage{Type: eventType, Payload: raw})
	if err != nil {
		log.Printf("[Models] Failed to marshal %s envelope: %v", eventType, err)
		return nil
	}
	return data
}

// RoomSettings holds the per-room call configuration.
type RoomSettings struct {
	Video           bool `json:"video"`
	Audio           bool `json:"audio"`
	Chat            bool `json:"chat"`
	ScreenShare     bool `json:"screenShare"`
	MaxParticipants int  `json:"maxParticipants"`
}

// DefaultRoomSettings returns the settings applied when a creator omits them.
func DefaultRoomSettings() RoomSettings {
	return RoomSettings{
		Video:           true,
		Audio:           true,
		Chat:            true,
		ScreenShare:     true,
		MaxParticipants: 10,
	}
}

// SettingsPayload is the partial settings object a creator may send.
// Nil fields keep their defaults.
type SettingsPayload struct {
	Video           *bool `json:"video"`
	Audio           *bool `json:"audio"`
	Chat            *bool `json:"chat"`
	ScreenShare     *bool `json:"screenShare"`
	MaxParticipants *int  `json:"maxParticipants"`
}

// Merge applies the provided fields on top of base and returns the result.
func (p *SettingsPayload) Merge(base RoomSettings) RoomSettings {
	if p == nil {
		return base
	}
	if p.Video != nil {
		base.Video = *p.Video
	}
	if p.Audio != nil {
		base.Audio = *p.Audio
	}
	if p.Chat != nil {
		base.Chat = *p.Chat
	}
	if p.ScreenShare != nil {
		base.ScreenShare = *p.ScreenShare
	}
	if p.MaxParticipants != nil && *p.MaxParticipants > 0 {
		base.MaxParticipants = *p.MaxParticipants
	}
	return base
}

// Participant is a connection's membership record within a room.
type Participant struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Avatar        string    `json:"avatar"`
	Role          string    `json:"role"`
	JoinedAt      time.Time `json:"joined_at"`
	IsHost        bool      `json:"is_host"`
	AudioEnabled  bool      `json:"audio_enabled"`
	VideoEnabled  bool      `json:"video_enabled"`
	ScreenSharing bool      `json:"screen_sharing"`
}

// ParticipantInfo is the identity a joiner supplies.
type ParticipantInfo struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Role   string `json:"role"`
}

// ChatMessage is a single room chat entry. Appended, never mutated.
type ChatMessage struct {
	ID              string    `json:"id"`
	ParticipantID   string    `json:"participant_id"`
	ParticipantName string    `json:"participant_name"`
	Message         string    `json:"message"`
	Timestamp       time.Time `json:"timestamp"`
}

// RoomSummary is the listing entry for an active room. Participant
// identities are deliberately not exposed here.
type RoomSummary struct {
	RoomID           string    `json:"roomId"`
	Name             string    `json:"name"`
	ParticipantCount int       `json:"participantCount"`
	MaxParticipants  int       `json:"maxParticipants"`
	CreatedAt        time.Time `json:"createdAt"`
}

// RoomSnapshot is the full room state returned by info queries.
type RoomSnapshot struct {
	RoomID           string                 `json:"roomId"`
	Name             string                 `json:"name"`
	ParticipantCount int                    `json:"participantCount"`
	MaxParticipants  int                    `json:"maxParticipants"`
	Participants     map[string]Participant `json:"participants"`
	Settings         RoomSettings           `json:"settings"`
	CreatedAt        time.Time              `json:"createdAt"`
}

// Client -> server payloads

type CreateRoomRequest struct {
	Name     string           `json:"name"`
	Settings *SettingsPayload `json:"settings"`
}

type JoinRoomRequest struct {
	RoomID      string          `json:"roomId"`
	Participant ParticipantInfo `json:"participant"`
}

type LeaveRoomRequest struct {
	RoomID string `json:"roomId"`
}

// SignalRequest carries a WebRTC negotiation message addressed to one peer.
// Exactly one of Offer/Answer/Candidate is set, matching the event type.
type SignalRequest struct {
	To        string          `json:"to"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

type ToggleRequest struct {
	Enabled *bool `json:"enabled"`
}

type ChatMessageRequest struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

type RoomInfoRequest struct {
	RoomID string `json:"roomId"`
}

// Server -> client payloads

type RoomCreated struct {
	RoomID       string                 `json:"roomId"`
	Name         string                 `json:"name"`
	Host         bool                   `json:"host"`
	Participants map[string]Participant `json:"participants"`
	Settings     RoomSettings           `json:"settings"`
}

type RoomJoined struct {
	RoomID       string                 `json:"roomId"`
	Name         string                 `json:"name"`
	Participants map[string]Participant `json:"participants"`
	Settings     RoomSettings           `json:"settings"`
	ChatHistory  []ChatMessage          `json:"chatHistory"`
}

type RoomError struct {
	Error string `json:"error"`
}

type ParticipantLeft struct {
	ParticipantID string `json:"participantId"`
}

// ForwardedSignal is the relayed form of an offer/answer/ice_candidate,
// tagged with the originating connection id.
type ForwardedSignal struct {
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
	From      string          `json:"from"`
}

type MediaToggle struct {
	ParticipantID string `json:"participantId"`
	Enabled       bool   `json:"enabled"`
}

type ScreenShareState struct {
	ParticipantID string `json:"participantId"`
	Sharing       bool   `json:"sharing"`
}

type ActiveRooms struct {
	Rooms []RoomSummary `json:"rooms"`
}

type Pong struct {
	Timestamp time.Time `json:"timestamp"`
}
