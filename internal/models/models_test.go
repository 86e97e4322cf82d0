package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsPayload_Merge(t *testing.T) {
	video := false
	max := 4
	payload := &SettingsPayload{Video: &video, MaxParticipants: &max}

	merged := payload.Merge(DefaultRoomSettings())
	assert.False(t, merged.Video)
	assert.True(t, merged.Audio)
	assert.True(t, merged.Chat)
	assert.True(t, merged.ScreenShare)
	assert.Equal(t, 4, merged.MaxParticipants)
}

func TestSettingsPayload_MergeNilKeepsDefaults(t *testing.T) {
	var payload *SettingsPayload
	assert.Equal(t, DefaultRoomSettings(), payload.Merge(DefaultRoomSettings()))
}

func TestSettingsPayload_MergeRejectsNonPositiveCapacity(t *testing.T) {
	zero := 0
	payload := &SettingsPayload{MaxParticipants: &zero}
	assert.Equal(t, 10, payload.Merge(DefaultRoomSettings()).MaxParticipants)
}

func TestMarshalMessage(t *testing.T) {
	data := MarshalMessage("room-error", RoomError{Error: "room not found"})
	require.NotNil(t, data)

	var msg WSMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "room-error", msg.Type)

	var payload RoomError
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "room not found", payload.Error)
}

func TestMarshalMessage_NoPayload(t *testing.T) {
	data := MarshalMessage("pong", nil)
	require.NotNil(t, data)

	var msg WSMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "pong", msg.Type)
	assert.Empty(t, msg.Payload)
}
