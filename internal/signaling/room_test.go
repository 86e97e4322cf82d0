package signaling

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/talentflow/services/backend/internal/models"
)

func testSettings(max int) models.RoomSettings {
	s := models.DefaultRoomSettings()
	s.MaxParticipants = max
	return s
}

func TestRoom_AddParticipantDefaults(t *testing.T) {
	room := newRoom("abc12345", "Standup", "host-1", testSettings(10))

	p, err := room.addParticipant("host-1", models.ParticipantInfo{})
	require.NoError(t, err)

	assert.Equal(t, "Anonymous", p.Name)
	assert.Equal(t, "A", p.Avatar)
	assert.Equal(t, "Member", p.Role)
	assert.True(t, p.IsHost)
	assert.True(t, p.AudioEnabled)
	assert.True(t, p.VideoEnabled)
	assert.False(t, p.ScreenSharing)
}

func TestRoom_HostFlagOnlyForHost(t *testing.T) {
	room := newRoom("abc12345", "Standup", "host-1", testSettings(10))

	_, err := room.addParticipant("host-1", models.ParticipantInfo{Name: "Host"})
	require.NoError(t, err)
	p, err := room.addParticipant("guest-1", models.ParticipantInfo{Name: "Guest"})
	require.NoError(t, err)

	assert.False(t, p.IsHost)
}

func TestRoom_CapacityLimit(t *testing.T) {
	room := newRoom("abc12345", "Standup", "host-1", testSettings(2))

	_, err := room.addParticipant("host-1", models.ParticipantInfo{})
	require.NoError(t, err)
	_, err = room.addParticipant("guest-1", models.ParticipantInfo{})
	require.NoError(t, err)

	_, err = room.addParticipant("guest-2", models.ParticipantInfo{})
	assert.ErrorIs(t, err, ErrRoomFull)

	// The failed join must not mutate the participant set.
	assert.Len(t, room.participantsSnapshot(), 2)
}

func TestRoom_ClosedRejectsJoin(t *testing.T) {
	room := newRoom("abc12345", "Standup", "host-1", testSettings(10))

	_, err := room.addParticipant("host-1", models.ParticipantInfo{})
	require.NoError(t, err)

	removed, empty := room.removeParticipant("host-1")
	assert.True(t, removed)
	assert.True(t, empty)

	_, err = room.addParticipant("guest-1", models.ParticipantInfo{})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRoom_RemoveUnknownParticipant(t *testing.T) {
	room := newRoom("abc12345", "Standup", "host-1", testSettings(10))

	removed, empty := room.removeParticipant("nobody")
	assert.False(t, removed)
	assert.False(t, empty)
}

func TestRoom_ChatValidation(t *testing.T) {
	room := newRoom("abc12345", "Standup", "host-1", testSettings(10))
	_, err := room.addParticipant("host-1", models.ParticipantInfo{Name: "Alice"})
	require.NoError(t, err)

	_, ok := room.appendChat("host-1", "   ")
	assert.False(t, ok, "whitespace-only text must be rejected")

	_, ok = room.appendChat("stranger", "hello")
	assert.False(t, ok, "non-members must not post")

	msg, ok := room.appendChat("host-1", "  hello  ")
	require.True(t, ok)
	assert.Equal(t, "hello", msg.Message)
	assert.Equal(t, "Alice", msg.ParticipantName)
	assert.Equal(t, "host-1", msg.ParticipantID)
	assert.NotEmpty(t, msg.ID)
}

func TestRoom_ChatHistoryCapped(t *testing.T) {
	room := newRoom("abc12345", "Standup", "host-1", testSettings(10))
	_, err := room.addParticipant("host-1", models.ParticipantInfo{})
	require.NoError(t, err)

	for i := 0; i < maxChatHistory+10; i++ {
		_, ok := room.appendChat("host-1", fmt.Sprintf("msg-%d", i))
		require.True(t, ok)
	}

	history := room.recentChat(maxChatHistory + 100)
	require.Len(t, history, maxChatHistory)
	assert.Equal(t, "msg-10", history[0].Message)
	assert.Equal(t, fmt.Sprintf("msg-%d", maxChatHistory+9), history[len(history)-1].Message)
}

func TestRoom_RecentChatOrderAndLimit(t *testing.T) {
	room := newRoom("abc12345", "Standup", "host-1", testSettings(10))
	_, err := room.addParticipant("host-1", models.ParticipantInfo{})
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		_, ok := room.appendChat("host-1", fmt.Sprintf("msg-%d", i))
		require.True(t, ok)
	}

	recent := room.recentChat(joinChatHistory)
	require.Len(t, recent, joinChatHistory)
	assert.Equal(t, "msg-10", recent[0].Message)
	assert.Equal(t, "msg-59", recent[len(recent)-1].Message)
}

func TestRoom_MediaFlags(t *testing.T) {
	room := newRoom("abc12345", "Standup", "host-1", testSettings(10))
	_, err := room.addParticipant("host-1", models.ParticipantInfo{})
	require.NoError(t, err)

	assert.True(t, room.setAudio("host-1", false))
	assert.True(t, room.setVideo("host-1", false))
	assert.True(t, room.setScreenSharing("host-1", true))

	p := room.participantsSnapshot()["host-1"]
	assert.False(t, p.AudioEnabled)
	assert.False(t, p.VideoEnabled)
	assert.True(t, p.ScreenSharing)

	assert.False(t, room.setAudio("stranger", true))
}

func TestRoom_Snapshot(t *testing.T) {
	room := newRoom("abc12345", "Standup", "host-1", testSettings(5))
	_, err := room.addParticipant("host-1", models.ParticipantInfo{Name: "Alice"})
	require.NoError(t, err)

	snap := room.snapshot()
	assert.Equal(t, "abc12345", snap.RoomID)
	assert.Equal(t, "Standup", snap.Name)
	assert.Equal(t, 1, snap.ParticipantCount)
	assert.Equal(t, 5, snap.MaxParticipants)
	assert.Contains(t, snap.Participants, "host-1")
	assert.False(t, snap.CreatedAt.IsZero())
}
