package signaling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionRegistry_Lifecycle(t *testing.T) {
	registry := NewConnectionRegistry()
	client := NewClient(nil)

	registry.Register(client)
	assert.Equal(t, 1, registry.Count())

	roomID, ok := registry.RoomOf(client.ID)
	require.True(t, ok)
	assert.Empty(t, roomID, "a fresh connection has no room")

	got, ok := registry.ClientOf(client.ID)
	require.True(t, ok)
	assert.Same(t, client, got)

	registry.SetRoom(client.ID, "abc12345")
	roomID, ok = registry.RoomOf(client.ID)
	require.True(t, ok)
	assert.Equal(t, "abc12345", roomID)

	prior, ok := registry.Unregister(client.ID)
	require.True(t, ok)
	assert.Equal(t, "abc12345", prior)
	assert.Equal(t, 0, registry.Count())
}

func TestConnectionRegistry_UnknownIDs(t *testing.T) {
	registry := NewConnectionRegistry()

	_, ok := registry.RoomOf("missing")
	assert.False(t, ok)

	_, ok = registry.ClientOf("missing")
	assert.False(t, ok)

	// Unregistering an unknown id is a no-op.
	_, ok = registry.Unregister("missing")
	assert.False(t, ok)

	// Setting a room on an unknown id must not create a record.
	registry.SetRoom("missing", "abc12345")
	assert.Equal(t, 0, registry.Count())
}

func TestClient_EnqueueAfterClose(t *testing.T) {
	client := NewClient(nil)

	assert.True(t, client.Enqueue([]byte(`{}`)))

	client.Close()
	assert.False(t, client.Enqueue([]byte(`{}`)), "a closed client drops, never panics")

	// Close is idempotent.
	client.Close()
}

func TestClient_EnqueueFullBufferDrops(t *testing.T) {
	client := NewClient(nil)

	for i := 0; i < sendBufferSize; i++ {
		require.True(t, client.Enqueue([]byte(`{}`)))
	}
	assert.False(t, client.Enqueue([]byte(`{}`)), "a full buffer is a best-effort drop")
}

func TestClient_EnqueueNilPayload(t *testing.T) {
	client := NewClient(nil)
	assert.False(t, client.Enqueue(nil))
}
