package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunningHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func newHubClient(hub *Hub, buffer int) *Client {
	return &Client{
		ID:     "client",
		hub:    hub,
		send:   make(chan []byte, buffer),
		logger: zerolog.Nop(),
	}
}

func recv(t *testing.T, c *Client) []byte {
	t.Helper()

	select {
	case msg, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func expectSilence(t *testing.T, c *Client) {
	t.Helper()

	select {
	case msg := <-c.send:
		t.Fatalf("unexpected message: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcastReachesRoomMembers(t *testing.T) {
	hub := newRunningHub(t)

	a := newHubClient(hub, 16)
	b := newHubClient(hub, 16)
	outsider := newHubClient(hub, 16)
	for _, c := range []*Client{a, b, outsider} {
		hub.register <- c
	}
	hub.joins <- joinRequest{client: a, room: RoomName("band-1")}
	hub.joins <- joinRequest{client: b, room: RoomName("band-1")}
	hub.joins <- joinRequest{client: outsider, room: RoomName("band-2")}

	hub.Broadcast(RoomName("band-1"), []byte(`{"type":"rehearsal_scheduled"}`))

	assert.JSONEq(t, `{"type":"rehearsal_scheduled"}`, string(recv(t, a)))
	assert.JSONEq(t, `{"type":"rehearsal_scheduled"}`, string(recv(t, b)))
	expectSilence(t, outsider)
}

func TestLeaveStopsDelivery(t *testing.T) {
	hub := newRunningHub(t)

	c := newHubClient(hub, 16)
	hub.register <- c
	hub.joins <- joinRequest{client: c, room: RoomName("band-1")}
	hub.leaves <- joinRequest{client: c, room: RoomName("band-1")}

	hub.Broadcast(RoomName("band-1"), []byte("x"))
	expectSilence(t, c)
}

func TestUnregisterCleansUpRooms(t *testing.T) {
	hub := newRunningHub(t)

	c := newHubClient(hub, 16)
	hub.register <- c
	hub.joins <- joinRequest{client: c, room: RoomName("band-1")}
	hub.unregister <- c

	hub.Broadcast(RoomName("band-1"), []byte("x"))

	// The send channel is closed on drop and receives nothing.
	select {
	case msg, ok := <-c.send:
		assert.False(t, ok)
		assert.Nil(t, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("send channel was not closed")
	}
}

func TestSlowClientIsDropped(t *testing.T) {
	hub := newRunningHub(t)

	c := newHubClient(hub, 1)
	hub.register <- c
	hub.joins <- joinRequest{client: c, room: RoomName("band-1")}

	hub.Broadcast(RoomName("band-1"), []byte("first"))
	hub.Broadcast(RoomName("band-1"), []byte("second"))

	assert.Equal(t, "first", string(recv(t, c)))
	_, ok := <-c.send
	assert.False(t, ok, "send channel should be closed after overflow")
}

func TestRoomName(t *testing.T) {
	assert.Equal(t, "band_42", RoomName("42"))
}

// End-to-end: a websocket client joins a band room over the wire and
// receives a hub broadcast.
func TestServeWSJoinAndReceive(t *testing.T) {
	hub := newRunningHub(t)

	srv := httptest.NewServer(http.HandlerFunc(ServeWS(hub, zerolog.Nop())))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	join, err := json.Marshal(clientMessage{Event: "join_band", BandID: "band-1"})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, join))

	// The join travels through the read pump asynchronously; keep
	// broadcasting until the frame comes back.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				hub.Broadcast(RoomName("band-1"), []byte(`{"type":"rehearsal_scheduled"}`))
			}
		}
	}()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"rehearsal_scheduled"}`, string(raw))
}
