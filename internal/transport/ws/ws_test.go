package ws_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyang/promptvault/internal/domain/event"
	wshandler "github.com/alanyang/promptvault/internal/transport/ws"
)

func init() { gin.SetMode(gin.TestMode) }

func newHubServer(t *testing.T) (*wshandler.Hub, string) {
	t.Helper()
	hub := wshandler.NewHub()
	r := gin.New()
	hub.Register(r.Group("/ws"))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestBroadcast_ReachesConnectedClient(t *testing.T) {
	hub, url := newHubServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	received := make(chan []byte, 1)
	go func() {
		_, data, err := conn.ReadMessage()
		if err == nil {
			received <- data
		}
	}()

	// Registration completes just after the handshake, so rebroadcast until
	// the client sees an event.
	id := uuid.New()
	deadline := time.After(2 * time.Second)
	for {
		hub.Broadcast(event.New(event.TypePromptCreated, id))
		select {
		case data := <-received:
			var got event.Event
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, event.TypePromptCreated, got.Type)
			assert.Equal(t, id, got.EntityID)
			return
		case <-deadline:
			t.Fatal("broadcast never reached the client")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestBroadcast_DoesNotBlockTheCaller(t *testing.T) {
	hub, url := newHubServer(t)

	// A client that never reads must not slow the publisher down.
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	start := time.Now()
	for i := 0; i < 200; i++ {
		hub.Broadcast(event.NewBulk(event.TypePromptsImported, i))
	}
	assert.Less(t, time.Since(start), time.Second, "broadcast must not wait on the network")
}

func TestBroadcast_NoClientsIsANoOp(t *testing.T) {
	hub := wshandler.NewHub()
	hub.Broadcast(event.New(event.TypePromptDeleted, uuid.New()))
}
