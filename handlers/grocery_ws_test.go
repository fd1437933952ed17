package handlers

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"cooklog/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Broadcasts come from handler goroutines while the read loop answers pings
// on the same connection. All of them must arrive intact.
func TestGroceryBroadcastConcurrentWrites(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		WebSocket(c, &models.User{ID: 77})
	})
	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// Wait for the read loop to register the client
	id := userSocketID(77)
	deadline := time.Now().Add(2 * time.Second)
	for {
		if clients, ok := ConnectedUsers.Get(id); ok && len(clients) > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	const updates = 20
	wg := sync.WaitGroup{}
	for i := 0; i < updates; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			broadcastGroceryUpdate(77, 5)
		}()
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
		t.Fatalf("ping failed: %v", err)
	}

	received := 0
	pong := false
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for received < updates || !pong {
		_, message, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read failed after %d updates: %v", received, err)
		}
		if string(message) == "pong" {
			pong = true
			continue
		}
		received++
	}
	wg.Wait()
}
