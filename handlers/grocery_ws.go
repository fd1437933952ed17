package handlers

import (
	"encoding/json"
	"log"
	"strconv"
	"sync"

	"cooklog/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// SendSocketFunc returns true if data was successfully sent
type SendSocketFunc func([]byte) bool

type ConnectedClient struct {
	fun SendSocketFunc
}

// ConnectedClients is needed as a user may be connected more than once
type ConnectedClients []*ConnectedClient

var (
	ConnectedUsers = cmap.New[ConnectedClients]()

	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
)

type GroceryUpdateMessage struct {
	Type   string `json:"type"`
	ListID uint64 `json:"list"`
}

func userSocketID(userID uint64) string {
	return strconv.FormatUint(userID, 10)
}

func addClient(id string, c *ConnectedClient) {
	ConnectedUsers.Upsert(id, ConnectedClients{c}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if exist {
			return append(valueInMap, c)
		}
		return newValue
	})
}

func removeClient(id string, c *ConnectedClient) {
	ConnectedUsers.Upsert(id, ConnectedClients{}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if !exist {
			return newValue
		}
		for _, oc := range valueInMap {
			if oc == c {
				continue
			}
			newValue = append(newValue, oc)
		}
		return newValue
	})
}

// broadcastGroceryUpdate tells every open session of the user to re-fetch the
// list, so phone and tablet stay in sync while shopping
func broadcastGroceryUpdate(userID, listID uint64) {
	clients, ok := ConnectedUsers.Get(userSocketID(userID))
	if !ok {
		return
	}
	data, err := json.Marshal(GroceryUpdateMessage{Type: "grocery_update", ListID: listID})
	if err != nil {
		return
	}
	for _, client := range clients {
		client.fun(data)
	}
}

func WebSocket(c *gin.Context, user *models.User) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer conn.Close()

	// Setup client. Broadcasts come from other goroutines and the connection
	// allows a single concurrent writer, so all writes go through writeMutex.
	isConnected := true
	writeMutex := sync.Mutex{}
	id := userSocketID(user.ID)
	client := ConnectedClient{}
	client.fun = func(data []byte) bool {
		writeMutex.Lock()
		defer writeMutex.Unlock()
		if !isConnected {
			return false
		}
		err := conn.WriteMessage(websocket.TextMessage, data)
		if err != nil {
			log.Println("write err:", err)
			isConnected = false
			return false
		}
		return true
	}
	addClient(id, &client)
	defer removeClient(id, &client)
	// Main read cycle
	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			writeMutex.Lock()
			isConnected = false
			writeMutex.Unlock()
			break
		}
		if string(message) == "ping" {
			writeMutex.Lock()
			conn.WriteMessage(mt, []byte("pong"))
			writeMutex.Unlock()
		}
	}
}
