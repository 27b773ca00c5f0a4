package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event types pushed to floor-plan and waitlist dashboards.
const (
	EventFloorSnapshot   = "floor_snapshot"
	EventBookingUpdate   = "booking_update"
	EventWaitlistUpdate  = "waitlist_update"
	EventTableAssignment = "table_assignment"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type hub struct {
	clients map[*websocket.Conn]bool
	mutex   sync.Mutex
}

var floorHub = hub{
	clients: make(map[*websocket.Conn]bool),
}

// RegisterClient adds a dashboard connection to the broadcast set.
func RegisterClient(conn *websocket.Conn) {
	floorHub.mutex.Lock()
	defer floorHub.mutex.Unlock()
	floorHub.clients[conn] = true
}

// UnregisterClient removes and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	floorHub.mutex.Lock()
	defer floorHub.mutex.Unlock()
	delete(floorHub.clients, conn)
	conn.Close()
}

// Broadcast fans a message out to every connected client. A client that fails
// to receive is dropped; the dashboard reconnects and re-fetches on its own.
func Broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WS] marshal broadcast: %v", err)
		return
	}

	floorHub.mutex.Lock()
	defer floorHub.mutex.Unlock()

	for conn := range floorHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("[WS] dropping client: %v", err)
			delete(floorHub.clients, conn)
			conn.Close()
		}
	}
}

// ClientCount is used by health reporting.
func ClientCount() int {
	floorHub.mutex.Lock()
	defer floorHub.mutex.Unlock()
	return len(floorHub.clients)
}
