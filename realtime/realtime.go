package realtime

import (
	"log"
	"sync"

	"backoffice/models"

	"github.com/gorilla/websocket"
)

var (
	accessClients = make(map[*websocket.Conn]bool) // Dashboard clients watching the live access feed
	broadcast     = make(chan AccessUpdate, 64)    // Buffered so the logging path never blocks
	mutex         sync.Mutex                       // Protects accessClients
)

// AccessUpdate is one event pushed to dashboard clients
type AccessUpdate struct {
	Event models.AccessEvent `json:"event"`
}

// RegisterAccessClient adds a WebSocket client to the access feed
func RegisterAccessClient(conn *websocket.Conn) {
	mutex.Lock()
	accessClients[conn] = true
	mutex.Unlock()
}

// UnregisterAccessClient removes a WebSocket client from the access feed
func UnregisterAccessClient(conn *websocket.Conn) {
	mutex.Lock()
	delete(accessClients, conn)
	mutex.Unlock()
}

// BroadcastAccessEvent pushes a freshly persisted event to all dashboard
// clients; when the channel is full the event is dropped rather than
// slowing down the request path
func BroadcastAccessEvent(event models.AccessEvent) {
	select {
	case broadcast <- AccessUpdate{Event: event}:
	default:
	}
}

func handleBroadcast() {
	for update := range broadcast {
		mutex.Lock()
		for client := range accessClients {
			if err := client.WriteJSON(update); err != nil {
				log.Printf("WebSocket write error: %v", err)
				client.Close()
				delete(accessClients, client)
			}
		}
		mutex.Unlock()
	}
}

func init() {
	go handleBroadcast()
}
