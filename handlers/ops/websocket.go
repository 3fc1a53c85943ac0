package ops

import (
	"log"
	"net/http"

	"backoffice/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// AccessFeedWebSocket streams freshly logged access events to dashboard clients
func AccessFeedWebSocket(c *gin.Context) {
	if !requireDashboardPerm(c) {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	realtime.RegisterAccessClient(conn)
	defer func() {
		realtime.UnregisterAccessClient(conn)
		conn.Close()
	}()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}
