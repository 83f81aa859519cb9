package websocket

import (
	"log"
	"net/http"
	"strings"

	"learnhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ProgressWebSocketHandler upgrades an authenticated connection and keeps it
// subscribed to progress events until the client disconnects.
func ProgressWebSocketHandler(c *gin.Context) {
	// Token from Authorization header, falling back to query parameter for
	// browser WebSocket clients that cannot set headers.
	var tokenString string
	if authz := c.GetHeader("Authorization"); authz != "" {
		parts := strings.Split(authz, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}
	if tokenString == "" {
		tokenString = c.Query("token")
	}
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
		return
	}

	claims, err := utils.ParseJWTToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &ProgressClient{
		Conn:   conn,
		UserID: claims.UserID,
	}
	RegisterProgressClient(client)
	defer UnregisterProgressClient(client)

	client.SafeWriteJSON(map[string]interface{}{
		"type":   "connected",
		"userId": claims.UserID,
	})

	// Keep the connection alive; the only inbound traffic is keepalive pings.
	for {
		messageType, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Progress WebSocket error: %v", err)
			}
			break
		}
		if messageType == websocket.PingMessage {
			if err := conn.WriteMessage(websocket.PongMessage, nil); err != nil {
				log.Printf("Error writing pong: %v", err)
				break
			}
		}
	}
}
