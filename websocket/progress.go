package websocket

import (
	"log"
	"sync"

	"learnhub/models"

	"github.com/gorilla/websocket"
)

// ProgressClient represents a client connected for live progress updates
type ProgressClient struct {
	Conn    *websocket.Conn
	UserID  string
	writeMu sync.Mutex
}

// SafeWriteJSON safely writes JSON data to the client's WebSocket connection
func (pc *ProgressClient) SafeWriteJSON(v interface{}) error {
	pc.writeMu.Lock()
	defer pc.writeMu.Unlock()
	return pc.Conn.WriteJSON(v)
}

// Global hub for broadcasting progress events to all connected clients
var (
	progressClients = make(map[*ProgressClient]bool)
	progressMutex   sync.RWMutex
)

// RegisterProgressClient registers a client for progress updates
func RegisterProgressClient(client *ProgressClient) {
	progressMutex.Lock()
	defer progressMutex.Unlock()
	progressClients[client] = true
	log.Printf("Progress client registered. Total clients: %d", len(progressClients))
}

// UnregisterProgressClient removes a client and closes its connection
func UnregisterProgressClient(client *ProgressClient) {
	progressMutex.Lock()
	defer progressMutex.Unlock()
	delete(progressClients, client)
	client.Conn.Close()
	log.Printf("Progress client unregistered. Total clients: %d", len(progressClients))
}

// BroadcastProgressEvent broadcasts a progress event to all connected clients
func BroadcastProgressEvent(event models.ProgressEvent) {
	progressMutex.RLock()
	defer progressMutex.RUnlock()

	for client := range progressClients {
		if err := client.SafeWriteJSON(event); err != nil {
			log.Printf("Error broadcasting progress event to client: %v", err)
			// Remove client if write fails
			go UnregisterProgressClient(client)
		}
	}
}

// ProgressClientsCount returns the number of connected clients
func ProgressClientsCount() int {
	progressMutex.RLock()
	defer progressMutex.RUnlock()
	return len(progressClients)
}
