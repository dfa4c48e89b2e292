// Package ws pushes resolved selections to connected map views over
// websockets, so every open map sees new selections without polling.
package ws

import (
	"encoding/json"
	"log/slog"
)

// Hub maintains the set of active clients and broadcasts messages.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// Run owns the client set. All map mutation happens on this goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug("websocket client registered", "remote", client.conn.RemoteAddr().String())

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Debug("websocket client unregistered", "remote", client.conn.RemoteAddr().String())
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Send buffer full, drop the slow client.
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// BroadcastResolution fans a resolved selection out to every client.
func (h *Hub) BroadcastResolution(res any) {
	message, err := json.Marshal(map[string]any{"type": "resolution", "payload": res})
	if err != nil {
		h.logger.Error("failed to marshal broadcast", "error", err)
		return
	}
	h.broadcast <- message
}
