package config

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// Upgrader accepts any origin since the game UI may be served from a
// different host than the API.
func Upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}
