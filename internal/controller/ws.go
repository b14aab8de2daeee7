package controller

import (
	"net/http"

	"gigflow/internal/notify"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo"
)

type wsRoutesHandler struct {
	hub      *notify.Hub
	upgrader websocket.Upgrader
}

func newWsRoutesHandler(outer *echo.Group, hub *notify.Hub, frontendURL string, auth echo.MiddlewareFunc) *wsRoutesHandler {
	h := &wsRoutesHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")

				return origin == "" || origin == frontendURL
			},
		},
	}

	outer.GET("/ws", h.Connect, auth)

	return h
}

// Connect upgrades the request and registers the session under the caller's
// user id, so workflow events addressed to that user reach this connection.
func (h *wsRoutesHandler) Connect(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote an HTTP error to the client
		return nil
	}

	h.hub.Serve(callerId(c), conn)

	return nil
}
