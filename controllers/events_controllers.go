package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tasteline/restaurant-app/events"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventsHandler -> websocket endpoint for the live dashboards. The caller's
// role comes from the JWT; the URL role segment just names the screen.
func EventsHandler(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	role := roleInterface.(string)

	switch role {
	case "kitchen", "staff", "admin", "delivery":
	default:
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	events.Subscribe(ws, role)

	// Drain until the client goes away, then unsubscribe.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	events.Unsubscribe(ws)
}
