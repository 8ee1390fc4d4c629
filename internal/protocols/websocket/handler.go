package websocket

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"aniview/internal/auth"
	"aniview/pkg/logger"
	"aniview/pkg/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect cross-origin during development
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades an authenticated request to a progress event stream.
// Browsers cannot set headers on websocket connects, so the token
// arrives as a query parameter.
func Handler(hub *Hub, verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		userID, err := verifier.UserID(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.APIResponse{
				Success:   false,
				Error:     "invalid or missing token",
				Timestamp: time.Now(),
			})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warnf("websocket upgrade failed: %v", err)
			return
		}

		client := &Client{
			hub:    hub,
			conn:   conn,
			send:   make(chan models.ProgressEvent, sendBuffer),
			userID: userID,
		}
		hub.register(client)

		go client.writePump()
		go client.readPump()
	}
}
