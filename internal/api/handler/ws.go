package handler

import (
	"log"
	"net/http"
	"strings"

	"cleanspot/backend/internal/feed"
	"cleanspot/backend/internal/models"

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

// ServeWS upgrades the connection and subscribes the caller to the live
// complaint feed. Browsers cannot set headers on WebSocket handshakes, so the
// token is also accepted as a query parameter.
func (h *Handler) ServeWS(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		token = c.Query("token")
	}

	identity, err := h.validateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token or expired"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ERROR: Failed to upgrade websocket for user %s: %v", identity.UserID, err)
		return
	}

	client := &feed.Client{
		UserID: identity.UserID,
		Conn:   conn,
		Hub:    h.Hub,
		Send:   make(chan models.ComplaintEvent, 256),
	}
	h.Hub.RegisterCh <- client
	client.Run()
}
