package timer

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"timedesk/internal/middleware"
	"timedesk/internal/pkg/jwt"
	"timedesk/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Same allow-list as the CORS middleware. Non-browser clients send
	// no Origin header and pass.
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || middleware.OriginAllowed(origin)
	},
}

// WSHandler upgrades feed subscriptions.
//
// Endpoint: GET /ws/timer?token=JWT. Browsers cannot set headers on
// websocket requests, so the token travels as a query parameter.
type WSHandler struct {
	hub *Hub
	jwt *jwt.Service
}

func NewWSHandler(hub *Hub, jwt *jwt.Service) *WSHandler {
	return &WSHandler{hub: hub, jwt: jwt}
}

func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		response.ErrorMessage(c, http.StatusUnauthorized, "token query parameter required", nil)
		return
	}

	claims, err := h.jwt.ValidateToken(tokenStr)
	if err != nil {
		response.ErrorMessage(c, http.StatusUnauthorized, "invalid or expired token", nil)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("timer feed upgrade failed: %v", err)
		return
	}

	h.hub.ServeWS(conn, claims.UserID)
}
