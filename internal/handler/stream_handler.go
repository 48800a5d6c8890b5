package handler

import (
	"log"
	"net/http"

	"github.com/0xFF-test/TikRewards/internal/service"
	"github.com/0xFF-test/TikRewards/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// StreamHandler pushes live balance updates to connected clients over a
// websocket, fed by the Redis points channel.
type StreamHandler struct {
	stream   service.PointsStream
	upgrader websocket.Upgrader
}

func NewStreamHandler(stream service.PointsStream) *StreamHandler {
	return &StreamHandler{
		stream: stream,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for now
			},
		},
	}
}

func (h *StreamHandler) PointsStream(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	sub := h.stream.Subscribe(c.Request.Context(), userID)
	if sub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "live updates unavailable"})
		return
	}
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Drain client frames so pings and close messages are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for msg := range sub.Channel() {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
			return
		}
	}
}
