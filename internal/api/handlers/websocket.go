package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/pittman021/golf-game/internal/ws"
)

// HandleRoundWebSocket handles real-time round communication
func HandleRoundWebSocket() gin.HandlerFunc {
	return ws.HandleWebSocket
}
