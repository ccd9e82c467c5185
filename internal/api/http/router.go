package http

import (
	"net/http"

	"ludo/internal/api/ws"
	"ludo/internal/config"
	"ludo/internal/room"

	"github.com/gin-gonic/gin"
)

type roomCounter interface {
	Len() int
}

func SetupRouter(rm *room.Manager, rooms roomCounter, hub *ws.Hub, cfg config.Config) *gin.Engine {
	r := gin.Default()

	// WebSocket for FE live updates
	r.GET("/ws", hub.HandleWS)

	// --- ROOM ENDPOINTS ---
	r.POST("/create-room", CreateRoomHandler(rm))
	r.POST("/join-room", JoinRoomHandler(rm))
	r.POST("/close-room", CloseRoomHandler(rm))

	// --- GAME ENDPOINTS ---
	r.GET("/state", StateHandler(rm))
	r.POST("/roll", RollHandler(rm))
	r.POST("/select", SelectHandler(rm))
	r.POST("/reset", ResetHandler(rm))

	// --- CONFIG ENDPOINTS ---
	r.GET("/geometry", GeometryHandler())
	r.GET("/config", ConfigHandler(cfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "rooms": rooms.Len()})
	})

	return r
}
