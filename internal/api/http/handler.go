package http

import (
	"errors"
	"log"
	"net/http"

	"ludo/internal/game"
	"ludo/internal/room"

	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors to HTTP status codes. Rule rejections are
// conflicts with the current game state.
func statusFor(err error) int {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, room.ErrUnknownPlayer):
		return http.StatusForbidden
	case errors.Is(err, room.ErrRoomFull),
		errors.Is(err, room.ErrMoveInProgress),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrNotEligible),
		errors.Is(err, game.ErrWrongState),
		errors.Is(err, game.ErrInvalidPiece),
		errors.Is(err, game.ErrGameLocked):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWith(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// @Summary Create new room
// @Description Create a room and seat the creator as the first player
// @Tags Room
// @Accept json
// @Produce json
// @Param request body CreateRoomRequest true "Player info"
// @Success 200 {object} map[string]interface{}
// @Router /create-room [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		r, player := rm.CreateRoom(req.PlayerName)
		snap, err := rm.Snapshot(r.Code)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"roomCode": r.Code, "playerId": player.ID, "player": player, "room": snap})
	}
}

// @Summary Join a room
// @Description Take the lowest free seat in an existing room
// @Tags Room
// @Accept json
// @Produce json
// @Param request body JoinRoomRequest true "Room and player"
// @Success 200 {object} map[string]interface{}
// @Router /join-room [post]
func JoinRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomCode required"})
			return
		}
		player, err := rm.JoinRoom(req.RoomCode, req.PlayerName)
		if err != nil {
			abortWith(c, err)
			return
		}
		snap, err := rm.Snapshot(req.RoomCode)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"playerId": player.ID, "seat": player.Seat, "player": player, "room": snap})
	}
}

// @Summary Get room state
// @Tags Game
// @Produce json
// @Param roomCode query string true "Room Code"
// @Success 200 {object} map[string]interface{}
// @Router /state [get]
func StateHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomCode := c.Query("roomCode")
		if roomCode == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomCode is required"})
			return
		}
		snap, err := rm.Snapshot(roomCode)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": snap})
	}
}

// @Summary Roll the die
// @Description Roll for the active seat; returns the pieces that may move
// @Tags Game
// @Accept json
// @Produce json
// @Param request body RollRequest true "Roll"
// @Success 200 {object} map[string]interface{}
// @Router /roll [post]
func RollHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RollRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		res, err := rm.Roll(req.RoomCode, req.PlayerID)
		if err != nil {
			abortWith(c, err)
			return
		}
		snap, err := rm.Snapshot(req.RoomCode)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"dice":     res.Dice,
			"eligible": res.Eligible,
			"passed":   res.Passed,
			"nextTurn": res.NextTurn,
			"room":     snap,
		})
	}
}

// @Summary Move a piece
// @Description Move one of the eligible pieces by the rolled value
// @Tags Game
// @Accept json
// @Produce json
// @Param request body SelectRequest true "Selection"
// @Success 200 {object} map[string]interface{}
// @Router /select [post]
func SelectHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SelectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		mv, err := rm.Select(req.RoomCode, req.PlayerID, *req.Piece)
		if err != nil {
			abortWith(c, err)
			return
		}
		snap, err := rm.Snapshot(req.RoomCode)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"steps":     mv.Steps,
			"captured":  mv.Captured,
			"won":       mv.Won,
			"extraTurn": mv.ExtraTurn,
			"nextTurn":  mv.NextTurn,
			"room":      snap,
		})
	}
}

// @Summary Reset the game
// @Description Put every piece back in base; seats are kept
// @Tags Game
// @Accept json
// @Produce json
// @Param request body RoomRequest true "Room"
// @Success 200 {object} map[string]interface{}
// @Router /reset [post]
func ResetHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomCode required"})
			return
		}
		snap, err := rm.Reset(req.RoomCode)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": snap})
	}
}

// @Summary Close a room
// @Tags Room
// @Accept json
// @Produce json
// @Param request body RoomRequest true "Room"
// @Success 200 {object} map[string]interface{}
// @Router /close-room [post]
func CloseRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomCode required"})
			return
		}
		if err := rm.CloseRoom(req.RoomCode); err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
