package ws

import (
	"ludo/internal/game"
	"ludo/internal/shared"
)

type RoomManager interface {
	Snapshot(roomCode string) (shared.Room, error)
	Roll(roomCode, playerID string) (game.RollResult, error)
	Select(roomCode, playerID string, piece int) (game.MoveResult, error)
	Reset(roomCode string) (shared.Room, error)
}
