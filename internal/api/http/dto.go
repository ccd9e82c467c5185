package http

// CreateRoomRequest represents the payload for /create-room.
type CreateRoomRequest struct {
	PlayerName string `json:"playerName"`
}

// JoinRoomRequest represents the payload for /join-room.
type JoinRoomRequest struct {
	RoomCode   string `json:"roomCode" binding:"required"`
	PlayerName string `json:"playerName"`
}

// RollRequest represents the payload for /roll.
type RollRequest struct {
	RoomCode string `json:"roomCode" binding:"required"`
	PlayerID string `json:"playerId" binding:"required"`
}

// SelectRequest represents a piece selection.
type SelectRequest struct {
	RoomCode string `json:"roomCode" binding:"required"`
	PlayerID string `json:"playerId" binding:"required"`
	Piece    *int   `json:"piece" binding:"required"`
}

// RoomRequest addresses a room without acting as a player.
type RoomRequest struct {
	RoomCode string `json:"roomCode" binding:"required"`
}
