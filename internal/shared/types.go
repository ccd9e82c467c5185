package shared

import (
	"time"

	"ludo/internal/board"
	"ludo/internal/game"
)

type Room struct {
	ID        string        `json:"id"`
	Code      string        `json:"code"`
	Players   []Player      `json:"players"`
	Game      game.Snapshot `json:"game"`
	Animating bool          `json:"animating"`
	CreatedAt time.Time     `json:"createdAt"`
}

type Player struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Seat  board.Player `json:"seat"`
	Color string       `json:"color"` // display color of the seat
}

// Message is the envelope for every WebSocket frame, in both directions.
type Message struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

// Geometry is the board layout sent to clients for rendering.
type Geometry struct {
	RingSize      int                                                     `json:"ringSize"`
	SafeCells     []board.Position                                        `json:"safeCells"`
	Colors        [board.NumPlayers]string                                `json:"colors"`
	BaseSlots     [board.NumPlayers][board.PiecesPerPlayer]board.Position `json:"baseSlots"`
	StartCells    [board.NumPlayers]board.Position                        `json:"startCells"`
	TurningPoints [board.NumPlayers]board.Position                        `json:"turningPoints"`
	HomeLanes     [board.NumPlayers][board.LaneLength]board.Position      `json:"homeLanes"`
	HomeCells     [board.NumPlayers]board.Position                        `json:"homeCells"`
}

func NewGeometry() Geometry {
	g := Geometry{
		RingSize:  board.RingSize,
		SafeCells: board.SafeCells(),
		Colors:    board.Colors,
	}
	for p := board.Player(0); p < board.NumPlayers; p++ {
		g.BaseSlots[p] = board.BaseSlots(p)
		g.StartCells[p] = board.StartCell(p)
		g.TurningPoints[p] = board.TurningPoint(p)
		g.HomeLanes[p] = board.HomeLane(p)
		g.HomeCells[p] = board.HomeCell(p)
	}
	return g
}
