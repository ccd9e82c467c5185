package game

import (
	"errors"

	"ludo/internal/board"
)

// State is the interaction state of the engine.
type State string

const (
	// StateAwaitingRoll means the active player must roll; no piece is highlighted.
	StateAwaitingRoll State = "awaiting_roll"
	// StateAwaitingMove means the active player must pick one of the eligible pieces.
	StateAwaitingMove State = "awaiting_move"
)

var (
	ErrWrongState   = errors.New("action not allowed in current state")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrInvalidPiece = errors.New("piece index out of range")
	ErrNotEligible  = errors.New("piece is not eligible to move")
	ErrGameLocked   = errors.New("game is over")
)

// Positions holds every piece position, indexed by player then piece.
type Positions [board.NumPlayers][board.PiecesPerPlayer]board.Position

// InitialPositions puts every piece in its own base slot.
func InitialPositions() Positions {
	var ps Positions
	for p := board.Player(0); p < board.NumPlayers; p++ {
		ps[p] = board.BaseSlots(p)
	}
	return ps
}

// Capture records an opponent piece sent back to base.
type Capture struct {
	Player board.Player   `json:"player"`
	Piece  int            `json:"piece"`
	From   board.Position `json:"from"`
	To     board.Position `json:"to"`
}

// RollResult describes the outcome of a roll.
type RollResult struct {
	Player   board.Player `json:"player"`
	Dice     int          `json:"dice"`
	Eligible []int        `json:"eligible"`
	// Passed is set when no piece could move and the turn went to NextTurn.
	Passed   bool         `json:"passed"`
	NextTurn board.Player `json:"nextTurn"`
}

// MoveResult describes a completed piece move. Steps lists every cell the
// piece visited, in order, ending at To.
type MoveResult struct {
	Player      board.Player     `json:"player"`
	Piece       int              `json:"piece"`
	From        board.Position   `json:"from"`
	To          board.Position   `json:"to"`
	Steps       []board.Position `json:"steps"`
	Captured    []Capture        `json:"captured,omitempty"`
	ReachedHome bool             `json:"reachedHome"`
	Won         bool             `json:"won"`
	ExtraTurn   bool             `json:"extraTurn"`
	NextTurn    board.Player     `json:"nextTurn"`
}

// Snapshot is a copy of the full game state.
type Snapshot struct {
	Positions Positions      `json:"positions"`
	Turn      board.Player   `json:"turn"`
	Dice      int            `json:"dice"`
	State     State          `json:"state"`
	Eligible  []int          `json:"eligible"`
	Winners   []board.Player `json:"winners"`
	Locked    bool           `json:"locked"`
}
