package game

import "ludo/internal/board"

type EventKind string

const (
	EventDiceValueChanged     EventKind = "dice"
	EventTurnChanged          EventKind = "turn"
	EventStateChanged         EventKind = "state"
	EventPiecePositionChanged EventKind = "position"
	EventPieceCaptured        EventKind = "captured"
	EventPlayerWon            EventKind = "won"
	EventGameReset            EventKind = "reset"
)

// Event is a notification emitted after the engine commits a transition.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind     EventKind      `json:"kind"`
	Player   board.Player   `json:"player"`
	Piece    int            `json:"piece"`
	Position board.Position `json:"position"`
	Dice     int            `json:"dice,omitempty"`
	State    State          `json:"state,omitempty"`
	Eligible []int          `json:"eligible,omitempty"`
	// Step is the 1-based index of a movement step; 0 for placements.
	Step     int            `json:"step,omitempty"`
}

// Listener receives engine events in commit order. It may read engine
// state but must not call Roll, Select or Reset.
type Listener interface {
	Notify(Event)
}

type ListenerFunc func(Event)

func (f ListenerFunc) Notify(e Event) { f(e) }

type nopListener struct{}

func (nopListener) Notify(Event) {}
