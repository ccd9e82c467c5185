package room

import (
	"context"
	"sync"
	"time"

	"ludo/internal/board"
	"ludo/internal/game"
	"ludo/internal/shared"
)

type Seat struct {
	ID   string
	Name string
}

// Room is one board and the people seated at it. mu serializes every
// request against the room, including event broadcasts.
type Room struct {
	ID        string
	Code      string
	CreatedAt time.Time

	mu     sync.Mutex
	seats  [board.NumPlayers]*Seat
	engine *game.Engine

	// events collects what the engine emits during the current request.
	events []game.Event

	animating bool
	cancel    context.CancelFunc
	gen       int
}

func (r *Room) collect(ev game.Event) {
	r.events = append(r.events, ev)
}

func (r *Room) takeEvents() []game.Event {
	evs := r.events
	r.events = nil
	return evs
}

func (r *Room) seatOf(playerID string) (board.Player, bool) {
	for i, s := range r.seats {
		if s != nil && s.ID == playerID {
			return board.Player(i), true
		}
	}
	return 0, false
}

func (r *Room) freeSeat() (board.Player, bool) {
	for i, s := range r.seats {
		if s == nil {
			return board.Player(i), true
		}
	}
	return 0, false
}

func (r *Room) seated() int {
	n := 0
	for _, s := range r.seats {
		if s != nil {
			n++
		}
	}
	return n
}

func playerView(seat board.Player, s *Seat) shared.Player {
	return shared.Player{ID: s.ID, Name: s.Name, Seat: seat, Color: board.Colors[seat]}
}

// view must be called with r.mu held.
func (r *Room) view() shared.Room {
	out := shared.Room{
		ID:        r.ID,
		Code:      r.Code,
		Players:   make([]shared.Player, 0, board.NumPlayers),
		Game:      r.engine.Snapshot(),
		Animating: r.animating,
		CreatedAt: r.CreatedAt,
	}
	for i, s := range r.seats {
		if s != nil {
			out.Players = append(out.Players, playerView(board.Player(i), s))
		}
	}
	return out
}
