package game

import (
	"fmt"
	"slices"
	"sync"

	"ludo/internal/board"
	"ludo/internal/dice"
)

// Engine owns one game. Roll, Select and Reset are serialized; the events an
// operation raises are delivered to the listener after it commits and before
// the next operation starts.
type Engine struct {
	opMu sync.Mutex
	mu   sync.Mutex

	roller    dice.Roller
	listener  Listener
	lockOnWin bool

	positions Positions
	turn      board.Player
	dice      int
	state     State
	eligible  []int
	winners   []board.Player

	pending []Event
}

type Option func(*Engine)

func WithListener(l Listener) Option {
	return func(e *Engine) {
		if l != nil {
			e.listener = l
		}
	}
}

// WithLockOnWin makes the engine reject Roll and Select once any player has won.
func WithLockOnWin(lock bool) Option {
	return func(e *Engine) { e.lockOnWin = lock }
}

func New(r dice.Roller, opts ...Option) *Engine {
	e := &Engine{roller: r, listener: nopListener{}}
	for _, opt := range opts {
		opt(e)
	}
	e.reset()
	e.pending = nil
	return e
}

// NewFromPositions starts a game from an arbitrary board with turn set to
// the given player, awaiting a roll. It panics if a position does not belong
// to its player.
func NewFromPositions(r dice.Roller, ps Positions, turn board.Player, opts ...Option) *Engine {
	if !turn.Valid() {
		panic(fmt.Sprintf("game: invalid turn %d", turn))
	}
	for p := board.Player(0); p < board.NumPlayers; p++ {
		for i, pos := range ps[p] {
			if board.KindOf(p, pos) == board.KindInvalid {
				panic(fmt.Sprintf("game: piece %d of %v at invalid position %d", i, p, pos))
			}
		}
	}
	e := New(r, opts...)
	e.positions = ps
	e.turn = turn
	for p := board.Player(0); p < board.NumPlayers; p++ {
		if HasPlayerWon(ps, p) {
			e.winners = append(e.winners, p)
		}
	}
	return e
}

// Roll rolls the die for the active player. If no piece can move the turn
// passes immediately; otherwise the engine waits for Select.
func (e *Engine) Roll() (RollResult, error) {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	e.mu.Lock()
	res, err := e.roll()
	events := e.drain()
	e.mu.Unlock()

	e.deliver(events)
	return res, err
}

// Select moves piece of player by the last rolled value. The piece must be
// in the eligible set computed by the preceding Roll.
func (e *Engine) Select(player board.Player, piece int) (MoveResult, error) {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	e.mu.Lock()
	res, err := e.selectPiece(player, piece)
	events := e.drain()
	e.mu.Unlock()

	e.deliver(events)
	return res, err
}

// Reset puts every piece back in base and gives the turn to player 0.
func (e *Engine) Reset() {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	e.mu.Lock()
	e.reset()
	events := e.drain()
	e.mu.Unlock()

	e.deliver(events)
}

func (e *Engine) roll() (RollResult, error) {
	if err := e.checkOpen(StateAwaitingRoll); err != nil {
		return RollResult{}, err
	}

	player := e.turn
	e.dice = e.roller.Roll()
	e.emit(Event{Kind: EventDiceValueChanged, Player: player, Dice: e.dice})

	res := RollResult{Player: player, Dice: e.dice}
	e.eligible = EligiblePieces(player, e.positions[player], e.dice)
	if len(e.eligible) == 0 {
		e.passTurn()
		res.Passed = true
	} else {
		e.setState(StateAwaitingMove)
	}
	res.Eligible = slices.Clone(e.eligible)
	res.NextTurn = e.turn
	return res, nil
}

func (e *Engine) selectPiece(player board.Player, piece int) (MoveResult, error) {
	if err := e.checkOpen(StateAwaitingMove); err != nil {
		return MoveResult{}, err
	}
	if player != e.turn {
		return MoveResult{}, ErrNotYourTurn
	}
	if piece < 0 || piece >= board.PiecesPerPlayer {
		return MoveResult{}, ErrInvalidPiece
	}
	if !slices.Contains(e.eligible, piece) {
		return MoveResult{}, ErrNotEligible
	}

	from := e.positions[player][piece]
	res := MoveResult{Player: player, Piece: piece, From: from}
	e.eligible = nil

	if board.KindOf(player, from) == board.KindBase {
		start := board.StartCell(player)
		e.setPosition(player, piece, start, 0)
		res.To = start
		res.Steps = []board.Position{start}
		res.ExtraTurn = true
		e.setState(StateAwaitingRoll)
		res.NextTurn = e.turn
		return res, nil
	}

	steps := e.advance(player, piece, e.dice)
	res.Steps = steps
	res.To = steps[len(steps)-1]

	// win check runs before capture resolution; home is never shared
	if res.To == board.HomeCell(player) {
		res.ReachedHome = true
		if HasPlayerWon(e.positions, player) {
			res.Won = true
			e.recordWin(player)
		}
	} else {
		res.Captured = e.checkForKill(player, piece)
	}

	if len(res.Captured) > 0 || e.dice == 6 {
		res.ExtraTurn = true
		e.setState(StateAwaitingRoll)
	} else {
		e.passTurn()
	}
	res.NextTurn = e.turn
	return res, nil
}

func (e *Engine) reset() {
	e.positions = InitialPositions()
	e.turn = 0
	e.dice = 0
	e.state = StateAwaitingRoll
	e.eligible = nil
	e.winners = nil

	e.emit(Event{Kind: EventGameReset})
	for p := board.Player(0); p < board.NumPlayers; p++ {
		for i, pos := range e.positions[p] {
			e.emit(Event{Kind: EventPiecePositionChanged, Player: p, Piece: i, Position: pos})
		}
	}
	e.emit(Event{Kind: EventTurnChanged, Player: e.turn})
	e.emit(Event{Kind: EventStateChanged, Player: e.turn, State: e.state})
}

// advance walks piece one cell at a time, writing each cell back.
func (e *Engine) advance(player board.Player, piece, steps int) []board.Position {
	path, err := Path(player, e.positions[player][piece], steps)
	if err != nil {
		// eligibility rules out overshoot and invalid cells
		panic(fmt.Sprintf("game: advance %v piece %d: %v", player, piece, err))
	}
	for i, pos := range path {
		e.setPosition(player, piece, pos, i+1)
	}
	return path
}

// checkForKill sends every opponent piece sharing the landing cell back to
// base, unless the cell is safe.
func (e *Engine) checkForKill(player board.Player, piece int) []Capture {
	cell := e.positions[player][piece]
	if !board.IsRing(cell) || board.IsSafeCell(cell) {
		return nil
	}
	var captured []Capture
	for opp := board.Player(0); opp < board.NumPlayers; opp++ {
		if opp == player {
			continue
		}
		for i, pos := range e.positions[opp] {
			if pos != cell {
				continue
			}
			base := board.BaseSlots(opp)[i]
			e.setPosition(opp, i, base, 0)
			e.emit(Event{Kind: EventPieceCaptured, Player: opp, Piece: i, Position: cell})
			captured = append(captured, Capture{Player: opp, Piece: i, From: cell, To: base})
		}
	}
	return captured
}

func (e *Engine) recordWin(p board.Player) {
	if slices.Contains(e.winners, p) {
		return
	}
	e.winners = append(e.winners, p)
	e.emit(Event{Kind: EventPlayerWon, Player: p})
}

func (e *Engine) passTurn() {
	e.turn = e.turn.Next()
	e.emit(Event{Kind: EventTurnChanged, Player: e.turn})
	e.setState(StateAwaitingRoll)
}

func (e *Engine) setState(s State) {
	e.state = s
	ev := Event{Kind: EventStateChanged, Player: e.turn, State: s}
	if s == StateAwaitingMove {
		ev.Eligible = slices.Clone(e.eligible)
	}
	e.emit(ev)
}

func (e *Engine) setPosition(p board.Player, piece int, pos board.Position, step int) {
	e.positions[p][piece] = pos
	e.emit(Event{Kind: EventPiecePositionChanged, Player: p, Piece: piece, Position: pos, Step: step})
}

func (e *Engine) checkOpen(want State) error {
	if e.locked() {
		return ErrGameLocked
	}
	if e.state != want {
		return ErrWrongState
	}
	return nil
}

func (e *Engine) locked() bool {
	return e.lockOnWin && len(e.winners) > 0
}

func (e *Engine) emit(ev Event) {
	e.pending = append(e.pending, ev)
}

func (e *Engine) drain() []Event {
	events := e.pending
	e.pending = nil
	return events
}

func (e *Engine) deliver(events []Event) {
	for _, ev := range events {
		e.listener.Notify(ev)
	}
}

func (e *Engine) Turn() board.Player {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.turn
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Dice returns the last rolled value, or 0 before the first roll.
func (e *Engine) Dice() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dice
}

func (e *Engine) Eligible() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.eligible)
}

func (e *Engine) Positions() Positions {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.positions
}

func (e *Engine) Position(p board.Player, piece int) board.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.positions[p][piece]
}

func (e *Engine) HasPlayerWon(p board.Player) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return HasPlayerWon(e.positions, p)
}

// Winners lists players in the order they brought all pieces home.
func (e *Engine) Winners() []board.Player {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.winners)
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Positions: e.positions,
		Turn:      e.turn,
		Dice:      e.dice,
		State:     e.state,
		Eligible:  slices.Clone(e.eligible),
		Winners:   slices.Clone(e.winners),
		Locked:    e.locked(),
	}
}
