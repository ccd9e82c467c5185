package game

import (
	"errors"
	"slices"
	"testing"

	"ludo/internal/board"
	"ludo/internal/dice"
)

type recorder struct {
	events []Event
}

func (r *recorder) Notify(e Event) { r.events = append(r.events, e) }

func (r *recorder) kinds() []EventKind {
	out := make([]EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func mustRoll(t *testing.T, e *Engine) RollResult {
	t.Helper()
	res, err := e.Roll()
	if err != nil {
		t.Fatalf("Roll: %v", err)
	}
	return res
}

func mustSelect(t *testing.T, e *Engine, p board.Player, piece int) MoveResult {
	t.Helper()
	res, err := e.Select(p, piece)
	if err != nil {
		t.Fatalf("Select(%d, %d): %v", p, piece, err)
	}
	return res
}

func TestFreshGame(t *testing.T) {
	e := New(dice.Scripted(1))
	if e.Turn() != 0 || e.State() != StateAwaitingRoll || e.Dice() != 0 {
		t.Fatalf("unexpected initial state: %+v", e.Snapshot())
	}
	if e.Positions() != InitialPositions() {
		t.Fatalf("pieces not in base: %v", e.Positions())
	}
}

func TestRollSixBringsPieceOut(t *testing.T) {
	e := New(dice.Scripted(6))

	roll := mustRoll(t, e)
	if !slices.Equal(roll.Eligible, []int{0, 1, 2, 3}) {
		t.Fatalf("eligible = %v, want all four", roll.Eligible)
	}
	if e.State() != StateAwaitingMove {
		t.Fatalf("state = %v, want awaiting move", e.State())
	}

	mv := mustSelect(t, e, 0, 0)
	if mv.To != board.StartCell(0) || e.Position(0, 0) != board.StartCell(0) {
		t.Errorf("piece at %d, want start cell %d", e.Position(0, 0), board.StartCell(0))
	}
	if !mv.ExtraTurn || e.Turn() != 0 || e.State() != StateAwaitingRoll {
		t.Errorf("want extra roll for player 0, got turn %d state %v", e.Turn(), e.State())
	}
}

func TestRollWithoutLegalMovePassesTurn(t *testing.T) {
	e := New(dice.Scripted(3))

	roll := mustRoll(t, e)
	if !roll.Passed || len(roll.Eligible) != 0 {
		t.Fatalf("roll = %+v, want passed with no eligible pieces", roll)
	}
	if e.Turn() != 1 || e.State() != StateAwaitingRoll {
		t.Errorf("turn %d state %v, want player 1 awaiting roll", e.Turn(), e.State())
	}
	if _, err := e.Select(0, 0); !errors.Is(err, ErrWrongState) {
		t.Errorf("Select after pass: got %v, want ErrWrongState", err)
	}
}

func TestTurnCyclesThroughAllPlayers(t *testing.T) {
	e := New(dice.Scripted(2))
	for i := 1; i <= 8; i++ {
		mustRoll(t, e)
		if want := board.Player(i % 4); e.Turn() != want {
			t.Fatalf("after %d passes turn = %d, want %d", i, e.Turn(), want)
		}
	}
}

func TestCaptureSendsOpponentHome(t *testing.T) {
	ps := InitialPositions()
	ps[0][0] = 5
	ps[1][2] = 2
	e := NewFromPositions(dice.Scripted(3), ps, 1)

	roll := mustRoll(t, e)
	if !slices.Equal(roll.Eligible, []int{2}) {
		t.Fatalf("eligible = %v, want [2]", roll.Eligible)
	}
	mv := mustSelect(t, e, 1, 2)

	if e.Position(1, 2) != 5 {
		t.Errorf("mover at %d, want 5", e.Position(1, 2))
	}
	if got := e.Position(0, 0); got != board.BaseSlots(0)[0] {
		t.Errorf("captured piece at %d, want base slot %d", got, board.BaseSlots(0)[0])
	}
	want := []Capture{{Player: 0, Piece: 0, From: 5, To: 500}}
	if !slices.Equal(mv.Captured, want) {
		t.Errorf("captured = %+v, want %+v", mv.Captured, want)
	}
	if !mv.ExtraTurn || e.Turn() != 1 || e.State() != StateAwaitingRoll {
		t.Errorf("capture should grant player 1 another roll, got turn %d state %v", e.Turn(), e.State())
	}
}

func TestNoCaptureOnSafeCell(t *testing.T) {
	ps := InitialPositions()
	ps[0][1] = 8
	ps[1][0] = 5
	e := NewFromPositions(dice.Scripted(3), ps, 1)

	mustRoll(t, e)
	mv := mustSelect(t, e, 1, 0)

	if len(mv.Captured) != 0 {
		t.Errorf("captured on safe cell: %+v", mv.Captured)
	}
	if e.Position(0, 1) != 8 || e.Position(1, 0) != 8 {
		t.Errorf("both pieces should share cell 8, got %d and %d", e.Position(0, 1), e.Position(1, 0))
	}
	if e.Turn() != 2 {
		t.Errorf("turn = %d, want 2", e.Turn())
	}
}

func TestMultipleCapturesGrantOneExtraTurn(t *testing.T) {
	ps := InitialPositions()
	ps[0][3] = 27
	ps[2][0] = 30
	ps[2][1] = 30
	ps[3][2] = 30
	e := NewFromPositions(dice.Scripted(3, 2), ps, 0)

	mustRoll(t, e)
	mv := mustSelect(t, e, 0, 3)
	if len(mv.Captured) != 3 {
		t.Fatalf("captured %d pieces, want 3", len(mv.Captured))
	}
	for _, c := range mv.Captured {
		if got := e.Position(c.Player, c.Piece); got != board.BaseSlots(c.Player)[c.Piece] {
			t.Errorf("%v piece %d at %d, want its base slot", c.Player, c.Piece, got)
		}
	}
	if e.Turn() != 0 {
		t.Fatalf("turn = %d, want 0", e.Turn())
	}

	// the extra roll is a normal one: a 2 moves the piece and passes the turn
	mustRoll(t, e)
	mustSelect(t, e, 0, 3)
	if e.Turn() != 1 {
		t.Errorf("turn = %d, want 1", e.Turn())
	}
}

func TestOwnPiecesAreNotCaptured(t *testing.T) {
	ps := InitialPositions()
	ps[0][0] = 10
	ps[0][1] = 12
	e := NewFromPositions(dice.Scripted(2), ps, 0)

	mustRoll(t, e)
	mv := mustSelect(t, e, 0, 0)
	if len(mv.Captured) != 0 || e.Position(0, 1) != 12 {
		t.Errorf("own piece disturbed: %+v", mv)
	}
}

func TestSixOnRingGrantsExtraTurn(t *testing.T) {
	ps := InitialPositions()
	ps[0][0] = 10
	e := NewFromPositions(dice.Scripted(6), ps, 0)

	roll := mustRoll(t, e)
	if !slices.Equal(roll.Eligible, []int{0, 1, 2, 3}) {
		t.Fatalf("eligible = %v", roll.Eligible)
	}
	mv := mustSelect(t, e, 0, 0)
	if mv.To != 16 || len(mv.Steps) != 6 {
		t.Errorf("moved to %d in %d steps, want 16 in 6", mv.To, len(mv.Steps))
	}
	if e.Turn() != 0 || e.State() != StateAwaitingRoll {
		t.Errorf("turn %d state %v, want player 0 awaiting roll", e.Turn(), e.State())
	}
}

func TestWinIsAnnouncedAndPlayContinues(t *testing.T) {
	ps := InitialPositions()
	ps[0] = [4]board.Position{105, 105, 105, 103}
	rec := &recorder{}
	e := NewFromPositions(dice.Scripted(2, 4), ps, 0, WithListener(rec))

	mustRoll(t, e)
	mv := mustSelect(t, e, 0, 3)
	if !mv.ReachedHome || !mv.Won {
		t.Fatalf("move = %+v, want reached home and won", mv)
	}
	if !e.HasPlayerWon(0) || !slices.Equal(e.Winners(), []board.Player{0}) {
		t.Errorf("winners = %v, want [0]", e.Winners())
	}
	if !slices.Contains(rec.kinds(), EventPlayerWon) {
		t.Errorf("no won event in %v", rec.kinds())
	}
	if e.Turn() != 1 {
		t.Errorf("turn = %d, want 1", e.Turn())
	}
	if _, err := e.Roll(); err != nil {
		t.Errorf("play should continue after a win: %v", err)
	}
}

func TestWinnerTurnsAutoPass(t *testing.T) {
	ps := InitialPositions()
	ps[0] = [4]board.Position{105, 105, 105, 105}
	e := NewFromPositions(dice.Scripted(6), ps, 0)

	roll := mustRoll(t, e)
	if !roll.Passed || e.Turn() != 1 {
		t.Errorf("finished player should pass: %+v", roll)
	}
}

func TestLockOnWin(t *testing.T) {
	ps := InitialPositions()
	ps[2] = [4]board.Position{305, 305, 304, 305}
	e := NewFromPositions(dice.Scripted(1), ps, 2, WithLockOnWin(true))

	mustRoll(t, e)
	mustSelect(t, e, 2, 2)
	if _, err := e.Roll(); !errors.Is(err, ErrGameLocked) {
		t.Errorf("Roll after win: got %v, want ErrGameLocked", err)
	}
	if !e.Snapshot().Locked {
		t.Error("snapshot should report locked")
	}

	e.Reset()
	if _, err := e.Roll(); err != nil {
		t.Errorf("Roll after reset: %v", err)
	}
}

func TestInvalidRequestsChangeNothing(t *testing.T) {
	ps := InitialPositions()
	ps[0][0] = 10
	e := NewFromPositions(dice.Scripted(3), ps, 0)

	if _, err := e.Select(0, 0); !errors.Is(err, ErrWrongState) {
		t.Errorf("select before roll: got %v", err)
	}
	mustRoll(t, e)
	before := e.Snapshot()

	tests := []struct {
		name   string
		player board.Player
		piece  int
		want   error
	}{
		{"other player", 1, 0, ErrNotYourTurn},
		{"piece in base", 0, 1, ErrNotEligible},
		{"negative piece", 0, -1, ErrInvalidPiece},
		{"piece too large", 0, 4, ErrInvalidPiece},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.Select(tt.player, tt.piece); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := e.Roll(); !errors.Is(err, ErrWrongState) {
		t.Errorf("second roll: got %v, want ErrWrongState", err)
	}

	after := e.Snapshot()
	if after.Positions != before.Positions || after.Turn != before.Turn || after.State != before.State {
		t.Errorf("state changed: before %+v after %+v", before, after)
	}
}

func TestMoveEventsAreOrderedSteps(t *testing.T) {
	ps := InitialPositions()
	ps[0][0] = 49
	rec := &recorder{}
	e := NewFromPositions(dice.Scripted(3), ps, 0, WithListener(rec))

	mustRoll(t, e)
	want := []EventKind{EventDiceValueChanged, EventStateChanged}
	if !slices.Equal(rec.kinds(), want) {
		t.Fatalf("roll events = %v, want %v", rec.kinds(), want)
	}
	if got := rec.events[1].Eligible; !slices.Equal(got, []int{0}) {
		t.Errorf("state event eligible = %v", got)
	}

	rec.events = nil
	mustSelect(t, e, 0, 0)
	want = []EventKind{
		EventPiecePositionChanged, EventPiecePositionChanged, EventPiecePositionChanged,
		EventTurnChanged, EventStateChanged,
	}
	if !slices.Equal(rec.kinds(), want) {
		t.Fatalf("move events = %v, want %v", rec.kinds(), want)
	}
	cells := []board.Position{50, 100, 101}
	for i, c := range cells {
		ev := rec.events[i]
		if ev.Position != c || ev.Step != i+1 {
			t.Errorf("step %d: got cell %d step %d, want cell %d", i+1, ev.Position, ev.Step, c)
		}
	}
	if rec.events[3].Player != 1 {
		t.Errorf("turn event for %d, want 1", rec.events[3].Player)
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	rec := &recorder{}
	e := New(dice.Scripted(6, 4), WithListener(rec))

	mustRoll(t, e)
	mustSelect(t, e, 0, 2)
	mustRoll(t, e)
	mustSelect(t, e, 0, 2)

	rec.events = nil
	e.Reset()
	snap := e.Snapshot()
	if snap.Positions != InitialPositions() || snap.Turn != 0 || snap.State != StateAwaitingRoll || snap.Dice != 0 {
		t.Errorf("reset left %+v", snap)
	}
	if len(rec.events) == 0 || rec.events[0].Kind != EventGameReset {
		t.Fatalf("reset events = %v", rec.kinds())
	}
	positions := 0
	for _, ev := range rec.events {
		if ev.Kind == EventPiecePositionChanged {
			positions++
		}
	}
	if positions != board.NumPlayers*board.PiecesPerPlayer {
		t.Errorf("reset emitted %d position events, want 16", positions)
	}
}

func TestResetDuringAwaitingMove(t *testing.T) {
	e := New(dice.Scripted(6))
	mustRoll(t, e)
	e.Reset()
	if e.State() != StateAwaitingRoll || len(e.Eligible()) != 0 {
		t.Errorf("reset did not clear pending move: %+v", e.Snapshot())
	}
}

func TestListenerMayReadState(t *testing.T) {
	var e *Engine
	var turns []board.Player
	e = New(dice.Scripted(1), WithListener(ListenerFunc(func(ev Event) {
		if ev.Kind == EventTurnChanged {
			turns = append(turns, e.Turn())
		}
	})))
	mustRoll(t, e)
	if !slices.Equal(turns, []board.Player{1}) {
		t.Errorf("turns seen = %v, want [1]", turns)
	}
}

func TestNewFromPositionsRejectsForeignCells(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	ps := InitialPositions()
	ps[0][0] = 200
	NewFromPositions(dice.Scripted(1), ps, 0)
}
