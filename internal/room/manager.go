package room

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"ludo/internal/board"
	"ludo/internal/config"
	"ludo/internal/dice"
	"ludo/internal/game"
	"ludo/internal/shared"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomFull       = errors.New("room is full")
	ErrUnknownPlayer  = errors.New("player is not seated in this room")
	ErrMoveInProgress = errors.New("a move is still in progress")
)

type Store interface {
	GetRoom(code string) (*Room, bool)
	SaveRoom(r *Room)
	DeleteRoom(code string)
}

type Manager struct {
	store Store
	cfg   config.Config
	hub   Broadcaster

	// mu guards rng and makes code allocation atomic with saving the room.
	mu  sync.Mutex
	rng *rand.Rand

	newRoller func() dice.Roller
}

func NewManager(s Store, cfg config.Config, hub Broadcaster) *Manager {
	if hub == nil {
		hub = nopBroadcaster{}
	}
	m := &Manager{
		store: s,
		cfg:   cfg,
		hub:   hub,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	m.newRoller = m.seededRoller
	return m
}

// SetHub replaces the broadcaster. The hub and the manager reference each
// other, so one of them is wired after construction.
func (m *Manager) SetHub(hub Broadcaster) {
	if hub == nil {
		hub = nopBroadcaster{}
	}
	m.hub = hub
}

// CreateRoom opens a new room and seats the creator at seat 0.
func (m *Manager) CreateRoom(creatorName string) (*Room, shared.Player) {
	r := &Room{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	opts := []game.Option{
		game.WithListener(game.ListenerFunc(r.collect)),
		game.WithLockOnWin(m.cfg.LockOnWin),
	}
	r.engine = game.New(m.newRoller(), opts...)

	seat := &Seat{ID: uuid.NewString(), Name: displayName(creatorName, 0)}
	r.seats[0] = seat

	m.mu.Lock()
	r.Code = m.newCode()
	m.store.SaveRoom(r)
	m.mu.Unlock()

	log.Printf("room %s created by %q", r.Code, seat.Name)
	return r, playerView(0, seat)
}

// JoinRoom seats a new player at the lowest free seat.
func (m *Manager) JoinRoom(code, name string) (shared.Player, error) {
	r, err := m.get(code)
	if err != nil {
		return shared.Player{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.freeSeat()
	if !ok {
		return shared.Player{}, fmt.Errorf("join %s: %w", code, ErrRoomFull)
	}
	seat := &Seat{ID: uuid.NewString(), Name: displayName(name, idx)}
	r.seats[idx] = seat
	m.store.SaveRoom(r)

	p := playerView(idx, seat)
	log.Printf("room %s: %q joined as %s (%d/%d seated)", r.Code, seat.Name, idx, r.seated(), board.NumPlayers)
	m.hub.Broadcast(r.Code, "player-joined", p)
	m.hub.Broadcast(r.Code, "state-updated", r.view())
	return p, nil
}

func (m *Manager) Get(code string) (*Room, bool) {
	return m.store.GetRoom(code)
}

func (m *Manager) get(code string) (*Room, error) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, fmt.Errorf("room %q: %w", code, ErrRoomNotFound)
	}
	return r, nil
}

// Snapshot returns the current view of a room.
func (m *Manager) Snapshot(code string) (shared.Room, error) {
	r, err := m.get(code)
	if err != nil {
		return shared.Room{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view(), nil
}

// Roll rolls the die on behalf of playerID.
func (m *Manager) Roll(code, playerID string) (game.RollResult, error) {
	r, err := m.get(code)
	if err != nil {
		return game.RollResult{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := m.actingSeat(r, playerID); err != nil {
		return game.RollResult{}, err
	}
	res, err := r.engine.Roll()
	if err != nil {
		return game.RollResult{}, err
	}
	m.dispatch(r, r.takeEvents())
	return res, nil
}

// Select moves one of the acting seat's pieces.
func (m *Manager) Select(code, playerID string, piece int) (game.MoveResult, error) {
	r, err := m.get(code)
	if err != nil {
		return game.MoveResult{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	seat, err := m.actingSeat(r, playerID)
	if err != nil {
		return game.MoveResult{}, err
	}
	res, err := r.engine.Select(seat, piece)
	if err != nil {
		return game.MoveResult{}, err
	}
	if res.Won {
		log.Printf("room %s: %s has won", r.Code, res.Player)
	}
	m.dispatch(r, r.takeEvents())
	return res, nil
}

// Reset aborts any move still being paced out and restarts the game.
// Seats are kept.
func (m *Manager) Reset(code string) (shared.Room, error) {
	r, err := m.get(code)
	if err != nil {
		return shared.Room{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	m.stopPacing(r)
	r.engine.Reset()
	m.dispatch(r, r.takeEvents())
	log.Printf("room %s reset", r.Code)
	return r.view(), nil
}

// CloseRoom stops pacing and forgets the room.
func (m *Manager) CloseRoom(code string) error {
	r, err := m.get(code)
	if err != nil {
		return err
	}
	r.mu.Lock()
	m.stopPacing(r)
	r.mu.Unlock()

	m.store.DeleteRoom(code)
	m.hub.Broadcast(code, "room-closed", nil)
	log.Printf("room %s closed", code)
	return nil
}

// actingSeat resolves which seat playerID may act for right now. Seated
// players act for their own seat, and for the seat whose turn it is when
// that seat is empty and unseated play is allowed.
func (m *Manager) actingSeat(r *Room, playerID string) (board.Player, error) {
	if r.animating {
		return 0, ErrMoveInProgress
	}
	seat, ok := r.seatOf(playerID)
	if !ok {
		return 0, ErrUnknownPlayer
	}
	turn := r.engine.Turn()
	if seat == turn {
		return seat, nil
	}
	if m.cfg.AllowUnseated && r.seats[turn] == nil {
		return turn, nil
	}
	return 0, game.ErrNotYourTurn
}

func (m *Manager) seededRoller() dice.Roller {
	if m.cfg.DiceSeed != 0 {
		return dice.New(m.cfg.DiceSeed)
	}
	seed, err := dice.NewSeed()
	if err != nil {
		log.Printf("dice seed: %v; falling back to clock", err)
		seed = time.Now().UnixNano()
	}
	return dice.New(seed)
}

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// newCode must be called with m.mu held.
func (m *Manager) newCode() string {
	n := m.cfg.RoomCodeLen
	if n <= 0 {
		n = 6
	}
	for {
		code := m.randCode(n)
		if _, taken := m.store.GetRoom(code); !taken {
			return code
		}
	}
}

func (m *Manager) randCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[m.rng.Intn(len(letters))]
	}
	return string(b)
}

func displayName(name string, seat board.Player) string {
	if name == "" {
		return fmt.Sprintf("Player %d", int(seat)+1)
	}
	return name
}
