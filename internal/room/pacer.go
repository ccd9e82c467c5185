package room

import (
	"context"
	"time"

	"ludo/internal/game"
)

// dispatch broadcasts the events of one request. Movement steps are spaced
// by the configured interval on a background goroutine; while that runs the
// room rejects rolls and selections. Callers hold r.mu.
func (m *Manager) dispatch(r *Room, events []game.Event) {
	if m.cfg.StepInterval <= 0 || !hasSteps(events) {
		for _, ev := range events {
			m.hub.Broadcast(r.Code, string(ev.Kind), ev)
		}
		m.hub.Broadcast(r.Code, "state-updated", r.view())
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.gen++
	r.animating = true
	r.cancel = cancel
	go m.pace(ctx, r, r.gen, events)
}

func (m *Manager) pace(ctx context.Context, r *Room, gen int, events []game.Event) {
	timer := time.NewTimer(m.cfg.StepInterval)
	defer timer.Stop()

	for i, ev := range events {
		if ev.Step > 0 && i > 0 {
			timer.Reset(m.cfg.StepInterval)
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		}
		r.mu.Lock()
		if ctx.Err() != nil {
			r.mu.Unlock()
			return
		}
		m.hub.Broadcast(r.Code, string(ev.Kind), ev)
		r.mu.Unlock()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen != gen || ctx.Err() != nil {
		return
	}
	r.animating = false
	r.cancel()
	r.cancel = nil
	m.hub.Broadcast(r.Code, "state-updated", r.view())
}

// stopPacing cancels an in-flight pace goroutine. Callers hold r.mu.
func (m *Manager) stopPacing(r *Room) {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.animating = false
}

func hasSteps(events []game.Event) bool {
	for _, ev := range events {
		if ev.Step > 0 {
			return true
		}
	}
	return false
}
