package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jaminalder/timetravel-tic-tac-toe/internal/domain"
)

// Errors exposed by the service layer.
var (
	ErrNotFound = errors.New("game not found")
)

// GameState is the in-memory state tracked per game session.
type GameState struct {
	ID      string
	Game    domain.Game
	Created time.Time
	Updated time.Time
}

// Config controls how sessions are created and expired.
type Config struct {
	// Highlight records winning lines on every snapshot.
	Highlight bool
	// TTL is how long an untouched session is kept. Zero keeps sessions forever.
	TTL time.Duration
}

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service owns every game session. All mutations of a session go through the
// service mutex, so a session only ever has one writer at a time.
type Service struct {
	mu     sync.Mutex
	games  map[string]*GameState
	subs   map[string]map[*subscriber]struct{}
	render func(GameState) []byte
	cfg    Config
	log    *log.Logger
	now    func() time.Time
}

// NewService creates a service with a default renderer (encodes nothing useful).
func NewService(logger *log.Logger, cfg Config) *Service {
	return NewServiceWithRenderer(logger, cfg, nil)
}

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(logger *log.Logger, cfg Config, renderer func(GameState) []byte) *Service {
	if renderer == nil {
		renderer = func(gs GameState) []byte { return nil }
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		games:  make(map[string]*GameState),
		subs:   make(map[string]map[*subscriber]struct{}),
		render: renderer,
		cfg:    cfg,
		log:    logger.WithPrefix("service"),
		now:    time.Now,
	}
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = func(gs GameState) []byte { return nil }
		return
	}
	s.render = renderer
}

// CreateGame creates and registers a new game.
func (s *Service) CreateGame() (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := newSessionID()
	now := s.now()
	gs := &GameState{
		ID:      id,
		Game:    domain.New(domain.WithHighlight(s.cfg.Highlight)),
		Created: now,
		Updated: now,
	}
	s.games[id] = gs
	s.log.Debug("game created", "id", id)
	cp := *gs
	return &cp, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
	if !validSessionID(id) {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, false
	}
	cp := *gs
	return &cp, true
}

// Click places the next mark on cell. An illegal move returns the unchanged
// state together with the domain error.
func (s *Service) Click(id string, cell int) (*GameState, error) {
	return s.apply(id, "click", cell, func(g *domain.Game) error { return g.Play(cell) })
}

// JumpTo moves the session to a recorded step. An out of range step returns
// the unchanged state together with the domain error.
func (s *Service) JumpTo(id string, step int) (*GameState, error) {
	return s.apply(id, "jump", step, func(g *domain.Game) error { return g.JumpTo(step) })
}

// apply runs op on the session under the lock and broadcasts the result.
// Sends never block, so the fan-out runs under the lock as well.
func (s *Service) apply(id, action string, arg int, op func(*domain.Game) error) (*GameState, error) {
	if !validSessionID(id) {
		return nil, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := op(&gs.Game); err != nil {
		s.log.Debug("rejected", "id", id, "action", action, "arg", arg, "err", err)
		cp := *gs
		return &cp, err
	}
	gs.Updated = s.now()
	cp := *gs
	s.log.Debug("applied", "id", id, "action", action, "arg", arg, "step", cp.Game.Step())

	set := s.subs[id]
	if len(set) == 0 {
		return &cp, nil
	}
	payload := s.render(cp)
	dropped := 0
	for sub := range set {
		select {
		case sub.ch <- payload:
		default:
			// drop slow subscriber
			sub.close()
			delete(set, sub)
			dropped++
		}
	}
	if dropped > 0 {
		s.log.Warn("dropped slow subscribers", "id", id, "count", dropped)
	}
	return &cp, nil
}

// Subscribe registers a subscriber for a game. Returns a channel and an unsubscribe func.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
	if !validSessionID(id) {
		return nil, nil, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return nil, nil, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(s.subs, id)
				}
			}
			sub.close()
			s.mu.Unlock()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}

// Subscribers returns how many live subscribers a game has.
func (s *Service) Subscribers(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs[id])
}

// Sweep removes sessions idle for longer than the configured TTL and closes
// their subscribers. It returns the number of sessions removed.
func (s *Service) Sweep(now time.Time) int {
	if s.cfg.TTL <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, gs := range s.games {
		if now.Sub(gs.Updated) <= s.cfg.TTL {
			continue
		}
		for sub := range s.subs[id] {
			sub.close()
		}
		delete(s.subs, id)
		delete(s.games, id)
		removed++
	}
	if removed > 0 {
		s.log.Info("expired sessions", "count", removed, "remaining", len(s.games))
	}
	return removed
}

// RunJanitor calls Sweep every interval until ctx is done.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			s.Sweep(t)
		}
	}
}
