package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/mines"
)

var ErrNotFound = errors.New("session not found")

// Session owns one running game. All access to the game goes through Do so
// that actions from one browser are applied strictly in order.
type Session struct {
	ID        string
	StartedAt time.Time

	mu       sync.Mutex
	game     *mines.GameState
	lastSeen time.Time
}

func (s *Session) Do(f func(g *mines.GameState)) mines.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.game)
	s.lastSeen = time.Now()
	return s.game.Snapshot()
}

func (s *Session) Snapshot() mines.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

type Store struct {
	log logrus.FieldLogger
	rnd *rand.Rand

	mu       sync.Mutex
	nextID   int64
	sessions map[string]*Session
}

func NewStore(log logrus.FieldLogger, rnd *rand.Rand) *Store {
	return &Store{
		log:      log,
		rnd:      rnd,
		sessions: make(map[string]*Session),
	}
}

func (s *Store) Create(params mines.GameParams) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// every game gets its own source so that sessions never share one
	rnd := rand.New(rand.NewPCG(s.rnd.Uint64(), s.rnd.Uint64()))
	game, err := mines.NewGame(params, rnd)
	if err != nil {
		return nil, err
	}

	s.nextID++
	now := time.Now()
	session := &Session{
		ID:        strconv.FormatInt(s.nextID, 10),
		StartedAt: now,
		game:      game,
		lastSeen:  now,
	}
	s.sessions[session.ID] = session

	s.log.WithFields(logrus.Fields{
		"session": session.ID,
		"params":  params.String(),
	}).Debug("created session")

	return session, nil
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions nobody has touched for longer than idle and returns how
// many were removed.
func (s *Store) Sweep(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, session := range s.sessions {
		if session.idleSince().Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Janitor sweeps the store every interval until ctx is done.
func (s *Store) Janitor(ctx context.Context, every, idle time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(idle); n > 0 {
				s.log.WithField("removed", n).Info("swept idle sessions")
			}
		}
	}
}
