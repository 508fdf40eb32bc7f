package selection

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// Config параметры хранилища сессий
type Config struct {
	MaxRangeDays int
	SessionTTL   time.Duration
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Store хранилище сессий выбора диапазона в памяти процесса.
// Сессии не переживают рестарт и удаляются после SessionTTL бездействия
type Store struct {
	resolver     Resolver
	cfg          Config
	metrics      Metrics
	logger       Logger
	timeProvider TimeProvider

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewStore создает новое хранилище сессий
func NewStore(resolver Resolver, cfg Config, metrics Metrics, logger Logger) *Store {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	return &Store{
		resolver:     resolver,
		cfg:          cfg,
		metrics:      metrics,
		logger:       logger,
		timeProvider: &RealTimeProvider{},
		sessions:     make(map[string]*entry),
	}
}

// Create открывает новую сессию, ограниченную пулом pool
func (s *Store) Create(pool domain.AssetPool) *Session {
	id := uuid.NewString()
	session := NewSession(id, s.resolver, pool, s.cfg.MaxRangeDays, s.metrics, s.logger)

	s.mu.Lock()
	s.sessions[id] = &entry{session: session, lastSeen: s.timeProvider.Now()}
	s.mu.Unlock()

	s.logger.Info("Create: selection session=%s opened (restricted=%t, pool=%v)", id, pool.Restricted, pool.IDs)
	return session
}

// Get возвращает сессию и продлевает её жизнь
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := s.timeProvider.Now()
	if now.Sub(e.lastSeen) > s.cfg.SessionTTL {
		delete(s.sessions, id)
		e.session.Close()
		return nil, ErrSessionNotFound
	}
	e.lastSeen = now
	return e.session, nil
}

// Delete закрывает сессию
func (s *Store) Delete(id string) {
	s.mu.Lock()
	e, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		e.session.Close()
	}
}

// Len количество открытых сессий
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep удаляет истекшие сессии и возвращает их количество
func (s *Store) Sweep() int {
	now := s.timeProvider.Now()

	s.mu.Lock()
	var expired []*Session
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.cfg.SessionTTL {
			expired = append(expired, e.session)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, session := range expired {
		session.Close()
	}
	return len(expired)
}

// Run периодически чистит истекшие сессии до отмены ctx
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info("Sweep: %d expired selection sessions removed", n)
			}
		}
	}
}
