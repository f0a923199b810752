package conversation

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultShards = 32

type entry struct {
	mu      sync.Mutex
	state   *ConversationContext
	removed bool
}

type shard struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// MemoryStore keeps sessions in process. Each session has its own lock, so
// updates to different sessions never wait on each other beyond the brief
// shard lookup.
type MemoryStore struct {
	policy
	shards []*shard
	log    *logrus.Logger
}

type MemoryOption func(*MemoryStore)

func WithShards(n int) MemoryOption {
	return func(s *MemoryStore) {
		if n > 0 {
			s.shards = make([]*shard, n)
		}
	}
}

func WithMemoryLogger(log *logrus.Logger) MemoryOption {
	return func(s *MemoryStore) {
		if log != nil {
			s.log = log
		}
	}
}

func NewMemoryStore(options []Option, memOptions ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		policy: newPolicy(options...),
		shards: make([]*shard, defaultShards),
		log:    logrus.StandardLogger(),
	}
	for _, option := range memOptions {
		option(s)
	}
	for i := range s.shards {
		s.shards[i] = &shard{entries: make(map[string]*entry)}
	}
	return s
}

func (s *MemoryStore) shardFor(sessionID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}

func (s *MemoryStore) entryFor(sessionID string) *entry {
	sh := s.shardFor(sessionID)

	sh.mu.RLock()
	e, ok := sh.entries[sessionID]
	sh.mu.RUnlock()
	if ok {
		return e
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if e, ok = sh.entries[sessionID]; !ok {
		e = &entry{}
		sh.entries[sessionID] = e
	}
	return e
}

func (s *MemoryStore) Update(ctx context.Context, turn Turn) (ConversationContext, error) {
	if turn.SessionID == "" {
		return ConversationContext{}, ErrEmptySessionID
	}

	for {
		if err := ctx.Err(); err != nil {
			return ConversationContext{}, err
		}

		e := s.entryFor(turn.SessionID)
		e.mu.Lock()
		if e.removed {
			// swept between lookup and lock, pick up the fresh entry
			e.mu.Unlock()
			continue
		}

		next := s.apply(e.state, turn, s.now())
		e.state = &next
		out := next.Clone()
		e.mu.Unlock()

		return out, nil
	}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (ConversationContext, error) {
	if err := ctx.Err(); err != nil {
		return ConversationContext{}, err
	}

	sh := s.shardFor(sessionID)
	sh.mu.RLock()
	e, ok := sh.entries[sessionID]
	sh.mu.RUnlock()
	if !ok {
		return ConversationContext{}, ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed || e.state == nil || e.state.Expired(s.now(), s.ttl) {
		return ConversationContext{}, ErrSessionNotFound
	}
	return e.state.Clone(), nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sh := s.shardFor(sessionID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.entries[sessionID]
	if !ok {
		return nil
	}
	e.mu.Lock()
	e.removed = true
	e.mu.Unlock()
	delete(sh.entries, sessionID)
	return nil
}

func (s *MemoryStore) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.entries)
		sh.mu.RUnlock()
	}
	return n
}

// PurgeExpired drops every session idle for longer than the TTL and returns
// how many were removed.
func (s *MemoryStore) PurgeExpired() int {
	now := s.now()
	purged := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for id, e := range sh.entries {
			e.mu.Lock()
			if e.state == nil || e.state.Expired(now, s.ttl) {
				e.removed = true
				delete(sh.entries, id)
				purged++
			}
			e.mu.Unlock()
		}
		sh.mu.Unlock()
	}
	return purged
}

// StartJanitor sweeps expired sessions every interval until ctx is done.
func (s *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.ttl <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.log.Info("Conversation janitor stopped")
				return
			case <-ticker.C:
				if n := s.PurgeExpired(); n > 0 {
					s.log.WithFields(logrus.Fields{
						"purged":    n,
						"remaining": s.Len(),
					}).Debug("Purged expired conversation sessions")
				}
			}
		}
	}()
}
