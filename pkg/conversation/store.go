package conversation

import (
	"context"
	"errors"
	"time"

	"HotelGolang/pkg/nlp"
)

const (
	DefaultTTL              = 30 * time.Minute
	DefaultMaxRecentQueries = 5
)

var (
	ErrSessionNotFound = errors.New("conversation session not found")
	ErrEmptySessionID  = errors.New("session id is required")
	ErrUpdateConflict  = errors.New("conversation update kept conflicting with concurrent writers")
)

// Turn is one processed query as it is recorded against a session.
type Turn struct {
	SessionID  string
	CustomerID string
	Query      string
	Intent     nlp.Intent
	Entities   nlp.EntityBag
}

type ConversationContext struct {
	SessionID       string        `json:"sessionId"`
	CustomerID      string        `json:"customerId,omitempty"`
	RecentQueries   []string      `json:"recentQueries"`
	Entities        nlp.EntityBag `json:"extractedEntities"`
	LastIntent      nlp.Intent    `json:"lastIntent"`
	LastInteraction time.Time     `json:"lastInteractionTimestamp"`
	StartedAt       time.Time     `json:"startedAt"`
	Turns           int           `json:"turns"`
}

func (c ConversationContext) Clone() ConversationContext {
	out := c
	out.RecentQueries = append([]string{}, c.RecentQueries...)
	out.Entities = c.Entities.Merge(nlp.EntityBag{})
	return out
}

// Expired reports whether the session has been idle for longer than ttl.
// A non-positive ttl never expires.
func (c ConversationContext) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(c.LastInteraction) > ttl
}

type Store interface {
	// Update applies one turn to the session, creating it when unseen or
	// expired, and returns the resulting context.
	Update(ctx context.Context, turn Turn) (ConversationContext, error)
	Get(ctx context.Context, sessionID string) (ConversationContext, error)
	Delete(ctx context.Context, sessionID string) error
}

type Option func(*policy)

func WithTTL(ttl time.Duration) Option {
	return func(p *policy) {
		p.ttl = ttl
	}
}

func WithMaxRecentQueries(n int) Option {
	return func(p *policy) {
		if n > 0 {
			p.maxRecent = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *policy) {
		if now != nil {
			p.now = now
		}
	}
}

type policy struct {
	ttl       time.Duration
	maxRecent int
	now       func() time.Time
}

func newPolicy(options ...Option) policy {
	p := policy{
		ttl:       DefaultTTL,
		maxRecent: DefaultMaxRecentQueries,
		now:       time.Now,
	}
	for _, option := range options {
		option(&p)
	}
	return p
}

// apply is the read-modify-write step shared by every store. prev is nil for
// an unseen session.
func (p policy) apply(prev *ConversationContext, turn Turn, now time.Time) ConversationContext {
	var next ConversationContext
	if prev == nil || prev.Expired(now, p.ttl) {
		next = ConversationContext{
			SessionID:     turn.SessionID,
			RecentQueries: []string{},
			Entities:      nlp.DefaultEntities(),
			StartedAt:     now,
		}
	} else {
		next = prev.Clone()
	}

	if turn.CustomerID != "" {
		next.CustomerID = turn.CustomerID
	}

	next.RecentQueries = append(next.RecentQueries, turn.Query)
	if over := len(next.RecentQueries) - p.maxRecent; over > 0 {
		next.RecentQueries = append([]string{}, next.RecentQueries[over:]...)
	}

	next.Entities = next.Entities.Merge(turn.Entities)
	next.LastIntent = turn.Intent
	next.LastInteraction = now
	next.Turns++

	return next
}
