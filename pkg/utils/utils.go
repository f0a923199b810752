package utils

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	NewSessionID() string
	Now() time.Time
}

type utils struct {
	mu      sync.Mutex
	entropy io.Reader
	clock   func() time.Time
}

type Option func(*utils)

// WithClock replaces time.Now, mostly for tests.
func WithClock(clock func() time.Time) Option {
	return func(u *utils) {
		if clock != nil {
			u.clock = clock
		}
	}
}

func New(options ...Option) IUtils {
	u := &utils{
		entropy: ulid.Monotonic(rand.Reader, 0),
		clock:   time.Now,
	}
	for _, option := range options {
		option(u)
	}
	return u
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t), u.entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) NewSessionID() string {
	return uuid.NewString()
}

func (u *utils) Now() time.Time {
	return u.clock()
}
