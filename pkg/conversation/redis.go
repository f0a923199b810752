package conversation

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	contextPkg "HotelGolang/pkg/context"
)

const (
	keyPrefix         = "chatbot:session:"
	defaultMaxRetries = 5
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

// RedisStore keeps one JSON document per session. Updates run inside a
// WATCH transaction so concurrent writers to the same session retry instead
// of overwriting each other.
type RedisStore struct {
	policy
	client     redis.UniversalClient
	maxRetries int
	log        *logrus.Logger
}

func NewRedisStore(client redis.UniversalClient, log *logrus.Logger, options ...Option) *RedisStore {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RedisStore{
		policy:     newPolicy(options...),
		client:     client,
		maxRetries: defaultMaxRetries,
		log:        log,
	}
}

func (s *RedisStore) Update(ctx context.Context, turn Turn) (ConversationContext, error) {
	if turn.SessionID == "" {
		return ConversationContext{}, ErrEmptySessionID
	}

	requestID := contextPkg.GetRequestID(ctx)
	key := sessionKey(turn.SessionID)

	var result ConversationContext
	txf := func(tx *redis.Tx) error {
		prev, err := s.load(ctx, tx, key)
		if err != nil && !errors.Is(err, ErrSessionNotFound) {
			return err
		}

		result = s.apply(prev, turn, s.now())
		payload, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("encode session %s: %w", turn.SessionID, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": turn.SessionID,
				"error":      err.Error(),
			}).Error("Failed to update conversation session")
			return ConversationContext{}, err
		}

		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": turn.SessionID,
			"attempt":    attempt,
		}).Debug("Conversation session changed during update, retrying")
	}

	return ConversationContext{}, fmt.Errorf("%w: session %s", ErrUpdateConflict, turn.SessionID)
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (ConversationContext, error) {
	c, err := s.load(ctx, s.client, sessionKey(sessionID))
	if err != nil {
		return ConversationContext{}, err
	}
	if c.Expired(s.now(), s.ttl) {
		return ConversationContext{}, ErrSessionNotFound
	}
	return *c, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to delete conversation session")
		return err
	}
	return nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisStore) load(ctx context.Context, r getter, key string) (*ConversationContext, error) {
	raw, err := r.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var c ConversationContext
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &c, nil
}
