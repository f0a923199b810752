package conversation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HotelGolang/pkg/nlp"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, time.October, 20, 15, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func suiteTurn(session, query string) Turn {
	bag := nlp.DefaultEntities()
	bag.RoomType = "Suite"
	bag.Explicit = []string{nlp.EntityRoomType}
	return Turn{SessionID: session, Query: query, Intent: nlp.IntentPricePrediction, Entities: bag}
}

func periodTurn(session, query, period string) Turn {
	bag := nlp.DefaultEntities()
	bag.Period = period
	bag.Explicit = []string{nlp.EntityPeriod}
	return Turn{SessionID: session, Query: query, Intent: nlp.IntentPricePrediction, Entities: bag}
}

func TestMemoryStore_MergesAcrossTurns(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore([]Option{WithClock(clock.Now)})
	ctx := context.Background()

	first, err := store.Update(ctx, suiteTurn("s1", "Show me Suite pricing"))
	require.NoError(t, err)
	assert.Equal(t, "Suite", first.Entities.RoomType)
	assert.Equal(t, nlp.DefaultPeriod, first.Entities.Period)
	assert.Equal(t, clock.Now(), first.StartedAt)

	clock.Advance(time.Minute)
	second, err := store.Update(ctx, periodTurn("s1", "for next week", "next_week"))
	require.NoError(t, err)

	assert.Equal(t, "Suite", second.Entities.RoomType)
	assert.Equal(t, "next_week", second.Entities.Period)
	assert.ElementsMatch(t, []string{nlp.EntityRoomType, nlp.EntityPeriod}, second.Entities.Explicit)
	assert.Equal(t, []string{"Show me Suite pricing", "for next week"}, second.RecentQueries)
	assert.Equal(t, clock.Now(), second.LastInteraction)
	assert.Equal(t, first.StartedAt, second.StartedAt)
	assert.Equal(t, 2, second.Turns)

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestMemoryStore_RecentQueriesCapped(t *testing.T) {
	store := NewMemoryStore([]Option{WithMaxRecentQueries(5)})
	ctx := context.Background()

	var last ConversationContext
	for i := 1; i <= 7; i++ {
		var err error
		last, err = store.Update(ctx, Turn{SessionID: "s1", Query: fmt.Sprintf("q%d", i), Intent: nlp.IntentGeneralInquiry})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"q3", "q4", "q5", "q6", "q7"}, last.RecentQueries)
	assert.Equal(t, 7, last.Turns)
}

func TestMemoryStore_ReturnedContextIsDetached(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()

	out, err := store.Update(ctx, suiteTurn("s1", "suite price"))
	require.NoError(t, err)
	out.RecentQueries[0] = "mutated"
	out.Entities.RoomType = "Deluxe"

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "suite price", got.RecentQueries[0])
	assert.Equal(t, "Suite", got.Entities.RoomType)
}

func TestMemoryStore_TTL(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore([]Option{WithClock(clock.Now), WithTTL(30 * time.Minute)})
	ctx := context.Background()

	_, err := store.Update(ctx, suiteTurn("s1", "suite price"))
	require.NoError(t, err)

	clock.Advance(29 * time.Minute)
	_, err = store.Get(ctx, "s1")
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// an expired session starts over
	fresh, err := store.Update(ctx, periodTurn("s1", "next week", "next_week"))
	require.NoError(t, err)
	assert.Equal(t, nlp.DefaultRoomType, fresh.Entities.RoomType)
	assert.Equal(t, []string{"next week"}, fresh.RecentQueries)
	assert.Equal(t, 1, fresh.Turns)
}

func TestMemoryStore_PurgeExpired(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore([]Option{WithClock(clock.Now), WithTTL(10 * time.Minute)}, WithShards(4))
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := store.Update(ctx, Turn{SessionID: fmt.Sprintf("old-%d", i), Query: "hello"})
		require.NoError(t, err)
	}
	clock.Advance(11 * time.Minute)
	_, err := store.Update(ctx, Turn{SessionID: "fresh", Query: "hello"})
	require.NoError(t, err)

	assert.Equal(t, 7, store.Len())
	assert.Equal(t, 6, store.PurgeExpired())
	assert.Equal(t, 1, store.Len())

	_, err = store.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestMemoryStore_JanitorStopsWithContext(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore([]Option{WithClock(clock.Now), WithTTL(time.Minute)})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := store.Update(ctx, Turn{SessionID: "s1", Query: "hello"})
	require.NoError(t, err)
	clock.Advance(2 * time.Minute)

	store.StartJanitor(ctx, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()

	_, err := store.Update(ctx, suiteTurn("s1", "suite price"))
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, "s1"))
	require.NoError(t, store.Delete(ctx, "missing"))

	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_EmptySession(t *testing.T) {
	store := NewMemoryStore(nil)

	_, err := store.Update(context.Background(), Turn{Query: "hello"})
	assert.ErrorIs(t, err, ErrEmptySessionID)
}

func TestMemoryStore_ConcurrentSessions(t *testing.T) {
	store := NewMemoryStore([]Option{WithMaxRecentQueries(1000)}, WithShards(8))
	ctx := context.Background()

	const sessions = 16
	const perSession = 50

	var wg sync.WaitGroup
	for s := 0; s < sessions; s++ {
		for w := 0; w < 4; w++ {
			wg.Add(1)
			go func(s, w int) {
				defer wg.Done()
				for i := 0; i < perSession; i++ {
					_, err := store.Update(ctx, Turn{
						SessionID: fmt.Sprintf("session-%d", s),
						Query:     fmt.Sprintf("w%d-%d", w, i),
						Intent:    nlp.IntentGeneralInquiry,
					})
					assert.NoError(t, err)
				}
			}(s, w)
		}
	}
	wg.Wait()

	for s := 0; s < sessions; s++ {
		got, err := store.Get(ctx, fmt.Sprintf("session-%d", s))
		require.NoError(t, err)
		assert.Equal(t, 4*perSession, got.Turns)
		assert.Len(t, got.RecentQueries, 4*perSession)
	}
}

func TestMemoryStore_PerSessionOrder(t *testing.T) {
	store := NewMemoryStore([]Option{WithMaxRecentQueries(100)})
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		_, err := store.Update(ctx, Turn{SessionID: "ordered", Query: fmt.Sprintf("%02d", i)})
		require.NoError(t, err)
	}

	got, err := store.Get(ctx, "ordered")
	require.NoError(t, err)
	for i, q := range got.RecentQueries {
		assert.Equal(t, fmt.Sprintf("%02d", i), q)
	}
}
