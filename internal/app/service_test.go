package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jaminalder/timetravel-tic-tac-toe/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimal renderer for tests: encode the current step as bytes
func testRenderer(gs GameState) []byte { return []byte(fmt.Sprintf("step=%d", gs.Game.Step())) }

func newTestService(cfg Config) *Service {
	return NewServiceWithRenderer(nil, cfg, testRenderer)
}

func TestCreateAndGet(t *testing.T) {
	s := newTestService(Config{})
	gs, err := s.CreateGame()
	require.NoError(t, err)

	require.NotEmpty(t, gs.ID)
	assert.Equal(t, domain.X, gs.Game.Next())
	assert.False(t, gs.Created.IsZero())
	assert.False(t, gs.Updated.IsZero())

	got, ok := s.Get(gs.ID)
	require.True(t, ok)
	assert.Equal(t, gs.ID, got.ID)
}

func TestGetUnknown(t *testing.T) {
	s := newTestService(Config{})

	_, ok := s.Get("not-a-uuid")
	assert.False(t, ok)
	_, ok = s.Get("0b9a4c2e-2f0a-4a57-8d7b-0f1f2ee0d5c1")
	assert.False(t, ok)
}

func TestClickAppliesMove(t *testing.T) {
	s := newTestService(Config{})
	gs, _ := s.CreateGame()

	st, err := s.Click(gs.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, domain.X, st.Game.Current().Board[4])
	assert.Equal(t, domain.O, st.Game.Next())

	latest, _ := s.Get(gs.ID)
	assert.Equal(t, 1, latest.Game.Step())
}

func TestClickRejectedLeavesStateUnchanged(t *testing.T) {
	s := newTestService(Config{})
	gs, _ := s.CreateGame()
	_, err := s.Click(gs.ID, 4)
	require.NoError(t, err)
	before, _ := s.Get(gs.ID)

	st, err := s.Click(gs.ID, 4)

	require.ErrorIs(t, err, domain.ErrOccupied)
	require.NotNil(t, st)
	assert.Equal(t, before.Game, st.Game)
	assert.Equal(t, before.Updated, st.Updated)

	_, err = s.Click(gs.ID, 12)
	require.ErrorIs(t, err, domain.ErrOutOfBounds)
}

func TestClickUnknownGame(t *testing.T) {
	s := newTestService(Config{})

	st, err := s.Click("0b9a4c2e-2f0a-4a57-8d7b-0f1f2ee0d5c1", 0)

	require.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, st)
}

func TestJumpToAndBranch(t *testing.T) {
	s := newTestService(Config{})
	gs, _ := s.CreateGame()
	for _, c := range []int{0, 1, 2} {
		_, err := s.Click(gs.ID, c)
		require.NoError(t, err)
	}

	st, err := s.JumpTo(gs.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Game.Step())
	assert.Equal(t, 4, st.Game.History().Len())

	st, err = s.Click(gs.ID, 8)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Game.History().Len())

	_, err = s.JumpTo(gs.ID, 3)
	require.ErrorIs(t, err, domain.ErrStepOutOfRange)
}

func TestHighlightConfig(t *testing.T) {
	s := newTestService(Config{Highlight: true})
	gs, _ := s.CreateGame()
	var st *GameState
	for _, c := range []int{0, 3, 1, 4, 2} {
		var err error
		st, err = s.Click(gs.ID, c)
		require.NoError(t, err)
	}

	assert.Equal(t, [9]bool{true, true, true}, st.Game.Current().Winners)
}

func TestSubscribeAndBroadcast(t *testing.T) {
	s := newTestService(Config{})
	gs, _ := s.CreateGame()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ch, unsub, err := s.Subscribe(ctx, gs.ID)
	require.NoError(t, err)
	defer unsub()

	_, err = s.Click(gs.ID, 0)
	require.NoError(t, err)

	select {
	case b, ok := <-ch:
		require.True(t, ok, "channel closed unexpectedly")
		assert.Equal(t, "step=1", string(b))
	case <-ctx.Done():
		t.Fatalf("timed out waiting for broadcast")
	}
}

func TestRejectedMoveDoesNotBroadcast(t *testing.T) {
	s := newTestService(Config{})
	gs, _ := s.CreateGame()
	ch, unsub, err := s.Subscribe(context.Background(), gs.ID)
	require.NoError(t, err)
	defer unsub()

	_, err = s.Click(gs.ID, 42)
	require.Error(t, err)

	select {
	case b := <-ch:
		t.Fatalf("unexpected broadcast %q", b)
	default:
	}
}

func TestSubscribeUnknownGame(t *testing.T) {
	s := newTestService(Config{})

	_, _, err := s.Subscribe(context.Background(), "0b9a4c2e-2f0a-4a57-8d7b-0f1f2ee0d5c1")

	require.ErrorIs(t, err, ErrNotFound)
}

func TestDropSlowSubscriber(t *testing.T) {
	s := newTestService(Config{})
	gs, _ := s.CreateGame()

	// Slow subscriber: never read
	slowCh, _, err := s.Subscribe(context.Background(), gs.ID)
	require.NoError(t, err)

	_, err = s.Click(gs.ID, 0)
	require.NoError(t, err)
	_, err = s.Click(gs.ID, 1)
	require.NoError(t, err)

	// The first payload is buffered, then the channel is closed
	b, ok := <-slowCh
	require.True(t, ok)
	assert.Equal(t, "step=1", string(b))
	_, ok = <-slowCh
	assert.False(t, ok)
}

func TestUnsubscribeOnContextCancel(t *testing.T) {
	s := newTestService(Config{})
	gs, _ := s.CreateGame()
	ctx, cancel := context.WithCancel(context.Background())
	ch, _, err := s.Subscribe(ctx, gs.ID)
	require.NoError(t, err)

	require.Equal(t, 1, s.Subscribers(gs.ID))
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
		assert.Equal(t, 0, s.Subscribers(gs.ID))
	case <-time.After(2 * time.Second):
		t.Fatalf("channel not closed after cancel")
	}
}

func TestSweepExpiresIdleSessions(t *testing.T) {
	// Given: a service with a fixed clock and a one minute TTL
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(Config{TTL: time.Minute})
	s.now = func() time.Time { return now }
	old, _ := s.CreateGame()
	ch, _, err := s.Subscribe(context.Background(), old.ID)
	require.NoError(t, err)

	now = now.Add(50 * time.Second)
	fresh, _ := s.CreateGame()

	// When: sweeping after the first session went idle
	removed := s.Sweep(now.Add(30 * time.Second))

	// Then: only the idle session is gone and its subscribers are closed
	assert.Equal(t, 1, removed)
	_, ok := s.Get(old.ID)
	assert.False(t, ok)
	_, ok = s.Get(fresh.ID)
	assert.True(t, ok)
	_, open := <-ch
	assert.False(t, open)
}

func TestSweepDisabledWithoutTTL(t *testing.T) {
	s := newTestService(Config{})
	gs, _ := s.CreateGame()

	assert.Equal(t, 0, s.Sweep(time.Now().Add(24*time.Hour)))
	_, ok := s.Get(gs.ID)
	assert.True(t, ok)
}

func TestRunJanitorStopsOnCancel(t *testing.T) {
	s := newTestService(Config{TTL: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.RunJanitor(ctx, 10*time.Millisecond)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("janitor did not stop")
	}
}
