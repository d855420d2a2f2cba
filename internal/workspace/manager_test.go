package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnzmnz10/yeter-sub001/internal/fx"
)

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	rates := fx.NewStore("TRY")
	factory := func() *Workspace {
		return New(discardLogger(), &stubSource{}, rates, newStubQuotes(), Config{PageSize: 10})
	}
	return NewManager(discardLogger(), factory, ttl)
}

func TestManagerAcquireReusesWorkspace(t *testing.T) {
	m := newTestManager(t, time.Minute)

	a := m.Acquire("token-a")
	assert.Same(t, a, m.Acquire("token-a"))
	assert.NotSame(t, a, m.Acquire("token-b"))
	assert.Equal(t, 2, m.Count())
}

func TestManagerSweepEvictsIdle(t *testing.T) {
	m := newTestManager(t, time.Minute)
	m.Acquire("token-a")
	m.Acquire("token-b")

	// Inside the TTL nothing goes.
	assert.Equal(t, 0, m.Sweep(time.Now().Add(30*time.Second)))
	assert.Equal(t, 2, m.Count())

	assert.Equal(t, 2, m.Sweep(time.Now().Add(2*time.Minute)))
	assert.Equal(t, 0, m.Count())
}

func TestManagerAcquireRenewsTTL(t *testing.T) {
	m := newTestManager(t, time.Minute)
	a := m.Acquire("token-a")

	m.Acquire("token-a")
	assert.Equal(t, 0, m.Sweep(time.Now().Add(45*time.Second)))
	assert.Same(t, a, m.Acquire("token-a"))
}

func TestManagerDrop(t *testing.T) {
	m := newTestManager(t, time.Minute)
	m.Acquire("token-a")
	m.Drop("token-a")
	assert.Equal(t, 0, m.Count())

	// Dropping an unknown token is a no-op.
	m.Drop("token-b")
}

func TestManagerJanitorEvicts(t *testing.T) {
	m := newTestManager(t, 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Janitor(ctx, 10*time.Millisecond)

	m.Acquire("token-a")
	require.Eventually(t, func() bool {
		return m.Count() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
