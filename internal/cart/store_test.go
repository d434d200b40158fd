package cart

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStore_Operations(t *testing.T) {
	store := NewStore(newReducer())

	store.AddItem(line("p1", "100", 1))
	store.AddItem(line("p2", "10", 2))

	assert.Equal(t, 1, store.GetItemQuantity("p1"))
	assert.Equal(t, 2, store.GetItemQuantity("p2"))
	assert.Equal(t, 0, store.GetItemQuantity("missing"))
	assert.True(t, store.IsItemInCart("p2"))
	assert.False(t, store.IsItemInCart("missing"))

	s := store.ApplyCoupon("SAVE20", dec("24"))
	assertDecimal(t, "105.6", s.Total)

	s = store.RemoveCoupon()
	assertDecimal(t, "129.6", s.Total)

	s = store.RemoveItem("p1")
	assert.Equal(t, 2, s.TotalItems)

	s = store.ClearCart()
	assert.Empty(t, s.Items)
	assert.Equal(t, 0, store.GetItemQuantity("p2"))
}

func TestStore_OpenCloseToggle(t *testing.T) {
	store := NewStore(newReducer())

	assert.True(t, store.OpenCart().IsOpen)
	assert.False(t, store.CloseCart().IsOpen)
	assert.True(t, store.ToggleCart().IsOpen)
	assert.False(t, store.ToggleCart().IsOpen)
}

func TestStore_StateIsACopy(t *testing.T) {
	store := NewStore(newReducer())
	store.AddItem(line("p1", "1", 1))

	snapshot := store.State()
	snapshot.Items[0].Quantity = 42

	assert.Equal(t, 1, store.GetItemQuantity("p1"))
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	store := NewStore(newReducer())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.AddItem(line("p1", "2", 1))
			store.ToggleCart()
		}()
	}
	wg.Wait()

	s := store.State()
	assert.Equal(t, 50, s.TotalItems)
	assertDecimal(t, "100", s.Subtotal)
	assert.False(t, s.IsOpen, "an even number of toggles leaves the cart closed")
}

func TestFromContext_MissingStore(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoStore)

	assert.PanicsWithError(t, ErrNoStore.Error(), func() {
		MustFromContext(context.Background())
	})
}

func TestFromContext_ProvisionedStore(t *testing.T) {
	store := NewStore(newReducer())
	ctx := WithStore(context.Background(), store)

	got, err := FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, store, got)
	assert.Same(t, store, MustFromContext(ctx))
}

func TestSessions_GetReturnsSameStore(t *testing.T) {
	sessions := NewSessions(newReducer(), time.Hour, zap.NewNop())

	a := sessions.Get("s1")
	b := sessions.Get("s1")
	c := sessions.Get("s2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, sessions.Len())
}

func TestSessions_SweepEvictsIdle(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	sessions := NewSessions(newReducer(), 30*time.Minute, zap.NewNop())
	sessions.now = func() time.Time { return now }

	sessions.Get("old").AddItem(line("p1", "1", 1))
	now = now.Add(20 * time.Minute)
	sessions.Get("fresh")
	now = now.Add(15 * time.Minute)

	removed := sessions.Sweep()

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, sessions.Len())
	assert.Equal(t, 0, sessions.Get("old").GetItemQuantity("p1"), "evicted cart starts empty")
}

func TestSessions_RunStopsOnCancel(t *testing.T) {
	sessions := NewSessions(newReducer(), time.Nanosecond, zap.NewNop())
	for i := 0; i < 3; i++ {
		sessions.Get(fmt.Sprintf("s%d", i))
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sessions.Run(ctx, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return sessions.Len() == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
