package web

import (
	"context"
	"sync"
	"testing"
	"time"

	"curtain-pos/internal/app"
	"curtain-pos/internal/core"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_ExpiredSessionsDropped(t *testing.T) {
	s := newSessionStore(time.Hour)
	// A session never touched reads as last used at the zero time.
	s.put(&app.Session{ID: "stale"})

	_, ok := s.get("stale")
	assert.False(t, ok)
	assert.Equal(t, 0, s.len())
}

func TestSessionStore_Purge(t *testing.T) {
	s := newSessionStore(0)
	assert.Equal(t, defaultSessionTTL, s.ttl)

	s.put(&app.Session{ID: "a"})
	s.put(&app.Session{ID: "b"})
	s.purge()
	assert.Equal(t, 0, s.len())

	s.delete("missing")
}

// slowBackend holds every quick sale until release is closed.
type slowBackend struct {
	app.Backend
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *slowBackend) ListStock(context.Context, core.Category) ([]core.StockItem, error) {
	return []core.StockItem{{ID: "s1", Name: "Velvet Red", Category: core.CategoryCurtain, Quantity: 10,
		Cost: decimal.NewFromInt(900), SellPrice: decimal.NewFromInt(1500)}}, nil
}

func (b *slowBackend) QuickSell(context.Context, *core.QuickSellRequest) (*core.QuickSellResult, error) {
	b.once.Do(func() { close(b.entered) })
	<-b.release
	return &core.QuickSellResult{Bill: core.Bill{BillNo: "B-1"}}, nil
}

func TestSessionStore_LookupsDoNotWaitOnSubmit(t *testing.T) {
	ctx := context.Background()
	b := &slowBackend{entered: make(chan struct{}), release: make(chan struct{})}
	svc := app.NewAppService(b, nil, zerolog.Nop(), app.Options{})

	busy, err := svc.NewSession(ctx, app.ModeQuickSell)
	require.NoError(t, err)
	idle, err := svc.NewSession(ctx, app.ModeQuickSell)
	require.NoError(t, err)
	busy.AddRow(core.CategoryCurtain)
	require.NoError(t, busy.SelectItem(core.CategoryCurtain, 0, "Velvet Red"))
	busy.SetPayment("1500")

	store := newSessionStore(time.Hour)
	store.put(busy)
	store.put(idle)

	submitted := make(chan error, 1)
	go func() {
		_, err := svc.SubmitQuickSell(ctx, busy)
		submitted <- err
	}()
	<-b.entered

	found := make(chan bool, 1)
	go func() {
		_, okBusy := store.get(busy.ID)
		_, okIdle := store.get(idle.ID)
		store.purge()
		found <- okBusy && okIdle
	}()

	select {
	case ok := <-found:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Error("session lookups waited on an in-flight submit")
	}

	close(b.release)
	require.NoError(t, <-submitted)
}
