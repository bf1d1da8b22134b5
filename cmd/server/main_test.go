package main

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/evyataryagoni/countryselect/internal/logger"
	"github.com/evyataryagoni/countryselect/internal/store"
)

// refreshStore counts Refresh calls on top of a mock store
type refreshStore struct {
	*store.MockStore
	refreshed chan struct{}
	err       error
}

func (s *refreshStore) Refresh() error {
	s.refreshed <- struct{}{}
	return s.err
}

// TestWatchRefresh tests that each signal refreshes the store chain
func TestWatchRefresh(t *testing.T) {
	backend := &refreshStore{MockStore: store.NewMockStore(), refreshed: make(chan struct{}, 4)}
	chain := store.NewFallbackStore(store.NewCachedStore(backend, time.Minute), "en-US")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 2)
	done := make(chan struct{})
	go func() {
		watchRefresh(ctx, signals, chain, logger.NewNop())
		close(done)
	}()

	for i := 0; i < 2; i++ {
		signals <- syscall.SIGHUP
		select {
		case <-backend.refreshed:
		case <-time.After(time.Second):
			t.Fatalf("signal %d did not refresh the backing store", i+1)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watchRefresh did not stop after cancel")
	}
}

// TestWatchRefresh_ErrorKeepsWatching tests that a failed refresh is not fatal
func TestWatchRefresh_ErrorKeepsWatching(t *testing.T) {
	backend := &refreshStore{
		MockStore: store.NewMockStore(),
		refreshed: make(chan struct{}, 4),
		err:       errors.New("locale directory unreadable"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 2)
	go watchRefresh(ctx, signals, backend, logger.NewNop())

	for i := 0; i < 2; i++ {
		signals <- syscall.SIGHUP
		select {
		case <-backend.refreshed:
		case <-time.After(time.Second):
			t.Fatalf("signal %d was not handled", i+1)
		}
	}
}
