package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = ttl
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) AccessSessionKey(accessID string) string {
	return fmt.Sprintf("sess:%s", accessID)
}

func newTestManager(store *mockStore) *Manager {
	return &Manager{store: store, keyer: store, ttl: time.Hour}
}

func TestManagerOpenAndRevoke(t *testing.T) {
	store := newMockStore()
	manager := newTestManager(store)
	ctx := context.Background()

	if err := manager.Open(ctx, "access-123", "user-1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.ttls["sess:access-123"] != time.Hour {
		t.Fatalf("expected session ttl to be applied")
	}

	ok, err := manager.HasSession(ctx, "access-123")
	if err != nil || !ok {
		t.Fatalf("expected live session, ok=%v err=%v", ok, err)
	}

	belongs, err := manager.Belongs(ctx, "access-123", "user-1")
	if err != nil || !belongs {
		t.Fatalf("expected session to belong to user-1, ok=%v err=%v", belongs, err)
	}
	belongs, err = manager.Belongs(ctx, "access-123", "user-2")
	if err != nil || belongs {
		t.Fatalf("session must not belong to user-2, ok=%v err=%v", belongs, err)
	}

	if err := manager.Revoke(ctx, "access-123"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	ok, err = manager.HasSession(ctx, "access-123")
	if err != nil || ok {
		t.Fatalf("expected revoked session, ok=%v err=%v", ok, err)
	}
	if _, err := manager.Owner(ctx, "access-123"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestManagerValidatesInput(t *testing.T) {
	manager := newTestManager(newMockStore())
	ctx := context.Background()

	if err := manager.Open(ctx, "", "user"); err == nil {
		t.Fatal("expected empty access id to fail")
	}
	if err := manager.Open(ctx, "access", " "); err == nil {
		t.Fatal("expected empty user id to fail")
	}
	if _, err := manager.HasSession(ctx, ""); err == nil {
		t.Fatal("expected empty access id to fail")
	}
	if err := manager.Revoke(ctx, ""); err == nil {
		t.Fatal("expected empty access id to fail")
	}
}

func TestManagerPropagatesStoreErrors(t *testing.T) {
	store := newMockStore()
	store.err = errors.New("redis down")
	manager := newTestManager(store)

	if _, err := manager.HasSession(context.Background(), "access"); err == nil {
		t.Fatal("expected store error to propagate")
	}
}

func TestNewAccessIDIsUnique(t *testing.T) {
	if NewAccessID() == NewAccessID() {
		t.Fatal("expected unique access ids")
	}
}
