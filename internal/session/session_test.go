package session

import (
	"adventcal/internal/cache"
	"adventcal/internal/model"
	"context"
	"errors"
	"testing"
)

func TestSaveThenLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(cache.NewMemoryKV())

	player := &model.PlayerRecord{
		ID:     "p_1",
		Name:   "Ada",
		Email:  "ada@example.com",
		Points: 1250,
		Gems:   45,
		Badges: []model.Badge{{ID: "first-day", Name: "First Steps", Rarity: model.RarityCommon}},
	}
	if err := store.Save(ctx, player); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := store.LoadSync(ctx)
	if got == nil {
		t.Fatal("expected a restored player")
	}
	if got.ID != player.ID || got.Points != 1250 || got.Gems != 45 || len(got.Badges) != 1 {
		t.Fatalf("restored player mismatch: %+v", got)
	}
}

func TestLoadSyncWithoutRecord(t *testing.T) {
	if got := NewStore(cache.NewMemoryKV()).LoadSync(context.Background()); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestLoadSyncClearsMalformedRecord(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemoryKV()
	if err := kv.Set(ctx, PlayerKey, "{not json"); err != nil {
		t.Fatal(err)
	}

	store := NewStore(kv)
	if got := store.LoadSync(ctx); got != nil {
		t.Fatalf("expected nil for malformed record, got %+v", got)
	}
	if _, ok, _ := kv.Get(ctx, PlayerKey); ok {
		t.Fatal("malformed record should have been removed")
	}
}

func TestClearRemovesPlayerAndIdentity(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemoryKV()
	store := NewStore(kv)
	_ = kv.Set(ctx, IdentityKey, `{"id":"legacy"}`)
	if err := store.Save(ctx, &model.PlayerRecord{ID: "p_1", Name: "Ada"}); err != nil {
		t.Fatal(err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	for _, key := range []string{PlayerKey, IdentityKey} {
		if _, ok, _ := kv.Get(ctx, key); ok {
			t.Fatalf("%s still present after Clear", key)
		}
	}
}

type failingKV struct{}

func (failingKV) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("disk unavailable")
}

func (failingKV) Set(ctx context.Context, key, value string) error { return errors.New("disk unavailable") }

func (failingKV) Delete(ctx context.Context, key string) error { return errors.New("disk unavailable") }

func TestLoadSyncReadFailure(t *testing.T) {
	store := NewStore(failingKV{})
	if got := store.LoadSync(context.Background()); got != nil {
		t.Fatalf("expected nil on read failure, got %+v", got)
	}
}
