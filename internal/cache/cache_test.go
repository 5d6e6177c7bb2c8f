package cache

import (
	"adventcal/internal/model"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// ranking is the behaviour shared by both leaderboard backends
type ranking interface {
	Record(ctx context.Context, player model.PlayerRecord, points, completedTasks int) error
	Page(ctx context.Context, limit, offset int) ([]model.LeaderboardEntry, int, error)
}

type kv interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func rankings(t *testing.T) map[string]ranking {
	return map[string]ranking{
		"memory": NewMemoryLeaderboard(),
		"redis":  NewLeaderboardCache(newRedisClient(t), "test"),
	}
}

func TestRankingOrdersByPointsThenArrival(t *testing.T) {
	ctx := context.Background()
	for name, r := range rankings(t) {
		t.Run(name, func(t *testing.T) {
			record := func(id string, points int) {
				if err := r.Record(ctx, model.PlayerRecord{ID: id, Name: id}, points, 1); err != nil {
					t.Fatalf("record %s: %v", id, err)
				}
			}
			record("a", 100)
			record("b", 300)
			record("c", 100)
			record("d", 200)

			entries, total, err := r.Page(ctx, 10, 0)
			if err != nil {
				t.Fatalf("page: %v", err)
			}
			if total != 4 {
				t.Fatalf("expected total 4, got %d", total)
			}
			want := []string{"b", "d", "a", "c"}
			for i, id := range want {
				if entries[i].User.ID != id {
					t.Fatalf("position %d: expected %s, got %s", i, id, entries[i].User.ID)
				}
				if entries[i].Rank != i+1 {
					t.Fatalf("position %d: expected rank %d, got %d", i, i+1, entries[i].Rank)
				}
			}
		})
	}
}

func TestRankingUpdateKeepsArrivalOrder(t *testing.T) {
	ctx := context.Background()
	for name, r := range rankings(t) {
		t.Run(name, func(t *testing.T) {
			_ = r.Record(ctx, model.PlayerRecord{ID: "first"}, 50, 0)
			_ = r.Record(ctx, model.PlayerRecord{ID: "second"}, 100, 0)
			// first catches up; the tie must still favour the earlier arrival
			_ = r.Record(ctx, model.PlayerRecord{ID: "first"}, 100, 1)

			entries, _, err := r.Page(ctx, 2, 0)
			if err != nil {
				t.Fatalf("page: %v", err)
			}
			if entries[0].User.ID != "first" || entries[0].Points != 100 || entries[0].CompletedTasks != 1 {
				t.Fatalf("unexpected leader %+v", entries[0])
			}
		})
	}
}

func TestRankingPageWindow(t *testing.T) {
	ctx := context.Background()
	for name, r := range rankings(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 7; i++ {
				_ = r.Record(ctx, model.PlayerRecord{ID: string(rune('a' + i))}, 100-i, 0)
			}
			entries, total, err := r.Page(ctx, 3, 5)
			if err != nil {
				t.Fatalf("page: %v", err)
			}
			if total != 7 || len(entries) != 2 {
				t.Fatalf("expected 2 of 7, got %d of %d", len(entries), total)
			}
			if entries[0].Rank != 6 || entries[1].Rank != 7 {
				t.Fatalf("unexpected ranks %d, %d", entries[0].Rank, entries[1].Rank)
			}

			entries, _, err = r.Page(ctx, 3, 10)
			if err != nil {
				t.Fatalf("page past end: %v", err)
			}
			if len(entries) != 0 {
				t.Fatalf("expected empty page past end, got %d", len(entries))
			}
		})
	}
}

func TestKVBackends(t *testing.T) {
	ctx := context.Background()
	sqliteKV, err := OpenSQLiteKV(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { sqliteKV.Close() })

	backends := map[string]kv{
		"memory": NewMemoryKV(),
		"redis":  NewRedisKV(newRedisClient(t), "test", time.Hour),
		"sqlite": sqliteKV,
	}
	for name, store := range backends {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := store.Get(ctx, "currentPlayer"); err != nil || ok {
				t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
			}
			if err := store.Set(ctx, "currentPlayer", `{"player":"p1"}`); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := store.Set(ctx, "currentPlayer", `{"player":"p2"}`); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			v, ok, err := store.Get(ctx, "currentPlayer")
			if err != nil || !ok || v != `{"player":"p2"}` {
				t.Fatalf("get: v=%q ok=%v err=%v", v, ok, err)
			}
			if err := store.Delete(ctx, "currentPlayer"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, ok, _ := store.Get(ctx, "currentPlayer"); ok {
				t.Fatal("expected key to be deleted")
			}
			if err := store.Delete(ctx, "currentPlayer"); err != nil {
				t.Fatalf("delete missing key: %v", err)
			}
		})
	}
}
