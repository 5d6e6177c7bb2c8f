package cache

import (
	"adventcal/internal/model"
	"context"
	"sort"
	"sync"
)

// MemoryLeaderboard is an in-process ranking with the same tie order as the Redis one
type MemoryLeaderboard struct {
	mu      sync.RWMutex
	seq     int64
	entries map[string]*memoryEntry
}

type memoryEntry struct {
	player    model.PlayerRecord
	points    int
	completed int
	seq       int64
}

// NewMemoryLeaderboard creates an empty in-memory ranking
func NewMemoryLeaderboard() *MemoryLeaderboard {
	return &MemoryLeaderboard{entries: make(map[string]*memoryEntry)}
}

func (m *MemoryLeaderboard) Record(ctx context.Context, player model.PlayerRecord, points, completedTasks int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[player.ID]
	if !ok {
		m.seq++
		e = &memoryEntry{seq: m.seq}
		m.entries[player.ID] = e
	}
	e.player = player
	e.points = points
	e.completed = completedTasks
	return nil
}

func (m *MemoryLeaderboard) Page(ctx context.Context, limit, offset int) ([]model.LeaderboardEntry, int, error) {
	m.mu.RLock()
	sorted := make([]*memoryEntry, 0, len(m.entries))
	for _, e := range m.entries {
		sorted = append(sorted, e)
	}
	m.mu.RUnlock()

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].points != sorted[j].points {
			return sorted[i].points > sorted[j].points
		}
		return sorted[i].seq < sorted[j].seq
	})

	total := len(sorted)
	if limit <= 0 || offset >= total {
		return []model.LeaderboardEntry{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	out := make([]model.LeaderboardEntry, 0, end-offset)
	for i := offset; i < end; i++ {
		e := sorted[i]
		out = append(out, model.LeaderboardEntry{
			Rank:           i + 1,
			User:           *e.player.Clone(),
			Points:         e.points,
			CompletedTasks: e.completed,
		})
	}
	return out, total, nil
}

// MemoryKV is a process-local key/value store
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKV creates an empty in-memory key/value store
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
