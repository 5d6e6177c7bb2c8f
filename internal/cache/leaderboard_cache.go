package cache

import (
	"adventcal/internal/model"
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// arrivalSpace bounds the arrival sequence folded into a ZSET score.
// score = points*arrivalSpace + (arrivalSpace-1-seq), so equal points keep
// first-recorded order and stay exact in a float64 up to ~9e9 points.
const arrivalSpace = 1_000_000

// LeaderboardCache handles Redis ZSET operations for the leaderboard
type LeaderboardCache struct {
	client *redis.Client
	prefix string
}

// NewLeaderboardCache creates a Redis backed ranking under the given key prefix
func NewLeaderboardCache(client *redis.Client, prefix string) *LeaderboardCache {
	if prefix == "" {
		prefix = "advent"
	}
	return &LeaderboardCache{
		client: client,
		prefix: prefix,
	}
}

// rankedPlayer is what the players hash stores per member
type rankedPlayer struct {
	Player         model.PlayerRecord `json:"player"`
	Points         int                `json:"points"`
	CompletedTasks int                `json:"completedTasks"`
}

// Key helpers
func (c *LeaderboardCache) scoresKey() string  { return fmt.Sprintf("%s:lb", c.prefix) }
func (c *LeaderboardCache) playersKey() string { return fmt.Sprintf("%s:lb:players", c.prefix) }
func (c *LeaderboardCache) arrivalKey() string { return fmt.Sprintf("%s:lb:arrival", c.prefix) }
func (c *LeaderboardCache) seqKey() string     { return fmt.Sprintf("%s:lb:seq", c.prefix) }

// arrival returns the player's first-seen sequence number, assigning one if needed
func (c *LeaderboardCache) arrival(ctx context.Context, playerID string) (int64, error) {
	seq, err := c.client.HGet(ctx, c.arrivalKey(), playerID).Int64()
	if err == nil {
		return seq, nil
	}
	if err != redis.Nil {
		return 0, err
	}
	next, err := c.client.Incr(ctx, c.seqKey()).Result()
	if err != nil {
		return 0, err
	}
	ok, err := c.client.HSetNX(ctx, c.arrivalKey(), playerID, next).Result()
	if err != nil {
		return 0, err
	}
	if !ok {
		// another writer assigned it first
		return c.client.HGet(ctx, c.arrivalKey(), playerID).Int64()
	}
	return next, nil
}

func (c *LeaderboardCache) Record(ctx context.Context, player model.PlayerRecord, points, completedTasks int) error {
	seq, err := c.arrival(ctx, player.ID)
	if err != nil {
		return fmt.Errorf("failed to get arrival: %w", err)
	}
	if seq >= arrivalSpace {
		return fmt.Errorf("leaderboard holds more than %d players", arrivalSpace-1)
	}
	data, err := json.Marshal(rankedPlayer{Player: player, Points: points, CompletedTasks: completedTasks})
	if err != nil {
		return err
	}

	score := float64(points)*arrivalSpace + float64(arrivalSpace-1-seq)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, c.playersKey(), player.ID, data)
	pipe.ZAdd(ctx, c.scoresKey(), redis.Z{Score: score, Member: player.ID})
	_, err = pipe.Exec(ctx)
	return err
}

func (c *LeaderboardCache) Page(ctx context.Context, limit, offset int) ([]model.LeaderboardEntry, int, error) {
	total, err := c.client.ZCard(ctx, c.scoresKey()).Result()
	if err != nil {
		return nil, 0, err
	}
	if limit <= 0 || int64(offset) >= total {
		return []model.LeaderboardEntry{}, int(total), nil
	}

	ids, err := c.client.ZRevRange(ctx, c.scoresKey(), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return []model.LeaderboardEntry{}, int(total), nil
	}
	raw, err := c.client.HMGet(ctx, c.playersKey(), ids...).Result()
	if err != nil {
		return nil, 0, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(ids))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var rp rankedPlayer
		if err := json.Unmarshal([]byte(s), &rp); err != nil {
			continue
		}
		entries = append(entries, model.LeaderboardEntry{
			Rank:           offset + i + 1,
			User:           rp.Player,
			Points:         rp.Points,
			CompletedTasks: rp.CompletedTasks,
		})
	}
	return entries, int(total), nil
}
