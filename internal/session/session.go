// Package session persists the signed-in player between runs.
package session

import (
	"adventcal/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"log"
)

const (
	// PlayerKey holds the JSON-encoded session player
	PlayerKey = "currentPlayer"
	// IdentityKey is a generic cached identity that is dropped on sign-out
	IdentityKey = "user"
)

// KV is the durable key/value storage behind the session
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store saves and restores the session player
type Store struct {
	kv KV
}

// NewStore creates a session store over kv
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Save writes the player as the current session record
func (s *Store) Save(ctx context.Context, player *model.PlayerRecord) error {
	if player == nil {
		return s.Clear(ctx)
	}
	data, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to encode session player: %w", err)
	}
	if err := s.kv.Set(ctx, PlayerKey, string(data)); err != nil {
		return fmt.Errorf("failed to save session player: %w", err)
	}
	return nil
}

// LoadSync returns the stored session player, or nil if there is none.
// A record that cannot be decoded is removed.
func (s *Store) LoadSync(ctx context.Context) *model.PlayerRecord {
	raw, ok, err := s.kv.Get(ctx, PlayerKey)
	if err != nil {
		log.Printf("[session] failed to read session: %v", err)
		return nil
	}
	if !ok {
		return nil
	}

	var player model.PlayerRecord
	if err := json.Unmarshal([]byte(raw), &player); err != nil || player.ID == "" {
		log.Printf("[session] discarding malformed session record: %v", err)
		if err := s.kv.Delete(ctx, PlayerKey); err != nil {
			log.Printf("[session] failed to clear malformed record: %v", err)
		}
		return nil
	}
	return &player
}

// Clear removes the session player and the cached identity
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, PlayerKey); err != nil {
		return fmt.Errorf("failed to clear session player: %w", err)
	}
	if err := s.kv.Delete(ctx, IdentityKey); err != nil {
		return fmt.Errorf("failed to clear cached identity: %w", err)
	}
	return nil
}
