package service

import (
	"adventcal/internal/analytics"
	"adventcal/internal/failure"
	"adventcal/internal/model"
	"adventcal/internal/store"
	"context"
	"fmt"
	"log"
	"strings"
)

// SetSessionPlayer makes player the session player and persists it
func (a *Actions) SetSessionPlayer(ctx context.Context, player *model.PlayerRecord) error {
	a.store.Dispatch(store.SetSessionPlayer{Player: player})
	if err := a.sessions.Save(ctx, player); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// CreatePlayer registers a new player with the service and signs it in
func (a *Actions) CreatePlayer(ctx context.Context, payload model.PlayerPayload) (*model.PlayerRecord, error) {
	payload.ID = ""
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)

	player, err := failure.Call(ctx, func(ctx context.Context) (*model.PlayerRecord, error) {
		return a.gw.CreateOrUpdatePlayer(ctx, payload)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	if err := a.SetSessionPlayer(ctx, player); err != nil {
		return nil, err
	}
	log.Printf("[actions] created player %s", player.ID)
	return player, nil
}

// SignIn restores the session of an existing player
func (a *Actions) SignIn(ctx context.Context, playerID string) (*model.PlayerRecord, error) {
	player, err := failure.Call(ctx, func(ctx context.Context) (*model.PlayerRecord, error) {
		return a.gw.GetPlayer(ctx, playerID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign in %s: %w", playerID, err)
	}
	if err := a.SetSessionPlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// UpdateProfile changes the session player's profile fields
func (a *Actions) UpdateProfile(ctx context.Context, payload model.PlayerPayload) (*model.PlayerRecord, error) {
	current := a.store.Snapshot().SessionPlayer
	if current == nil {
		return nil, ErrNoSession
	}
	payload.ID = current.ID
	if payload.Account == "" {
		payload.Account = current.Account
	}

	player, err := failure.Call(ctx, func(ctx context.Context) (*model.PlayerRecord, error) {
		return a.gw.CreateOrUpdatePlayer(ctx, payload)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if err := a.SetSessionPlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// Logout ends the session and forgets the persisted identity
func (a *Actions) Logout(ctx context.Context) error {
	a.store.Dispatch(store.SetSessionPlayer{})
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// RefreshPlayer replaces the session player with the service's record.
// The result is dropped if the session changed to another player meanwhile.
func (a *Actions) RefreshPlayer(ctx context.Context, playerID string) error {
	player, err := failure.Call(ctx, func(ctx context.Context) (*model.PlayerRecord, error) {
		return a.gw.GetPlayer(ctx, playerID)
	})
	if err != nil {
		return fmt.Errorf("failed to refresh player %s: %w", playerID, err)
	}

	applied := false
	a.store.DispatchFunc(func(s store.AppState) []store.Event {
		if s.SessionPlayer == nil || s.SessionPlayer.ID != playerID {
			return nil
		}
		applied = true
		return []store.Event{store.SetSessionPlayer{Player: player}}
	})
	if !applied {
		return ErrNoMatch
	}
	if err := a.sessions.Save(ctx, player); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// RefreshRewards re-fetches the reward shop
func (a *Actions) RefreshRewards(ctx context.Context) error {
	rewards, err := failure.Call(ctx, a.gw.GetRewards)
	if err != nil {
		return fmt.Errorf("failed to refresh rewards: %w", err)
	}
	a.store.Dispatch(store.SetRewards{Rewards: rewards})
	return nil
}

// PurchaseReward buys a reward for the session player and deducts its
// gem cost locally
func (a *Actions) PurchaseReward(ctx context.Context, rewardID string) (*model.PurchaseResult, error) {
	snap := a.store.Snapshot()
	if snap.SessionPlayer == nil {
		a.store.Dispatch(store.SetError{Message: MsgSignInFirst})
		return nil, ErrNoSession
	}
	playerID := snap.SessionPlayer.ID
	cost, known := 0, false
	for _, r := range snap.Rewards {
		if r.ID == rewardID {
			cost, known = r.GemCost, true
			break
		}
	}

	result, err := failure.Call(ctx, func(ctx context.Context) (*model.PurchaseResult, error) {
		return a.gw.PurchaseReward(ctx, playerID, rewardID)
	})
	if err != nil {
		a.fail(err)
		return nil, fmt.Errorf("failed to purchase %s: %w", rewardID, err)
	}
	if !result.Success {
		a.store.Dispatch(store.SetError{Message: result.Message})
		return result, fmt.Errorf("%w: %s", ErrPurchaseFailed, result.Message)
	}

	if known {
		a.store.DispatchFunc(func(s store.AppState) []store.Event {
			if s.SessionPlayer == nil || s.SessionPlayer.ID != playerID {
				return nil
			}
			return []store.Event{store.ApplyProgressDelta{Gems: -cost}}
		})
	} else {
		// The cost is unknown locally, so take the balance from the service
		log.Printf("[actions] reward %s not in local rewards, refreshing player %s", rewardID, playerID)
		if err := a.RefreshPlayer(ctx, playerID); err != nil {
			log.Printf("[actions] player refresh after purchase failed: %v", err)
		}
	}
	if err := a.RefreshRewards(ctx); err != nil {
		log.Printf("[actions] %v", err)
	}
	a.tracker.Track(ctx, analytics.EventRewardPurchased, map[string]interface{}{
		"rewardId": rewardID,
		"gemCost":  cost,
		"playerId": playerID,
	})
	return result, nil
}
