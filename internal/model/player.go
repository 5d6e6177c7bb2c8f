package model

import "time"

// Rarity grades badges and rewards
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Badge is an achievement awarded by the gamification service
type Badge struct {
	ID          string     `json:"id" bson:"id"`
	Name        string     `json:"name" bson:"name"`
	Description string     `json:"description" bson:"description"`
	Icon        string     `json:"icon" bson:"icon"`
	Rarity      Rarity     `json:"rarity" bson:"rarity"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty" bson:"unlockedAt,omitempty"`
}

// PlayerRecord is a player as known by the gamification service
type PlayerRecord struct {
	ID      string  `json:"player" bson:"_id"`
	Name    string  `json:"name" bson:"name"`
	Email   string  `json:"email,omitempty" bson:"email,omitempty"`
	Avatar  string  `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Account string  `json:"account,omitempty" bson:"account,omitempty"`
	Points  int     `json:"points" bson:"points"`
	Gems    int     `json:"gems" bson:"gems"`
	Badges  []Badge `json:"badges" bson:"badges"`
}

// Clone returns a deep copy so callers can modify it without touching shared state
func (p *PlayerRecord) Clone() *PlayerRecord {
	if p == nil {
		return nil
	}
	c := *p
	if p.Badges != nil {
		c.Badges = make([]Badge, len(p.Badges))
		copy(c.Badges, p.Badges)
	}
	return &c
}

// PlayerPayload is the body for creating or updating a player.
// An empty ID asks the service to create a new player.
type PlayerPayload struct {
	ID      string `json:"player,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Account string `json:"account,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
}
