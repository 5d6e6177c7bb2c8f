package model

import "github.com/golang-jwt/jwt/v5"

// PlayerClaims are JWT claims for tokens bound to the session player
type PlayerClaims struct {
	PlayerID string `json:"playerId"`
	jwt.RegisteredClaims
}

// SessionResponse is returned after a player is created or signed in
type SessionResponse struct {
	Token  string        `json:"token"`
	Player *PlayerRecord `json:"player"`
}

// SignInRequest signs in an existing GameLayer player
type SignInRequest struct {
	PlayerID string `json:"playerId"`
}
