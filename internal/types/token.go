package types

import "github.com/google/uuid"

// TokenClaims are the claims carried by an access token.
type TokenClaims struct {
	UserID   uuid.UUID
	Username string
	IsAdmin  bool
}
