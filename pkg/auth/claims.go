package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/unieats/unieats-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID       uuid.UUID
	Email        string
	University   string
	Role         enums.MemberRole
	RestaurantID *int
	JTI          string
}

// AccessTokenClaims represents the typed JWT issued by the campus SSO
// bridge. RestaurantID is present only for restaurant owner tokens.
type AccessTokenClaims struct {
	UserID       uuid.UUID        `json:"user_id"`
	Email        string           `json:"email"`
	University   string           `json:"university"`
	Role         enums.MemberRole `json:"role"`
	RestaurantID *int             `json:"restaurant_id,omitempty"`
	jwt.RegisteredClaims
}
