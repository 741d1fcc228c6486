package domain

import "time"

// TokenPair is issued at signup and login. Expiry instants are carried so
// cookies can be given matching max-ages.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// TokenClaims is the verified content of an access or refresh token.
type TokenClaims struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}
