package auth

import "errors"

var (
	// ErrInvalidCredentials masks every login failure cause.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrGenToken is returned when we cannot create a JWT.
	ErrGenToken = errors.New("failed to generate token")
	// ErrUnsupportedJWTAlg is returned for any algorithm other than HS256.
	ErrUnsupportedJWTAlg = errors.New("unsupported JWT algorithm")
	// ErrInvalidTokenMissingUserID is returned when a verified token lacks a user_id claim.
	ErrInvalidTokenMissingUserID = errors.New("invalid token: missing user_id claim")
)
