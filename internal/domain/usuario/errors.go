package usuario

import "errors"

var (
	ErrUsuarioNotFound     = errors.New("usuario not found")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPermisoDenied       = errors.New("missing required permission")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
)
