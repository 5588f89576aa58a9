package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/turnos-hq/horario-backend-go/internal/domain/usuario"
	"github.com/turnos-hq/horario-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	usuarioRepo usuario.UsuarioRepository
	jwtService  jwt.Service
}

// Login implements usuario.AuthService. An unknown email and a wrong
// password produce the same error, so the response never reveals which
// one failed.
func (s *AuthServiceImpl) Login(ctx context.Context, req usuario.LoginRequest) (usuario.LoginResponse, string, int64, error) {
	if err := req.Validate(); err != nil {
		return usuario.LoginResponse{}, "", 0, err
	}

	u, err := s.usuarioRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, usuario.ErrUsuarioNotFound) {
			return usuario.LoginResponse{}, "", 0, usuario.ErrInvalidCredentials
		}
		return usuario.LoginResponse{}, "", 0, fmt.Errorf("failed to get usuario: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return usuario.LoginResponse{}, "", 0, usuario.ErrInvalidCredentials
	}

	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return usuario.LoginResponse{}, "", 0, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return usuario.LoginResponse{}, "", 0, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	slog.Info("usuario logged in", "usuario_id", u.ID)

	return usuario.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   accessExpiresAt,
		UsuarioID:   u.ID,
		Email:       u.Email,
		Nombre:      u.Nombre,
		Permisos:    u.Permisos,
	}, refreshToken, refreshExpiresAt, nil
}

// RefreshToken implements usuario.AuthService. The refresh token is
// checked for signature, expiry, type and revocation, then a new access
// token is minted. The refresh token itself is left untouched.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, req usuario.RefreshTokenRequest) (usuario.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return usuario.AccessTokenResponse{}, err
	}

	token, err := jwtauth.VerifyToken(s.jwtService.JWTAuth(), req.RefreshToken)
	if err != nil {
		return usuario.AccessTokenResponse{}, usuario.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return usuario.AccessTokenResponse{}, usuario.ErrInvalidToken
	}
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		return usuario.AccessTokenResponse{}, usuario.ErrInvalidToken
	}

	if s.jwtService.IsTokenRevoked(req.RefreshToken) {
		return usuario.AccessTokenResponse{}, usuario.ErrRefreshTokenRevoked
	}

	// jwtauth decodes numeric claims as float64.
	rawID, ok := claims["usuario_id"].(float64)
	if !ok {
		return usuario.AccessTokenResponse{}, usuario.ErrInvalidToken
	}

	u, err := s.usuarioRepo.GetByID(ctx, int64(rawID))
	if err != nil {
		if errors.Is(err, usuario.ErrUsuarioNotFound) {
			return usuario.AccessTokenResponse{}, usuario.ErrInvalidToken
		}
		return usuario.AccessTokenResponse{}, fmt.Errorf("failed to get usuario: %w", err)
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return usuario.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return usuario.AccessTokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

func NewAuthService(usuarioRepo usuario.UsuarioRepository, jwtService jwt.Service) usuario.AuthService {
	return &AuthServiceImpl{
		usuarioRepo: usuarioRepo,
		jwtService:  jwtService,
	}
}
