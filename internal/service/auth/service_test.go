package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/turnos-hq/horario-backend-go/internal/domain/usuario"
	"github.com/turnos-hq/horario-backend-go/internal/pkg/jwt"
)

type fakeUsuarioRepo struct {
	usuarios map[string]usuario.Usuario
}

func (r *fakeUsuarioRepo) GetByEmail(ctx context.Context, email string) (usuario.Usuario, error) {
	u, ok := r.usuarios[email]
	if !ok {
		return usuario.Usuario{}, usuario.ErrUsuarioNotFound
	}
	return u, nil
}

func (r *fakeUsuarioRepo) GetByID(ctx context.Context, id int64) (usuario.Usuario, error) {
	for _, u := range r.usuarios {
		if u.ID == id {
			return u, nil
		}
	}
	return usuario.Usuario{}, usuario.ErrUsuarioNotFound
}

func testRepo(t *testing.T) *fakeUsuarioRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)

	return &fakeUsuarioRepo{usuarios: map[string]usuario.Usuario{
		"ana@empresa.com": {
			ID:           1,
			Email:        "ana@empresa.com",
			PasswordHash: string(hash),
			Nombre:       "Ana",
			Permisos:     []string{usuario.PermisoFichar},
		},
	}}
}

func testJWT() jwt.Service {
	return jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue both tokens", func(t *testing.T) {
		svc := NewAuthService(testRepo(t), testJWT())

		resp, refreshToken, refreshExpiresAt, err := svc.Login(ctx, usuario.LoginRequest{
			Email:    "ana@empresa.com",
			Password: "secreto123",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, refreshToken)
		assert.NotZero(t, refreshExpiresAt)
		assert.Equal(t, int64(1), resp.UsuarioID)
		assert.Equal(t, []string{usuario.PermisoFichar}, resp.Permisos)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		svc := NewAuthService(testRepo(t), testJWT())

		_, _, _, errPassword := svc.Login(ctx, usuario.LoginRequest{
			Email:    "ana@empresa.com",
			Password: "wrong",
		})
		_, _, _, errEmail := svc.Login(ctx, usuario.LoginRequest{
			Email:    "nadie@empresa.com",
			Password: "secreto123",
		})

		assert.ErrorIs(t, errPassword, usuario.ErrInvalidCredentials)
		assert.ErrorIs(t, errEmail, usuario.ErrInvalidCredentials)
	})

	t.Run("structural validation runs first", func(t *testing.T) {
		svc := NewAuthService(testRepo(t), testJWT())

		_, _, _, err := svc.Login(ctx, usuario.LoginRequest{Email: "not-an-email", Password: ""})
		require.Error(t, err)
		assert.NotErrorIs(t, err, usuario.ErrInvalidCredentials)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	login := func(t *testing.T, svc usuario.AuthService) (usuario.LoginResponse, string) {
		t.Helper()
		resp, refreshToken, _, err := svc.Login(ctx, usuario.LoginRequest{
			Email:    "ana@empresa.com",
			Password: "secreto123",
		})
		require.NoError(t, err)
		return resp, refreshToken
	}

	t.Run("valid refresh token mints a new access token", func(t *testing.T) {
		svc := NewAuthService(testRepo(t), testJWT())
		_, refreshToken := login(t, svc)

		resp, err := svc.RefreshToken(ctx, usuario.RefreshTokenRequest{RefreshToken: refreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotZero(t, resp.ExpiresAt)
	})

	t.Run("revoked refresh token is rejected", func(t *testing.T) {
		jwtSvc := testJWT()
		svc := NewAuthService(testRepo(t), jwtSvc)
		_, refreshToken := login(t, svc)

		jwtSvc.RevokeToken(refreshToken)

		_, err := svc.RefreshToken(ctx, usuario.RefreshTokenRequest{RefreshToken: refreshToken})
		assert.ErrorIs(t, err, usuario.ErrRefreshTokenRevoked)
	})

	t.Run("access token is not accepted as a refresh token", func(t *testing.T) {
		svc := NewAuthService(testRepo(t), testJWT())
		loginResp, _ := login(t, svc)

		_, err := svc.RefreshToken(ctx, usuario.RefreshTokenRequest{RefreshToken: loginResp.AccessToken})
		assert.ErrorIs(t, err, usuario.ErrInvalidToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		svc := NewAuthService(testRepo(t), testJWT())

		_, err := svc.RefreshToken(ctx, usuario.RefreshTokenRequest{RefreshToken: "not-a-jwt"})
		assert.ErrorIs(t, err, usuario.ErrInvalidToken)
	})
}
