package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/turnos-hq/horario-backend-go/internal/domain/usuario"
	"github.com/turnos-hq/horario-backend-go/internal/handler/http/response"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, usuario.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, usuario.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, usuario.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// UsuarioID extracts the authenticated usuario id from the verified
// token in the request context. jwtauth decodes numeric claims as
// float64.
func UsuarioID(r *http.Request) (int64, bool) {
	token, _, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		return 0, false
	}

	claims, err := token.AsMap(r.Context())
	if err != nil {
		return 0, false
	}

	raw, ok := claims["usuario_id"].(float64)
	if !ok {
		return 0, false
	}

	return int64(raw), true
}
