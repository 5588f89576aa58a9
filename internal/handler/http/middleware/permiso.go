package middleware

import (
	"log/slog"
	"net/http"

	"github.com/turnos-hq/horario-backend-go/internal/domain/usuario"
	"github.com/turnos-hq/horario-backend-go/internal/handler/http/response"
)

// RequirePermiso gates a route group behind one permission. It runs
// after AuthRequired, so the token is already verified.
func RequirePermiso(permisos usuario.Permisos, permiso string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			usuarioID, ok := UsuarioID(r)
			if !ok {
				response.HandleError(w, usuario.ErrInvalidToken)
				return
			}

			tiene, err := permisos.TienePermiso(r.Context(), usuarioID, permiso)
			if err != nil {
				slog.Error("RequirePermiso check error", "usuario_id", usuarioID, "permiso", permiso, "error", err)
				response.HandleError(w, err)
				return
			}
			if !tiene {
				response.HandleError(w, usuario.ErrPermisoDenied)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
