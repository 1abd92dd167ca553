package middleware

import (
	"net/http"

	"github.com/peakhr/hr-console-go/internal/domain/identity"
	"github.com/peakhr/hr-console-go/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, identity.ErrInvalidToken.Error())
			return
		}

		if !actor.IsAdmin {
			response.Forbidden(w, identity.ErrAdminPrivilegeRequired.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireManager allows managers and admins through.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, identity.ErrInvalidToken.Error())
			return
		}

		if actor.Role != identity.RoleManager && !actor.IsAdmin {
			response.Forbidden(w, identity.ErrManagerAccessRequired.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireProxyCapability gates submission on behalf of another employee.
func RequireProxyCapability(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, identity.ErrInvalidToken.Error())
			return
		}

		if !actor.CanSubmitProxy && !actor.IsAdmin {
			response.Forbidden(w, identity.ErrProxyAccessRequired.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
