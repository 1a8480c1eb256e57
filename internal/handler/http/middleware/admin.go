package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Missing access token")
			return
		}
		if !actor.IsAdmin {
			response.HandleError(w, leave.ErrAdminOnly)
			return
		}

		next.ServeHTTP(w, r)
	})
}
