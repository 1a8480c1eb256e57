package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/handler/http/response"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// OriginHeader tells the API which client surface issued a request.
const OriginHeader = "X-Request-Origin"

type actorContextKey struct{}

// WithActor stores the acting user in ctx.
func WithActor(ctx context.Context, actor leave.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext returns the actor stored by AuthRequired.
func ActorFromContext(ctx context.Context) (leave.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(leave.Actor)
	return actor, ok
}

// AuthRequired rejects requests without a valid access token and puts the
// token's identity into the request context. It must run after
// jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.Unauthorized(w, "Missing access token")
			return
		}

		c, err := jwt.ClaimsFromMap(claims)
		if err != nil {
			response.Unauthorized(w, "Invalid access token")
			return
		}

		actor := leave.Actor{
			ID:      c.UserID,
			Name:    c.Name,
			IsAdmin: c.IsAdmin(),
			Origin:  leave.ParseOrigin(r.Header.Get(OriginHeader)),
		}
		if c.Avatar != "" {
			avatar := c.Avatar
			actor.Avatar = &avatar
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}
