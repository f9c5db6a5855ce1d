package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/shared"
)

type actorContextKey struct{}

// ContextWithActor stores the resolved actor in context.
func ContextWithActor(ctx context.Context, actor authz.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the actor resolved by the enforcement
// middleware. ok is false on routes that never passed through it.
func ActorFromContext(ctx context.Context) (authz.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(authz.Actor)
	return actor, ok
}

// Enforcer wires authorization checks for HTTP handlers. Every check
// resolves the actor server-side through the provider, so a client-held
// decision is never trusted and role/status are re-validated within the
// snapshot staleness bound.
type Enforcer struct {
	Provider *ActorProvider
	Logger   *slog.Logger
}

// RequireActor ensures the request has an authenticated actor, whatever its
// role or status, and stores it in context. Used for endpoints like /auth/me
// that must work for pending accounts.
func (e Enforcer) RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := e.resolve(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithActor(r.Context(), actor)))
	})
}

// RequireActive ensures the actor exists and passes the lifecycle gate.
func (e Enforcer) RequireActive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := e.resolve(w, r)
		if !ok {
			return
		}
		if !actor.Active() {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithActor(r.Context(), actor)))
	})
}

// RequirePermission ensures an active actor holding all listed permissions.
func (e Enforcer) RequirePermission(perms ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := e.resolve(w, r)
			if !ok {
				return
			}
			if !actor.Active() {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			for _, perm := range perms {
				if !authz.HasPermission(actor.Role, perm) {
					http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
					return
				}
			}
			next.ServeHTTP(w, r.WithContext(ContextWithActor(r.Context(), actor)))
		})
	}
}

// RequireRole ensures an active actor with at least the given role.
func (e Enforcer) RequireRole(required authz.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := e.resolve(w, r)
			if !ok {
				return
			}
			if !actor.Active() || !authz.HasMinimumRole(actor.Role, required) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithActor(r.Context(), actor)))
		})
	}
}

// RouteGate applies the static route permission map to the request path.
func (e Enforcer) RouteGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := e.resolve(w, r)
		if !ok {
			return
		}
		if !authz.CanAccessRoute(actor.Role, actor.Status, r.URL.Path) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithActor(r.Context(), actor)))
	})
}

func (e Enforcer) resolve(w http.ResponseWriter, r *http.Request) (authz.Actor, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return authz.Actor{}, false
	}
	userID, ok := sess.UserID()
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return authz.Actor{}, false
	}
	actor, err := e.Provider.Actor(r.Context(), userID)
	if err != nil {
		if e.Logger != nil {
			e.Logger.Error("resolve actor", slog.Int64("user_id", userID), slog.Any("error", err))
		}
		// Fail closed: an account we cannot load has no permissions.
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return authz.Actor{}, false
	}
	return actor, true
}
