package auth

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	userservice "gigbook/internal/users/service"
	apperrors "gigbook/pkg/errors"
	httputil "gigbook/pkg/http"
	"gigbook/pkg/logger"
	"gigbook/pkg/model"
)

type sessionContextKey struct{}

// SessionFromContext returns the session attached by WithSession, if any.
func SessionFromContext(ctx context.Context) (*model.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*model.Session)
	return sess, ok
}

// ContextWithSession attaches a session to the context the same way
// WithSession does.
func ContextWithSession(ctx context.Context, sess *model.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// WithSession resolves the session cookie once per request and attaches the
// result to the context. Requests without a usable cookie pass through
// anonymous; this middleware never rejects.
func (m *Sessions) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess := m.Resolve(r); sess != nil {
			r = r.WithContext(ContextWithSession(r.Context(), sess))
		}
		next.ServeHTTP(w, r)
	})
}

// Guard builds the per-route authorization wrappers. Verified variants
// re-check that the session's user still exists, so a deleted account loses
// access the moment its next request arrives.
type Guard struct {
	users userservice.UserService
	log   *logger.Logger
}

func NewGuard(users userservice.UserService, log *logger.Logger) *Guard {
	return &Guard{users: users, log: log}
}

func (g *Guard) RequireSession(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if _, ok := SessionFromContext(r.Context()); !ok {
			g.reject(w, apperrors.Unauthorized("Not logged in"))
			return
		}
		next(w, r, ps)
	}
}

func (g *Guard) RequireVerifiedSession(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		sess, ok := SessionFromContext(r.Context())
		if !ok {
			g.reject(w, apperrors.Unauthorized("Not logged in"))
			return
		}
		if _, err := g.users.GetByID(r.Context(), sess.UserID); err != nil {
			g.reject(w, apperrors.Unauthorized("Session user no longer exists"))
			return
		}
		next(w, r, ps)
	}
}

func (g *Guard) RequireRole(roles ...string) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			sess, ok := SessionFromContext(r.Context())
			if !ok {
				g.reject(w, apperrors.Unauthorized("Not logged in"))
				return
			}
			for _, role := range roles {
				if sess.Usertype == role {
					next(w, r, ps)
					return
				}
			}
			g.reject(w, apperrors.Forbidden("Insufficient permissions"))
		}
	}
}

// RedirectIfAuthenticated sends an already-logged-in user to their dashboard
// instead of running the login or signup handler again.
func (g *Guard) RedirectIfAuthenticated(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if sess, ok := SessionFromContext(r.Context()); ok {
			httputil.Redirect(w, r, model.DashboardPath(sess.Usertype))
			return
		}
		next(w, r, ps)
	}
}

func (g *Guard) reject(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		g.log.Error("failed to write error response", "handler", "Guard", "operation", "WriteError", "error", writeErr)
	}
}
