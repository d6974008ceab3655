// Package auth owns the session lifecycle: cookie issuance, resolution of
// the sealed cookie back into server-side session state, and the per-route
// guards built on top of it.
package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"gigbook/pkg/logger"
	"gigbook/pkg/model"
	"gigbook/pkg/sealer"
	"gigbook/pkg/session"
)

type Sessions struct {
	store      session.Store
	sealer     *sealer.Sealer
	cookieName string
	ttl        time.Duration
	log        *logger.Logger
}

func NewSessions(store session.Store, s *sealer.Sealer, cookieName string, ttl time.Duration, log *logger.Logger) *Sessions {
	return &Sessions{
		store:      store,
		sealer:     s,
		cookieName: cookieName,
		ttl:        ttl,
		log:        log,
	}
}

// Start creates a server-side session for the user and sets the sealed
// session cookie. The session carries a snapshot of the user's profile; the
// user document stays the source of truth.
func (m *Sessions) Start(ctx context.Context, w http.ResponseWriter, user *model.User) (*model.Session, error) {
	now := time.Now().UTC()
	sess := &model.Session{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Username:    user.Username,
		Usertype:    user.Usertype,
		Name:        user.Name,
		Phone:       user.Phone,
		Location:    user.Location,
		Genre:       user.Genre,
		Description: user.Description,
		CreatedAt:   now,
		ExpiresAt:   now.Add(m.ttl),
	}

	if err := m.store.Create(ctx, sess); err != nil {
		return nil, err
	}

	token, err := m.sealer.Seal(sess.ID)
	if err != nil {
		if destroyErr := m.store.Destroy(ctx, sess.ID); destroyErr != nil {
			m.log.Error("Failed to destroy orphaned session", "session_id", sess.ID, "error", destroyErr)
		}
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	m.log.Info("Session started", "username", user.Username, "usertype", user.Usertype)
	return sess, nil
}

// Resolve turns the request's session cookie into a live session. Missing,
// tampered, unknown and expired cookies all resolve to nil: requests without
// a usable session are simply anonymous.
func (m *Sessions) Resolve(r *http.Request) *model.Session {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil
	}

	id, err := m.sealer.Open(cookie.Value)
	if err != nil {
		m.log.Debug("Rejected session cookie", "error", err)
		return nil
	}

	sess, err := m.store.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			m.log.Error("Session lookup failed", "error", err)
		}
		return nil
	}

	return sess
}

// Clear destroys the server-side session, if any, and expires the cookie.
func (m *Sessions) Clear(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	defer http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil
	}

	id, err := m.sealer.Open(cookie.Value)
	if err != nil {
		return nil
	}

	if err := m.store.Destroy(ctx, id); err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	return nil
}
