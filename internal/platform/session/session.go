// Package session implements cookie-based server-side sessions. The cookie
// carries only an opaque id; identity, the return-to path and the one-shot
// flash message live in the backing store.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/TheoInCodeLand/casalinga-tours/pkg/logger"
)

type Flash struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Session struct {
	ID       string `json:"-"`
	UserID   int64  `json:"user_id,omitempty"`
	UserName string `json:"user_name,omitempty"`
	UserRole string `json:"user_role,omitempty"`
	ReturnTo string `json:"return_to,omitempty"`
	Flash    *Flash `json:"flash,omitempty"`
}

func (s *Session) IsAuthenticated() bool {
	return s.UserID != 0
}

func (s *Session) SetUser(id int64, name, role string) {
	s.UserID = id
	s.UserName = name
	s.UserRole = role
}

func (s *Session) SetFlash(typ, text string) {
	s.Flash = &Flash{Type: typ, Text: text}
}

// Store persists session data keyed by the opaque session id. Get returns
// (nil, nil) for a missing or expired session.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, sess *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type ctxKey string

const sessionKey ctxKey = "session"

type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
	secure     bool
}

func NewManager(store Store, cookieName string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		store:      store,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
	}
}

// Middleware resolves the request cookie to a session and places it in the
// request context. A fresh session is handed out when the cookie is absent or
// stale; it is only persisted once a handler calls Save.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.load(r)
		ctx := context.WithValue(r.Context(), sessionKey, sess)
		if sess.IsAuthenticated() {
			ctx = context.WithValue(ctx, logger.UserIDKey, sess.UserID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Manager) load(r *http.Request) *Session {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		sess, err := m.store.Get(r.Context(), cookie.Value)
		if err != nil {
			logger.ErrorContext(r.Context(), "Failed to load session", "error", err)
		} else if sess != nil {
			sess.ID = cookie.Value
			return sess
		}
	}
	return &Session{ID: uuid.NewString()}
}

// FromRequest returns the session placed in the context by Middleware, or an
// unsaved empty session if the middleware did not run.
func FromRequest(r *http.Request) *Session {
	if sess, ok := r.Context().Value(sessionKey).(*Session); ok {
		return sess
	}
	return &Session{ID: uuid.NewString()}
}

// Save persists the session and refreshes the cookie.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if err := m.store.Save(ctx, sess, m.ttl); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Destroy deletes the stored session and expires the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	err := m.store.Delete(ctx, sess.ID)
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	*sess = Session{ID: uuid.NewString()}
	return err
}

// PopFlash returns the pending flash message and clears it, so a message is
// rendered exactly once. The cleared state is persisted immediately.
func (m *Manager) PopFlash(ctx context.Context, w http.ResponseWriter, sess *Session) *Flash {
	if sess.Flash == nil {
		return nil
	}
	f := sess.Flash
	sess.Flash = nil
	if err := m.Save(ctx, w, sess); err != nil {
		logger.ErrorContext(ctx, "Failed to clear flash message", "error", err)
	}
	return f
}
