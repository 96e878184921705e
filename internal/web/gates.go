package web

import (
	"net/http"

	"github.com/TheoInCodeLand/casalinga-tours/internal/domain"
	"github.com/TheoInCodeLand/casalinga-tours/internal/platform/session"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/logger"
)

// Route gates. A denial writes the return-to path and a one-shot flash into
// the session before redirecting, so the login page can resume the original
// request and surface the reason exactly once.

func (h *Handlers) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromRequest(r)
		if !sess.IsAuthenticated() {
			h.denyToLogin(w, r, sess)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handlers) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromRequest(r)
		if !sess.IsAuthenticated() {
			h.denyToLogin(w, r, sess)
			return
		}
		if sess.UserRole != domain.RoleAdmin {
			sess.SetFlash("error", "Access denied. Administrator privileges required.")
			h.saveSession(w, r, sess)
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handlers) requireCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromRequest(r)
		if !sess.IsAuthenticated() {
			h.denyToLogin(w, r, sess)
			return
		}
		if sess.UserRole != domain.RoleCustomer {
			sess.SetFlash("error", "This page is for customer accounts only.")
			h.saveSession(w, r, sess)
			http.Redirect(w, r, "/admin/dashboard", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// redirectIfAuthenticated keeps login and register pages away from users who
// already have a session.
func (h *Handlers) redirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromRequest(r)
		if sess.IsAuthenticated() {
			http.Redirect(w, r, roleHome(sess.UserRole), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handlers) denyToLogin(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	sess.ReturnTo = r.URL.RequestURI()
	sess.SetFlash("error", "Please log in to access this page.")
	h.saveSession(w, r, sess)
	http.Redirect(w, r, "/auth/login", http.StatusFound)
}

func (h *Handlers) saveSession(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if err := h.sessions.Save(r.Context(), w, sess); err != nil {
		logger.ErrorContext(r.Context(), "Failed to save session", "error", err)
	}
}

func roleHome(role string) string {
	if role == domain.RoleAdmin {
		return "/admin/dashboard"
	}
	return "/"
}
