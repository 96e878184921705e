package web

import (
	"errors"
	"net/http"

	"github.com/TheoInCodeLand/casalinga-tours/internal/domain"
	"github.com/TheoInCodeLand/casalinga-tours/internal/platform/session"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/logger"
)

func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "pages/login", "Login", nil)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if !h.limiter.Allow(r.Context(), "login:"+clientIP(r)) {
		h.render(w, r, http.StatusTooManyRequests, "pages/login", "Login", map[string]any{
			"Error": "Too many login attempts. Please try again later.",
			"Email": r.PostFormValue("email"),
		})
		return
	}

	req := &domain.LoginRequest{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	user, err := h.auth.Login(r.Context(), req)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			logger.ErrorContext(r.Context(), "Login failed", "error", err)
		}
		h.render(w, r, http.StatusUnauthorized, "pages/login", "Login", map[string]any{
			"Error": "Invalid email or password.",
			"Email": req.Email,
		})
		return
	}

	sess := session.FromRequest(r)
	sess.SetUser(user.ID, user.Name, user.Role)

	target := sess.ReturnTo
	sess.ReturnTo = ""
	if target == "" {
		target = roleHome(user.Role)
	}

	h.saveSession(w, r, sess)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "pages/register", "Register", nil)
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	req := &domain.RegisterRequest{
		Name:            r.PostFormValue("name"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}

	user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		h.render(w, r, http.StatusUnprocessableEntity, "pages/register", "Register", map[string]any{
			"Error": registerErrorMessage(r, err),
			"Name":  req.Name,
			"Email": req.Email,
		})
		return
	}

	// Log the new user straight in.
	sess := session.FromRequest(r)
	sess.SetUser(user.ID, user.Name, user.Role)
	sess.SetFlash("success", "Registration successful! Welcome to Casalinga Tours.")
	h.saveSession(w, r, sess)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func registerErrorMessage(r *http.Request, err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return "All fields are required."
	case errors.Is(err, domain.ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, domain.ErrPasswordTooShort):
		return "Password must be at least 6 characters long."
	case errors.Is(err, domain.ErrEmailTaken):
		return "An account with that email already exists."
	default:
		logger.ErrorContext(r.Context(), "Registration failed", "error", err)
		return "Something went wrong. Please try again."
	}
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromRequest(r)
	if err := h.sessions.Destroy(r.Context(), w, sess); err != nil {
		logger.ErrorContext(r.Context(), "Failed to destroy session", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
