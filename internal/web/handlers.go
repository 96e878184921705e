// Package web holds the HTTP handlers, route gates and router for the
// server-rendered site.
package web

import (
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/TheoInCodeLand/casalinga-tours/internal/platform/mailer"
	"github.com/TheoInCodeLand/casalinga-tours/internal/platform/ratelimit"
	"github.com/TheoInCodeLand/casalinga-tours/internal/platform/session"
	"github.com/TheoInCodeLand/casalinga-tours/internal/service"
	"github.com/TheoInCodeLand/casalinga-tours/internal/web/view"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/events"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/logger"
)

type Handlers struct {
	auth     service.AuthService
	tours    service.TourService
	bookings service.BookingService
	payments service.PaymentService
	users    service.UserService
	sessions *session.Manager
	renderer view.Renderer
	mail     mailer.Service
	limiter  ratelimit.Limiter
	eventBus events.Publisher
}

func NewHandlers(
	auth service.AuthService,
	tours service.TourService,
	bookings service.BookingService,
	payments service.PaymentService,
	users service.UserService,
	sessions *session.Manager,
	renderer view.Renderer,
	mail mailer.Service,
	limiter ratelimit.Limiter,
	eventBus events.Publisher,
) *Handlers {
	return &Handlers{
		auth:     auth,
		tours:    tours,
		bookings: bookings,
		payments: payments,
		users:    users,
		sessions: sessions,
		renderer: renderer,
		mail:     mail,
		limiter:  limiter,
		eventBus: eventBus,
	}
}

// render builds the page envelope from the session, consuming any pending
// flash message so it shows exactly once.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, page, title string, content map[string]any) {
	sess := session.FromRequest(r)

	data := view.Data{
		Title:   title,
		Flash:   h.sessions.PopFlash(r.Context(), w, sess),
		Content: content,
	}
	if sess.IsAuthenticated() {
		data.User = view.User{
			IsAuthenticated: true,
			ID:              sess.UserID,
			Name:            sess.UserName,
			Role:            sess.UserRole,
		}
	}

	if err := h.renderer.Render(w, status, page, data); err != nil {
		logger.ErrorContext(r.Context(), "Failed to render page", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// redirectWithFlash stores a one-shot message and sends the redirect.
func (h *Handlers) redirectWithFlash(w http.ResponseWriter, r *http.Request, target, flashType, text string) {
	sess := session.FromRequest(r)
	sess.SetFlash(flashType, text)
	if err := h.sessions.Save(r.Context(), w, sess); err != nil {
		logger.ErrorContext(r.Context(), "Failed to save session", "error", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// pathID parses a numeric chi route parameter.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// clientIP prefers the proxy header the deployment sets, falling back to the
// socket address.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
