package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/TheoInCodeLand/casalinga-tours/pkg/middleware"
)

//go:embed static
var staticFS embed.FS

// NewRouter wires every route through the session middleware and the role
// gates described by the site's access rules.
func NewRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Health)
	r.Use(h.sessions.Middleware)

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// Public pages
	r.Get("/", h.Home)
	r.Get("/about", h.About)
	r.Get("/blog", h.Blog)
	r.Get("/tours", h.Tours)
	r.Get("/tours/{id}", h.TourDetail)
	r.Get("/contact", h.ContactPage)
	r.Post("/contact", h.Contact)

	// Auth pages
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.redirectIfAuthenticated)
			r.Get("/login", h.LoginPage)
			r.Post("/login", h.Login)
			r.Get("/register", h.RegisterPage)
			r.Post("/register", h.Register)
		})
		r.Get("/logout", h.Logout)
	})

	// Authenticated pages
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/user/dashboard", h.UserDashboard)
		r.Get("/bookings/new", h.NewBooking)
		r.Post("/bookings/create", h.CreateBooking)
		r.Get("/payments/new", h.NewPayment)
		r.Post("/payments/process", h.ProcessPayment)
	})

	// Customer-only pages
	r.Group(func(r chi.Router) {
		r.Use(h.requireCustomer)
		r.Get("/bookings/my-bookings", h.MyBookings)
	})

	// Admin area
	r.Route("/admin", func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Get("/dashboard", h.AdminDashboard)

		r.Get("/tours", h.AdminTours)
		r.Get("/tours/new", h.AdminNewTour)
		r.Post("/tours", h.AdminCreateTour)
		r.Get("/tours/{id}/edit", h.AdminEditTour)
		r.Post("/tours/{id}", h.AdminUpdateTour)
		r.Post("/tours/{id}/delete", h.AdminDeleteTour)

		r.Get("/bookings", h.AdminBookings)
		r.Post("/bookings/{id}/status", h.AdminUpdateBookingStatus)

		r.Get("/users", h.AdminUsers)
		r.Get("/users/{id}", h.AdminUserDetail)
		r.Post("/users/{id}/make-admin", h.AdminMakeAdmin)
		r.Post("/users/{id}/delete", h.AdminDeleteUser)
	})

	r.NotFound(h.NotFound)

	return r
}
