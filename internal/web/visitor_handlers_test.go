package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/TheoInCodeLand/casalinga-tours/internal/domain"
)

func TestHomeShowsFeaturedTours(t *testing.T) {
	app := newTestApp(t)

	var gotLimit int
	app.tours.listAvailableFn = func(_ context.Context, limit int) ([]domain.Tour, error) {
		gotLimit = limit
		return []domain.Tour{{ID: 1, Title: "Wellness Retreat", Available: true}}, nil
	}

	rec := app.do(t, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotLimit != 6 {
		t.Errorf("home listed with limit %d, want 6", gotLimit)
	}
	page, _, _ := app.rend.last()
	if page != "pages/home" {
		t.Errorf("page = %q", page)
	}
}

func TestTourDetailRedirectsWhenMissing(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/tours/404", nil)
	rec := app.do(t, req)

	assertRedirect(t, rec, http.StatusSeeOther, "/tours")
	sess := app.responseSession(t, rec, req)
	assertFlash(t, sess, "error", "Tour not found.")
}

func TestTourDetailRendersAvailableTour(t *testing.T) {
	app := newTestApp(t)
	app.tours.getAvailableFn = func(_ context.Context, id int64) (*domain.Tour, error) {
		return &domain.Tour{ID: id, Title: "Wellness Retreat", Available: true}, nil
	}

	rec := app.do(t, httptest.NewRequest(http.MethodGet, "/tours/3", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	page, _, _ := app.rend.last()
	if page != "pages/tour-detail" {
		t.Errorf("page = %q", page)
	}
}

func TestContactSendsMailAndFlashes(t *testing.T) {
	app := newTestApp(t)

	req := postForm("/contact", url.Values{
		"name":    {"Thandi"},
		"email":   {"thandi@example.com"},
		"message": {"Do you run tours in July?"},
	})
	rec := app.do(t, req)

	assertRedirect(t, rec, http.StatusSeeOther, "/contact")
	if app.mail.sent != 1 {
		t.Errorf("messages sent = %d", app.mail.sent)
	}
	sess := app.responseSession(t, rec, req)
	assertFlash(t, sess, "success", "Thank you for your message! We will get back to you soon.")
}

func TestContactRejectsEmptyFields(t *testing.T) {
	app := newTestApp(t)

	req := postForm("/contact", url.Values{"name": {"Thandi"}})
	rec := app.do(t, req)

	assertRedirect(t, rec, http.StatusSeeOther, "/contact")
	if app.mail.sent != 0 {
		t.Error("incomplete form must not send mail")
	}
	sess := app.responseSession(t, rec, req)
	assertFlash(t, sess, "error", "Please fill in all fields.")
}

func TestUserDashboardListsRecentBookings(t *testing.T) {
	app := newTestApp(t)

	var gotUserID int64
	var gotLimit int
	app.book.listForUserFn = func(_ context.Context, userID int64, limit int) ([]domain.BookingDetail, error) {
		gotUserID, gotLimit = userID, limit
		return nil, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/user/dashboard", nil)
	req.AddCookie(app.customerCookie(t))
	rec := app.do(t, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotUserID != 9 || gotLimit != 5 {
		t.Errorf("listed bookings for user %d with limit %d", gotUserID, gotLimit)
	}
}
