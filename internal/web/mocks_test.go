package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TheoInCodeLand/casalinga-tours/internal/domain"
	"github.com/TheoInCodeLand/casalinga-tours/internal/platform/session"
	"github.com/TheoInCodeLand/casalinga-tours/internal/service"
	"github.com/TheoInCodeLand/casalinga-tours/internal/web"
	"github.com/TheoInCodeLand/casalinga-tours/internal/web/view"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/events"
)

const testCookie = "test_session"

// renderRecorder captures what a handler asked the view layer to render.
type renderRecorder struct {
	mu     sync.Mutex
	page   string
	status int
	data   view.Data
}

func (r *renderRecorder) Render(w http.ResponseWriter, status int, page string, data view.Data) error {
	r.mu.Lock()
	r.page, r.status, r.data = page, status, data
	r.mu.Unlock()
	w.WriteHeader(status)
	return nil
}

func (r *renderRecorder) last() (string, int, view.Data) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page, r.status, r.data
}

func (r *renderRecorder) content(t *testing.T) map[string]any {
	t.Helper()
	_, _, data := r.last()
	if data.Content == nil {
		return map[string]any{}
	}
	m, ok := data.Content.(map[string]any)
	if !ok {
		t.Fatalf("content is %T, not a map", data.Content)
	}
	return m
}

// Service stubs in the same function-field style as the repository stubs.

type authServiceStub struct {
	registerFn func(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	loginFn    func(ctx context.Context, req *domain.LoginRequest) (*domain.User, error)
}

func (s *authServiceStub) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	if s.registerFn == nil {
		return nil, domain.ErrMissingFields
	}
	return s.registerFn(ctx, req)
}

func (s *authServiceStub) Login(ctx context.Context, req *domain.LoginRequest) (*domain.User, error) {
	if s.loginFn == nil {
		return nil, domain.ErrInvalidCredentials
	}
	return s.loginFn(ctx, req)
}

func (s *authServiceStub) GetUser(context.Context, int64) (*domain.User, error) { return nil, nil }

func (s *authServiceStub) EnsureAdmin(context.Context, string, string, string) error { return nil }

type tourServiceStub struct {
	listAvailableFn func(ctx context.Context, limit int) ([]domain.Tour, error)
	getAvailableFn  func(ctx context.Context, id int64) (*domain.Tour, error)
	listAllFn       func(ctx context.Context) ([]domain.Tour, error)
	getFn           func(ctx context.Context, id int64) (*domain.Tour, error)
	createFn        func(ctx context.Context, in *domain.TourInput) (*domain.Tour, error)
	updateFn        func(ctx context.Context, id int64, in *domain.TourInput) (*domain.Tour, error)
	deleteFn        func(ctx context.Context, id int64) error
}

func (s *tourServiceStub) ListAvailable(ctx context.Context, limit int) ([]domain.Tour, error) {
	if s.listAvailableFn == nil {
		return nil, nil
	}
	return s.listAvailableFn(ctx, limit)
}

func (s *tourServiceStub) GetAvailable(ctx context.Context, id int64) (*domain.Tour, error) {
	if s.getAvailableFn == nil {
		return nil, nil
	}
	return s.getAvailableFn(ctx, id)
}

func (s *tourServiceStub) ListAll(ctx context.Context) ([]domain.Tour, error) {
	if s.listAllFn == nil {
		return nil, nil
	}
	return s.listAllFn(ctx)
}

func (s *tourServiceStub) Get(ctx context.Context, id int64) (*domain.Tour, error) {
	if s.getFn == nil {
		return nil, nil
	}
	return s.getFn(ctx, id)
}

func (s *tourServiceStub) Create(ctx context.Context, in *domain.TourInput) (*domain.Tour, error) {
	if s.createFn == nil {
		return nil, nil
	}
	return s.createFn(ctx, in)
}

func (s *tourServiceStub) Update(ctx context.Context, id int64, in *domain.TourInput) (*domain.Tour, error) {
	if s.updateFn == nil {
		return nil, nil
	}
	return s.updateFn(ctx, id, in)
}

func (s *tourServiceStub) Delete(ctx context.Context, id int64) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}

type bookingServiceStub struct {
	createFn         func(ctx context.Context, userID int64, req *domain.BookingRequest) (*domain.Booking, error)
	listForUserFn    func(ctx context.Context, userID int64, limit int) ([]domain.BookingDetail, error)
	listAllFn        func(ctx context.Context) ([]domain.BookingDetail, error)
	updateStatusFn   func(ctx context.Context, id int64, status string) error
	dashboardStatsFn func(ctx context.Context) service.DashboardStats
}

func (s *bookingServiceStub) Create(ctx context.Context, userID int64, req *domain.BookingRequest) (*domain.Booking, error) {
	if s.createFn == nil {
		return nil, nil
	}
	return s.createFn(ctx, userID, req)
}

func (s *bookingServiceStub) ListForUser(ctx context.Context, userID int64, limit int) ([]domain.BookingDetail, error) {
	if s.listForUserFn == nil {
		return nil, nil
	}
	return s.listForUserFn(ctx, userID, limit)
}

func (s *bookingServiceStub) ListAll(ctx context.Context) ([]domain.BookingDetail, error) {
	if s.listAllFn == nil {
		return nil, nil
	}
	return s.listAllFn(ctx)
}

func (s *bookingServiceStub) UpdateStatus(ctx context.Context, id int64, status string) error {
	if s.updateStatusFn == nil {
		return nil
	}
	return s.updateStatusFn(ctx, id, status)
}

func (s *bookingServiceStub) DashboardStats(ctx context.Context) service.DashboardStats {
	if s.dashboardStatsFn == nil {
		return service.DashboardStats{}
	}
	return s.dashboardStatsFn(ctx)
}

type paymentServiceStub struct {
	detailsFn func(ctx context.Context, bookingID, userID int64) (*domain.BookingDetail, decimal.Decimal, error)
	processFn func(ctx context.Context, bookingID, userID int64) (*domain.Payment, error)
}

func (s *paymentServiceStub) Details(ctx context.Context, bookingID, userID int64) (*domain.BookingDetail, decimal.Decimal, error) {
	if s.detailsFn == nil {
		return nil, decimal.Zero, domain.ErrNotFound
	}
	return s.detailsFn(ctx, bookingID, userID)
}

func (s *paymentServiceStub) Process(ctx context.Context, bookingID, userID int64) (*domain.Payment, error) {
	if s.processFn == nil {
		return nil, domain.ErrNotFound
	}
	return s.processFn(ctx, bookingID, userID)
}

type userServiceStub struct {
	listFn      func(ctx context.Context) ([]domain.User, error)
	getFn       func(ctx context.Context, id int64) (*domain.User, error)
	makeAdminFn func(ctx context.Context, id int64) error
	deleteFn    func(ctx context.Context, id, actorID int64) error
}

func (s *userServiceStub) List(ctx context.Context) ([]domain.User, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s *userServiceStub) Get(ctx context.Context, id int64) (*domain.User, error) {
	if s.getFn == nil {
		return nil, nil
	}
	return s.getFn(ctx, id)
}

func (s *userServiceStub) MakeAdmin(ctx context.Context, id int64) error {
	if s.makeAdminFn == nil {
		return nil
	}
	return s.makeAdminFn(ctx, id)
}

func (s *userServiceStub) Delete(ctx context.Context, id, actorID int64) error {
	if s.deleteFn == nil {
		if id == actorID {
			return domain.ErrSelfDelete
		}
		return nil
	}
	return s.deleteFn(ctx, id, actorID)
}

type mailerStub struct {
	mu    sync.Mutex
	sent  int
	err   error
	calls []string
}

func (s *mailerStub) SendContactMessage(fromName, fromEmail, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent++
	s.calls = append(s.calls, fromEmail)
	return nil
}

// testApp bundles the router with everything a test needs to poke at.
type testApp struct {
	handler http.Handler
	store   *session.MemoryStore
	mgr     *session.Manager
	rend    *renderRecorder
	auth    *authServiceStub
	tours   *tourServiceStub
	book    *bookingServiceStub
	pay     *paymentServiceStub
	users   *userServiceStub
	mail    *mailerStub
}

type allowAll struct{}

func (allowAll) Allow(context.Context, string) bool { return true }

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	app := &testApp{
		store: session.NewMemoryStore(),
		rend:  &renderRecorder{},
		auth:  &authServiceStub{},
		tours: &tourServiceStub{},
		book:  &bookingServiceStub{},
		pay:   &paymentServiceStub{},
		users: &userServiceStub{},
		mail:  &mailerStub{},
	}
	app.mgr = session.NewManager(app.store, testCookie, time.Hour, false)

	h := web.NewHandlers(app.auth, app.tours, app.book, app.pay, app.users,
		app.mgr, app.rend, app.mail, allowAll{}, events.NewLogEventBus())
	app.handler = web.NewRouter(h)
	return app
}

// seedSession stores a session and returns the matching cookie.
func (app *testApp) seedSession(t *testing.T, sess *session.Session) *http.Cookie {
	t.Helper()
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if err := app.store.Save(context.Background(), sess, time.Hour); err != nil {
		t.Fatal(err)
	}
	return &http.Cookie{Name: testCookie, Value: sess.ID}
}

func (app *testApp) customerCookie(t *testing.T) *http.Cookie {
	t.Helper()
	sess := &session.Session{}
	sess.SetUser(9, "Thandi", domain.RoleCustomer)
	return app.seedSession(t, sess)
}

func (app *testApp) adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	sess := &session.Session{}
	sess.SetUser(1, "Site Admin", domain.RoleAdmin)
	return app.seedSession(t, sess)
}

func (app *testApp) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	return rec
}

// responseSession loads the session referenced by the response's Set-Cookie
// header, falling back to the request cookie when none was set.
func (app *testApp) responseSession(t *testing.T, rec *httptest.ResponseRecorder, req *http.Request) *session.Session {
	t.Helper()

	id := ""
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie && c.MaxAge >= 0 {
			id = c.Value
		}
	}
	if id == "" {
		if c, err := req.Cookie(testCookie); err == nil {
			id = c.Value
		}
	}
	if id == "" {
		t.Fatal("no session cookie on request or response")
	}

	sess, err := app.store.Get(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if sess == nil {
		t.Fatalf("session %q not in store", id)
	}
	return sess
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantLocation string) {
	t.Helper()
	if rec.Code != wantStatus {
		t.Fatalf("status = %d, want %d", rec.Code, wantStatus)
	}
	if got := rec.Header().Get("Location"); got != wantLocation {
		t.Fatalf("Location = %q, want %q", got, wantLocation)
	}
}

func assertFlash(t *testing.T, sess *session.Session, wantType, wantText string) {
	t.Helper()
	if sess.Flash == nil {
		t.Fatal("no flash message in session")
	}
	if sess.Flash.Type != wantType || sess.Flash.Text != wantText {
		t.Fatalf("flash = %q/%q, want %q/%q", sess.Flash.Type, sess.Flash.Text, wantType, wantText)
	}
}
