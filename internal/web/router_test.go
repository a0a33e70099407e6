package web

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/logger"

	"github.com/bfqc/courtres/internal/db"
	"github.com/bfqc/courtres/internal/handlers"
	"github.com/bfqc/courtres/internal/services"
)

// Wednesday 2026-03-11 10:30 UTC.
var clock = time.Date(2026, 3, 11, 10, 30, 0, 0, time.UTC)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "court.db"), logger.Default.LogMode(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(conn) }) //nolint:errcheck

	engine := services.NewEngine(db.NewReservationStore(conn), time.UTC, func() time.Time { return clock })
	auth := services.NewAuth(db.NewAdminStore(conn), bcrypt.MinCost)
	_, err = auth.EnsureAdmin(context.Background(), "court_admin", "s3cret")
	require.NoError(t, err)

	sessions := handlers.NewSessions([]byte("test-secret"), "admin_session", time.Hour, false)
	h := handlers.New(engine, auth, sessions, zerolog.Nop(), "Test Court", nil)
	return Router(h, Options{})
}

func do(t *testing.T, r http.Handler, method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func booking(date, slot, name, contact string) url.Values {
	return url.Values{"date": {date}, "time_slot": {slot}, "name": {name}, "contact": {contact}}
}

func login(t *testing.T, r http.Handler) *http.Cookie {
	t.Helper()
	rec := do(t, r, http.MethodPost, "/login", url.Values{"username": {"court_admin"}, "password": {"s3cret"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "admin_session" {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func TestRouterHealthz(t *testing.T) {
	r := newTestRouter(t)
	rec := do(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRouterHome(t *testing.T) {
	r := newTestRouter(t)
	rec := do(t, r, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Court Schedule")
	assert.Contains(t, body, "06:00")
	assert.Contains(t, body, "19:00")
	assert.Contains(t, body, `min="2026-03-11"`)
}

func TestRouterBookingFlow(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/", booking("2026-03-12", "08:00", "John Smith", "555-1111"))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?ok=booked", rec.Header().Get("Location"))

	// The public grid shows the masked name only.
	body := do(t, r, http.MethodGet, rec.Header().Get("Location"), nil).Body.String()
	assert.Contains(t, body, "Reservation confirmed.")
	assert.Contains(t, body, "John S")
	assert.NotContains(t, body, "John Smith")
	assert.NotContains(t, body, "555-1111")

	rec = do(t, r, http.MethodPost, "/", booking("2026-03-12", "08:00", "Bob", "555-2222"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "This time slot is already reserved. Please choose another.")

	form := booking("2026-03-12", "09:00", "John Smith", "555-1111")
	form.Set("week_offset", "1")
	rec = do(t, r, http.MethodPost, "/", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?ok=booked&week_offset=1", rec.Header().Get("Location"))

	rec = do(t, r, http.MethodPost, "/", booking("2026-03-12", "10:00", "John Smith", "555-1111"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "You can only book up to 2 hours per day.")

	rec = do(t, r, http.MethodPost, "/", booking("2026-03-10", "10:00", "Ana", "555-3333"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cannot reserve past dates.")
}

func TestRouterAdminRequiresLogin(t *testing.T) {
	r := newTestRouter(t)
	for _, target := range []string{"/admin", "/delete/1", "/admin/reservations.xlsx", "/admin/reservations/1/qr.png"} {
		rec := do(t, r, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code, target)
		assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/login?next="), target)
	}
	rec := do(t, r, http.MethodPost, "/edit_modal", url.Values{"res_id": {"1"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRouterLoginFailure(t *testing.T) {
	r := newTestRouter(t)
	rec := do(t, r, http.MethodPost, "/login", url.Values{"username": {"court_admin"}, "password": {"nope"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials.")
	assert.Empty(t, rec.Result().Cookies())
}

func TestRouterAdminFlow(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusSeeOther, do(t, r, http.MethodPost, "/", booking("2026-03-12", "08:00", "John Smith", "555-1111")).Code)
	require.Equal(t, http.StatusSeeOther, do(t, r, http.MethodPost, "/", booking("2026-03-12", "09:00", "Bob Lee", "555-2222")).Code)
	cookie := login(t, r)

	rec := do(t, r, http.MethodGet, "/admin", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "John Smith")
	assert.Contains(t, rec.Body.String(), "555-1111")
	// Each edit form marks the slots held by the other reservation.
	assert.Equal(t, 1, strings.Count(rec.Body.String(), ">09:00 (taken)</option>"))
	assert.Equal(t, 1, strings.Count(rec.Body.String(), ">08:00 (taken)</option>"))
	assert.NotContains(t, rec.Body.String(), ">10:00 (taken)")

	// Admins see full details on the public grid too.
	assert.Contains(t, do(t, r, http.MethodGet, "/", nil, cookie).Body.String(), "555-1111")

	edit := booking("2026-03-12", "09:00", "John Smith", "555-1111")
	edit.Set("res_id", "1")
	rec = do(t, r, http.MethodPost, "/edit_modal", edit, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin?error=slot_taken", rec.Header().Get("Location"))

	edit.Set("time_slot", "11:00")
	edit.Set("with_coaching", "yes")
	rec = do(t, r, http.MethodPost, "/edit_modal", edit, cookie)
	assert.Equal(t, "/admin?ok=updated", rec.Header().Get("Location"))

	edit.Set("date", "2026-03-11")
	edit.Set("time_slot", "07:00")
	rec = do(t, r, http.MethodPost, "/edit_modal", edit, cookie)
	assert.Equal(t, "/admin?error=past_slot", rec.Header().Get("Location"))

	rec = do(t, r, http.MethodGet, "/admin/reservations/1/qr.png", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = do(t, r, http.MethodGet, "/admin/reservations.xlsx", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Upcoming")
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rec = do(t, r, http.MethodGet, "/delete/1", nil, cookie)
	assert.Equal(t, "/admin?ok=deleted", rec.Header().Get("Location"))
	rec = do(t, r, http.MethodGet, "/delete/1", nil, cookie)
	assert.Equal(t, "/admin?error=not_found", rec.Header().Get("Location"))
	rec = do(t, r, http.MethodGet, "/delete/999", nil, cookie)
	assert.Equal(t, "/admin?error=not_found", rec.Header().Get("Location"))

	rec = do(t, r, http.MethodGet, "/admin?error=not_found", nil, cookie)
	assert.Contains(t, rec.Body.String(), "Reservation not found.")
}

func TestRouterLogout(t *testing.T) {
	r := newTestRouter(t)
	cookie := login(t, r)

	rec := do(t, r, http.MethodGet, "/logout", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)

	rec = do(t, r, http.MethodGet, "/login", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code, "logged-in admins skip the login form")
	rec = do(t, r, http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterLoginNextStaysLocal(t *testing.T) {
	r := newTestRouter(t)
	for next, want := range map[string]string{
		"/\t/evil.example":  "/admin",
		"/\n/evil.example":  "/admin",
		"//evil.example":    "/admin",
		"/admin?ok=updated": "/admin?ok=updated",
	} {
		rec := do(t, r, http.MethodPost, "/login", url.Values{
			"username": {"court_admin"},
			"password": {"s3cret"},
			"next":     {next},
		})
		require.Equal(t, http.StatusSeeOther, rec.Code, "next=%q", next)
		assert.Equal(t, want, rec.Header().Get("Location"), "next=%q", next)
	}
}
