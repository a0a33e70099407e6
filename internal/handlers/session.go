package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bfqc/courtres/internal/services"
)

const sessionIssuer = "courtres"

// Viewer is the request-scoped authorization context.
type Viewer struct {
	IsAdmin  bool
	Username string
}

type viewerKey struct{}

func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

// ViewerFrom returns the anonymous viewer when none was attached.
func ViewerFrom(ctx context.Context) Viewer {
	v, _ := ctx.Value(viewerKey{}).(Viewer)
	return v
}

type sessionClaims struct {
	Admin bool `json:"adm"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies the signed admin session cookie.
type Sessions struct {
	secret []byte
	cookie string
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewSessions(secret []byte, cookieName string, ttl time.Duration, secure bool) *Sessions {
	return &Sessions{secret: secret, cookie: cookieName, ttl: ttl, secure: secure, now: time.Now}
}

func (s *Sessions) Issue(w http.ResponseWriter, username string) error {
	now := s.now()
	claims := sessionClaims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    sessionIssuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  now.Add(s.ttl),
	})
	return nil
}

func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// Read decodes the session cookie. Anything but a valid, unexpired admin
// token yields ErrAuthorization.
func (s *Sessions) Read(r *http.Request) (Viewer, error) {
	c, err := r.Cookie(s.cookie)
	if err != nil || c.Value == "" {
		return Viewer{}, services.ErrAuthorization
	}
	var claims sessionClaims
	_, err = jwt.ParseWithClaims(c.Value, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !claims.Admin {
		return Viewer{}, errors.Join(services.ErrAuthorization, err)
	}
	return Viewer{IsAdmin: true, Username: claims.Subject}, nil
}

// LoadViewer attaches the caller's Viewer to the request context.
func (s *Sessions) LoadViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, _ := s.Read(r)
		next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), v)))
	})
}

// RequireAdmin is middleware: blocks access unless logged in
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ViewerFrom(r.Context()).IsAdmin {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
