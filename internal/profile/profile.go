// Package profile identifies a browser across visits with a signed cookie.
// The cookie carries an opaque profile ID only; preferences live server side.
package profile

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	CookieName = "tv_profile"
	cookieTTL  = 365 * 24 * time.Hour
	issuer     = "trending-video"
)

var ErrInvalidProfile = errors.New("invalid profile token")

type Claims struct {
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	secure bool
	now    func() time.Time
}

func NewIssuer(secret []byte, secure bool) *Issuer {
	return &Issuer{secret: secret, secure: secure, now: time.Now}
}

// RandomSecret is used when no PROFILE_SECRET is configured. Profiles then
// do not survive a restart.
func RandomSecret() []byte {
	return []byte(uuid.NewString() + uuid.NewString())
}

func (i *Issuer) Sign(id string) (string, error) {
	now := i.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cookieTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Parse validates the token and returns the profile ID it carries.
func (i *Issuer) Parse(raw string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidProfile
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", ErrInvalidProfile
	}
	return claims.Subject, nil
}

// Ensure returns the request's profile ID, issuing a new profile and cookie
// when the request has none or an invalid one.
func (i *Issuer) Ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	if c, err := r.Cookie(CookieName); err == nil {
		if id, err := i.Parse(c.Value); err == nil {
			return id, nil
		}
	}

	id := uuid.NewString()
	token, err := i.Sign(id)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   i.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

type ctxKey struct{}

func (i *Issuer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := i.Ensure(w, r)
		if err != nil {
			http.Error(w, "profile error", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
	})
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}
