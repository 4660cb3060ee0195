// Package auth turns bearer tokens into the domain's notion of the current user.
// It is a convenience for identifying callers, not a security boundary.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"catalog_reviews/internal/domain"
)

type claims struct {
	jwt.RegisteredClaims
	Username string  `json:"username"`
	Avatar   *string `json:"avatar,omitempty"`
}

type Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer, now: time.Now}
}

// Sign issues a token for u valid for ttl.
func (v *Verifier) Sign(u domain.User, ttl time.Duration) (string, error) {
	if len(v.secret) == 0 {
		return "", errors.New("auth: signing secret is empty")
	}
	now := v.now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: u.Username,
		Avatar:   u.Avatar,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(v.secret)
}

// Parse validates raw and returns the user it names.
func (v *Verifier) Parse(raw string) (*domain.User, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("%w: no signing secret configured", domain.ErrUnauthorized)
	}
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if strings.TrimSpace(c.Subject) == "" {
		return nil, fmt.Errorf("%w: token has no subject", domain.ErrUnauthorized)
	}
	return &domain.User{ID: c.Subject, Username: c.Username, Avatar: c.Avatar}, nil
}

type ctxKey struct{}

// Middleware resolves the bearer token, if any, into a *domain.User on the
// request context. Requests without a token pass through anonymously; a
// malformed or expired token is rejected with 401.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if h == "" {
			next.ServeHTTP(w, r)
			return
		}
		raw, ok := strings.CutPrefix(h, "Bearer ")
		if !ok {
			reject(w, "expected a Bearer token")
			return
		}
		u, err := v.Parse(strings.TrimSpace(raw))
		if err != nil {
			reject(w, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

// reject answers 401 with the same problem+json body the API uses elsewhere.
func reject(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(http.StatusUnauthorized)
	body := map[string]any{"type": "about:blank", "title": "Unauthorized", "status": http.StatusUnauthorized, "detail": detail}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFrom returns the authenticated user or nil.
func UserFrom(ctx context.Context) *domain.User {
	u, _ := ctx.Value(ctxKey{}).(*domain.User)
	return u
}
