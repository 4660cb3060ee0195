package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_reviews/internal/domain"
)

func fixedVerifier(secret string, at time.Time) *Verifier {
	v := NewVerifier(secret, "catalog-reviews")
	v.now = func() time.Time { return at }
	return v
}

func TestSignParse_RoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)
	v := fixedVerifier("s3cret", now)
	avatar := "https://example.test/a.png"

	tok, err := v.Sign(domain.User{ID: "user1", Username: "techreviewer", Avatar: &avatar}, time.Hour)
	require.NoError(t, err)

	u, err := v.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user1", u.ID)
	assert.Equal(t, "techreviewer", u.Username)
	require.NotNil(t, u.Avatar)
	assert.Equal(t, avatar, *u.Avatar)
}

func TestParse_Rejects(t *testing.T) {
	now := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)
	v := fixedVerifier("s3cret", now)

	expired, err := v.Sign(domain.User{ID: "u"}, -time.Minute)
	require.NoError(t, err)
	_, err = v.Parse(expired)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	other, err := fixedVerifier("other", now).Sign(domain.User{ID: "u"}, time.Hour)
	require.NoError(t, err)
	_, err = v.Parse(other)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	noSubject, err := v.Sign(domain.User{}, time.Hour)
	require.NoError(t, err)
	_, err = v.Parse(noSubject)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = NewVerifier("", "x").Parse("anything")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMiddleware(t *testing.T) {
	v := NewVerifier("s3cret", "catalog-reviews")
	tok, err := v.Sign(domain.User{ID: "user2", Username: "musiclover"}, time.Hour)
	require.NoError(t, err)

	var seen *domain.User
	h := v.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	// anonymous
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Nil(t, seen)

	// valid token
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.NotNil(t, seen)
	assert.Equal(t, "user2", seen.ID)

	// garbage
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
	var prob struct {
		Title  string `json:"title"`
		Status int    `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &prob))
	assert.Equal(t, "Unauthorized", prob.Title)
	assert.Equal(t, http.StatusUnauthorized, prob.Status)

	// wrong scheme
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
}
