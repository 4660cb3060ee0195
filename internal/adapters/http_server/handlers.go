package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"catalog_reviews/internal/adapters/auth"
	"catalog_reviews/internal/app"
	"catalog_reviews/internal/domain"
)

const maxBodyBytes = 16 << 10

type Handlers struct {
	Reviews *app.ReviewService
	Catalog *app.CatalogService
	Auth    *auth.Verifier

	// WriteLimit wraps the POST routes; nil leaves them unthrottled.
	WriteLimit func(http.Handler) http.Handler
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type itemsResponse[T any] struct {
	Items []T `json:"items"`
}

type reviewsResponse struct {
	Items   []domain.Review   `json:"items"`
	Filters domain.FilterSort `json:"filters"`
}

type submitRequest struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		if h.Auth != nil {
			r.Use(h.Auth.Middleware)
		}
		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)
		r.Get("/products/{id}/reviews", h.listReviews)
		r.Get("/products/{id}/reviews/distribution", h.distribution)
		r.Get("/dashboard", h.dashboard)

		r.Group(func(r chi.Router) {
			if h.WriteLimit != nil {
				r.Use(h.WriteLimit)
			}
			r.Post("/products/{id}/reviews", h.submitReview)
			r.Post("/reviews/{id}/helpful", h.markHelpful)
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service errors onto problem responses. Storage failures are
// logged with their cause and surfaced generically.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeProblem(w, http.StatusUnprocessableEntity, "Validation Failed", ve.Error())
	case errors.Is(err, domain.ErrInvalidRating):
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid Rating", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "sign in to continue")
	case errors.Is(err, domain.ErrAlreadyVoted):
		writeProblem(w, http.StatusConflict, "Already Voted", "this review is already marked helpful")
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "resource not found")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "request failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable writes v as JSON with a weak ETag and honours If-None-Match.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "encode failed")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) listProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Catalog.ListProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, itemsResponse[domain.Product]{Items: ps})
}

func (h *Handlers) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.Catalog.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, p)
}

// parseFilterSort reads ?rating= and ?sort=.
func parseFilterSort(r *http.Request) (domain.FilterSort, error) {
	var fs domain.FilterSort
	q := r.URL.Query()
	if rs := strings.TrimSpace(q.Get("rating")); rs != "" {
		n, err := strconv.Atoi(rs)
		if err != nil || !domain.ValidRating(n) {
			return fs, &domain.ValidationError{Field: "rating", Reason: "must be an integer between 1 and 5"}
		}
		fs.Rating = &n
	}
	k, err := domain.ParseSortKey(strings.TrimSpace(q.Get("sort")))
	if err != nil {
		return fs, err
	}
	fs.SortBy = k
	return fs, nil
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	fs, err := parseFilterSort(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	rs, err := h.Reviews.List(r.Context(), chi.URLParam(r, "id"), fs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, reviewsResponse{Items: rs, Filters: fs})
}

func (h *Handlers) distribution(w http.ResponseWriter, r *http.Request) {
	d, err := h.Reviews.Distribution(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, d)
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Catalog.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, d)
}

func (h *Handlers) submitReview(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected {rating, title, comment}")
		return
	}

	draft := domain.ReviewDraft{
		ProductID: chi.URLParam(r, "id"),
		Rating:    req.Rating,
		Title:     req.Title,
		Body:      req.Comment,
	}
	rv, err := h.Reviews.Submit(r.Context(), draft, auth.UserFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	body, err := json.Marshal(rv)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/products/"+rv.ProductID+"/reviews")
	writeJSON(w, http.StatusCreated, body)
}

// voterFor prefers the authenticated user and falls back to the client's
// session header.
func voterFor(r *http.Request) domain.Voter {
	if u := auth.UserFrom(r.Context()); u != nil && u.ID != "" {
		return domain.Voter{ID: "user:" + u.ID}
	}
	if sid := strings.TrimSpace(r.Header.Get("X-Session-ID")); sid != "" {
		return domain.Voter{ID: "session:" + sid}
	}
	return domain.Voter{}
}

func (h *Handlers) markHelpful(w http.ResponseWriter, r *http.Request) {
	rv, err := h.Reviews.MarkHelpful(r.Context(), chi.URLParam(r, "id"), voterFor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := json.Marshal(rv)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}
