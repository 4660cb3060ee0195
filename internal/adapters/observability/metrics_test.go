package observability_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"catalog_reviews/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample per collector so every family is exported
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveStore("memory", "read", "hit", time.Millisecond)
	observability.ObserveReview("submitted")
	observability.ObserveVote("counted")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"catalog_http_requests_total",
		"catalog_store_operations_total",
		"catalog_review_submissions_total",
		"catalog_helpful_votes_total",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestResultLabels(t *testing.T) {
	if got := observability.ReadResult(true, nil); got != "hit" {
		t.Fatalf("read hit: %s", got)
	}
	if got := observability.ReadResult(false, nil); got != "miss" {
		t.Fatalf("read miss: %s", got)
	}
	if got := observability.ReadResult(false, errors.New("x")); got != "error" {
		t.Fatalf("read error: %s", got)
	}
	if got := observability.WriteResult(nil); got != "ok" {
		t.Fatalf("write ok: %s", got)
	}
}

func TestNewMetricsServer_DisabledWithoutAddr(t *testing.T) {
	if srv := observability.NewMetricsServer("", observability.InitRegistry()); srv != nil {
		t.Fatalf("expected nil server")
	}
}
