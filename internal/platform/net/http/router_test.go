package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/gentlementlegen/assistive-pricing/internal/platform/config"
	phttp "github.com/gentlementlegen/assistive-pricing/internal/platform/net/http"
)

// the full Router surface against a live mux: the NewServer mux hook, Use
// before routes, Route/Group nesting, every verb adapter, and raw Handle
func TestRouterSurface(t *testing.T) {
	hooked := false
	srv := phttp.NewServer(config.New().Prefix("PRICEMUX_"), func(*chi.Mux) { hooked = true })
	if !hooked {
		t.Fatal("mux option did not run")
	}

	r := srv.Router()
	if r.Mux() == nil {
		t.Fatal("mux is nil")
	}

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Platform", "pricing")
			next.ServeHTTP(w, req)
		})
	})

	status := func(code int) phttp.Handler {
		return func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(code) }
	}

	r.Route("/api/v1", func(v1 phttp.Router) {
		v1.Get("/quote", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "Price: 25 USD")
		})
		v1.Group(func(g phttp.Router) {
			g.Post("/labels", status(http.StatusCreated))
			g.Put("/labels/7", status(http.StatusAccepted))
			g.Patch("/labels/7", status(http.StatusNoContent))
			g.Delete("/labels/stale", status(http.StatusOK))
		})
	})
	r.Head("/healthz", status(http.StatusOK))
	r.Options("/hooks/github", status(http.StatusNoContent))
	r.Handle("/raw", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "raw")
	}))

	cases := []struct {
		method, path string
		want         int
		body         string
	}{
		{http.MethodGet, "/api/v1/quote", http.StatusOK, "Price: 25 USD"},
		{http.MethodPost, "/api/v1/labels", http.StatusCreated, ""},
		{http.MethodPut, "/api/v1/labels/7", http.StatusAccepted, ""},
		{http.MethodPatch, "/api/v1/labels/7", http.StatusNoContent, ""},
		{http.MethodDelete, "/api/v1/labels/stale", http.StatusOK, ""},
		{http.MethodHead, "/healthz", http.StatusOK, ""},
		{http.MethodOptions, "/hooks/github", http.StatusNoContent, ""},
		{http.MethodGet, "/raw", http.StatusOK, "raw"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != tc.want {
			t.Fatalf("%s %s: code %d, want %d", tc.method, tc.path, rec.Code, tc.want)
		}
		if tc.body != "" && rec.Body.String() != tc.body {
			t.Fatalf("%s %s: body %q", tc.method, tc.path, rec.Body.String())
		}
		if rec.Header().Get("X-Platform") != "pricing" {
			t.Fatalf("%s %s: middleware header missing", tc.method, tc.path)
		}
	}

	// unknown paths still 404 through the facade
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown path: %d", rec.Code)
	}
}
