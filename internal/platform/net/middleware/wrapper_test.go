package middleware_test

import (
	"compress/flate"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gentlementlegen/assistive-pricing/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestHeartbeatAnswersProbes(t *testing.T) {
	h := middleware.Heartbeat("/health")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("probe: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hooks/github", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("non-probe fell into the heartbeat: %d", rec.Code)
	}
}

func TestTimeoutCancelsRequestContext(t *testing.T) {
	h := middleware.Timeout(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			w.WriteHeader(http.StatusServiceUnavailable)
		case <-time.After(time.Second):
			w.WriteHeader(http.StatusOK)
		}
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("request context never cancelled: %d", rec.Code)
	}
}

func TestStripSlashesRewritesPath(t *testing.T) {
	var seen string
	h := middleware.StripSlashes()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = r.URL.Path
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/hooks/github/", nil))
	if seen != "/hooks/github" {
		t.Fatalf("path: %q", seen)
	}
}

func TestCompressEncodesWhenAccepted(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// enough body for the compressor to bother
		_, _ = io.WriteString(w, strings.Repeat(`{"label":"Price: 25 USD"}`, 200))
	})

	req := httptest.NewRequest(http.MethodGet, "/quote", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	middleware.Compress(flate.BestSpeed)(h).ServeHTTP(rec, req)

	if enc := rec.Result().Header.Get("Content-Encoding"); enc != "gzip" {
		t.Fatalf("encoding: %q", enc)
	}
}

func TestCORSDefaultsAdmitWebhookHeaders(t *testing.T) {
	cors := middleware.CORS(middleware.CORSOptions{
		AllowedOrigins: []string{"https://dashboard.example.com"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/quote", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "X-GitHub-Delivery")

	rec := httptest.NewRecorder()
	cors(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK && rec.Code != http.StatusNoContent {
		t.Fatalf("preflight: %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatal("allow-methods missing")
	}
	if rec.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Fatal("allow-headers missing, the github delivery header was refused")
	}
}

// the correlation trio as a stack, outermost first
func TestCorrelationChain(t *testing.T) {
	chain := []func(http.Handler) http.Handler{
		middleware.RealIP(),
		middleware.RequestID(),
		middleware.NoCache(),
	}

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chimw.GetReqID(r.Context()) == "" {
			t.Fatal("request id missing from context")
		}
		// RealIP rewrites RemoteAddr to the forwarded ip
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err != nil || host == "" {
			if net.ParseIP(r.RemoteAddr) == nil {
				t.Fatalf("RemoteAddr: %q", r.RemoteAddr)
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	var wrapped http.Handler = h
	for i := len(chain) - 1; i >= 0; i-- {
		wrapped = chain[i](wrapped)
	}

	req := httptest.NewRequest(http.MethodGet, "/hooks/github", nil)
	req.RemoteAddr = "127.0.0.1:12345"
	req.Header.Set("X-Forwarded-For", "1.2.3.4")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if rec.Header().Get("Cache-Control") == "" {
		t.Fatal("no-cache headers missing")
	}
}
