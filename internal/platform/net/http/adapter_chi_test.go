package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

// stamp is middleware that marks responses with a header
func stamp(key, val string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.Header().Set(key, val)
			next.ServeHTTP(w, req)
		})
	}
}

func TestAdaptChiMiddlewareLayering(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	r.Use(stamp("X-Stack", "root"))
	r.Get("/healthz", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	// a group shares the root stack and layers its own on top
	r.Group(func(gr Router) {
		gr.Use(stamp("X-Scoped", "group"))
		gr.Get("/quote/preview", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
			_, _ = w.Write([]byte("preview"))
		})
	})

	// a mounted subrouter scopes its middleware under the pattern
	r.Route("/hooks", func(sr Router) {
		sr.Use(stamp("X-Scoped", "hooks"))
		sr.Get("/github", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
			_, _ = w.Write([]byte("intake"))
		})
	})

	cases := []struct{ path, body, scoped string }{
		{"/healthz", "ok", ""},
		{"/quote/preview", "preview", "group"},
		{"/hooks/github", "intake", "hooks"},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, tc.path, nil))
		if rr.Code != stdhttp.StatusOK || rr.Body.String() != tc.body {
			t.Fatalf("GET %s: code=%d body=%q", tc.path, rr.Code, rr.Body.String())
		}
		if rr.Header().Get("X-Stack") != "root" {
			t.Fatalf("GET %s: root middleware skipped", tc.path)
		}
		if got := rr.Header().Get("X-Scoped"); got != tc.scoped {
			t.Fatalf("GET %s: scoped middleware %q, want %q", tc.path, got, tc.scoped)
		}
	}
}

func TestAdaptChiNesting(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())

	r.Group(func(gr Router) {
		if gr.Mux() == nil {
			t.Fatal("group mux is nil")
		}
		gr.Group(func(inner Router) {
			inner.Get("/issues/inner", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
				_, _ = w.Write([]byte("inner"))
			})
		})
	})

	r.Route("/api", func(sr Router) {
		if sr.Mux() == nil {
			t.Fatal("route mux is nil")
		}
		sr.Route("/v1", func(nr Router) {
			nr.Get("/pack", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
				_, _ = w.Write([]byte("pack"))
			})
		})
	})

	for path, want := range map[string]string{
		"/issues/inner": "inner",
		"/api/v1/pack":  "pack",
	} {
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, path, nil))
		if rr.Code != stdhttp.StatusOK || rr.Body.String() != want {
			t.Fatalf("GET %s: code=%d body=%q", path, rr.Code, rr.Body.String())
		}
	}
}
