package httpkit_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/gentlementlegen/assistive-pricing/internal/modkit/httpkit"
	phttp "github.com/gentlementlegen/assistive-pricing/internal/platform/net/http"
	kit "github.com/gentlementlegen/assistive-pricing/internal/platform/testkit"
)

func TestVerbSugar(t *testing.T) {
	t.Parallel()

	type quoteReq struct {
		Hours int `json:"hours"`
	}

	r := phttp.AdaptChi(chi.NewRouter())
	httpkit.Get(r, "/labels", func(*http.Request) (any, error) {
		return []string{"Price: 25 USD"}, nil
	})
	httpkit.Post(r, "/run", func(*http.Request) (any, error) {
		return httpkit.Created("started"), nil
	})
	httpkit.PostJSON(r, "/quote", func(_ *http.Request, in quoteReq) (any, error) {
		return map[string]int{"hours": in.Hours}, nil
	})

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		frag   string
	}{
		{name: "get wraps in envelope", method: http.MethodGet, path: "/labels", status: 200, frag: "Price: 25 USD"},
		{name: "post passes responses through", method: http.MethodPost, path: "/run", status: 201, frag: "started"},
		{name: "post json binds the body", method: http.MethodPost, path: "/quote", body: `{"hours":7}`, status: 200, frag: `"hours":7`},
		{name: "post json rejects junk", method: http.MethodPost, path: "/quote", body: `{"hours":`, status: 400, frag: ""},
		{name: "wrong verb misses", method: http.MethodPut, path: "/labels", status: 405, frag: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var body io.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			}
			req := httptest.NewRequest(tc.method, tc.path, body)
			rec := httptest.NewRecorder()
			r.Mux().ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if tc.frag != "" {
				kit.MustContain(t, rec.Body.String(), tc.frag)
			}
		})
	}
}
