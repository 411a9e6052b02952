package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "github.com/gentlementlegen/assistive-pricing/internal/platform/errors"
	pnet "github.com/gentlementlegen/assistive-pricing/internal/platform/net"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/net/middleware"
)

type fakeVerifier struct{ err error }

func (f fakeVerifier) Verify(*http.Request) error { return f.err }

// writeJSON mirrors the production writer the kit wires in
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestVerify(t *testing.T) {
	serve := func(p middleware.VerifierPort) (*httptest.ResponseRecorder, *bool) {
		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/hooks/github", nil)
		middleware.Verify(p, writeJSON)(next).ServeHTTP(rec, req)
		return rec, &called
	}

	t.Run("nil port passes through", func(t *testing.T) {
		rec, called := serve(nil)
		if !*called || rec.Code != http.StatusOK {
			t.Fatalf("called=%v code=%d", *called, rec.Code)
		}
	})

	t.Run("clean verdict calls next", func(t *testing.T) {
		rec, called := serve(fakeVerifier{})
		if !*called || rec.Code != http.StatusOK {
			t.Fatalf("called=%v code=%d", *called, rec.Code)
		}
	})

	t.Run("rejection writes the mapped envelope", func(t *testing.T) {
		rec, called := serve(fakeVerifier{err: perr.Unauthorizedf("signature mismatch")})
		if *called {
			t.Fatal("next ran on a rejected request")
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("code: %d", rec.Code)
		}

		var env pnet.Wire
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("unmarshal: %v (%s)", err, rec.Body.String())
		}
		if env.Code != perr.ErrorCodeUnauthorized || env.Error != "signature mismatch" {
			t.Fatalf("envelope: %+v", env)
		}
	})

	t.Run("foreign errors still reject with 500", func(t *testing.T) {
		rec, called := serve(fakeVerifier{err: http.ErrNoCookie})
		if *called || rec.Code != http.StatusInternalServerError {
			t.Fatalf("called=%v code=%d", *called, rec.Code)
		}
	})
}
