package net_test

import (
	"errors"
	"net/http"
	"testing"

	perr "github.com/gentlementlegen/assistive-pricing/internal/platform/errors"
	pnet "github.com/gentlementlegen/assistive-pricing/internal/platform/net"
)

func TestSuccessEnvelopes(t *testing.T) {
	status, w := pnet.OK(map[string]any{"price": 25}, "delivery-1")
	if status != http.StatusOK || w.StatusCode != http.StatusOK || w.Status != "OK" {
		t.Fatalf("OK envelope mismatch: %d %+v", status, w)
	}
	if w.RequestID != "delivery-1" || w.Data.(map[string]any)["price"] != 25 {
		t.Fatalf("OK payload mismatch: %+v", w)
	}

	status, w = pnet.Created([]int{12, 25}, "delivery-2")
	if status != http.StatusCreated || w.Status != http.StatusText(http.StatusCreated) {
		t.Fatalf("Created envelope mismatch: %d %+v", status, w)
	}
	if got := w.Data.([]int); len(got) != 2 || got[0] != 12 {
		t.Fatalf("Created payload mismatch: %+v", w.Data)
	}

	status, w = pnet.NoContent("delivery-3")
	if status != http.StatusNoContent || w.Data != nil || w.Error != "" {
		t.Fatalf("NoContent must carry nothing: %d %+v", status, w)
	}
	if w.RequestID != "delivery-3" {
		t.Fatalf("NoContent lost the request id: %+v", w)
	}
}

func TestErrorEnvelope(t *testing.T) {
	// nil reads as plain OK
	status, w := pnet.Error(nil, "delivery-4")
	if status != http.StatusOK || w.Error != "" || w.Code != 0 {
		t.Fatalf("nil error must read as OK: %d %+v", status, w)
	}

	// coded errors surface status, code and message
	status, w = pnet.Error(perr.New(perr.ErrorCodeUnauthorized, "signature rejected"), "delivery-5")
	if status != http.StatusUnauthorized || w.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status mismatch: %d %+v", status, w)
	}
	if w.Code != perr.ErrorCodeUnauthorized || w.Error != "signature rejected" || w.Data != nil {
		t.Fatalf("error wire mismatch: %+v", w)
	}
	if w.RequestID != "delivery-5" {
		t.Fatalf("request id lost: %+v", w)
	}

	// foreign errors fall through to 500
	status, w = pnet.Error(errors.New("boom"), "")
	if status != http.StatusInternalServerError || w.Error != "boom" {
		t.Fatalf("foreign error mismatch: %d %+v", status, w)
	}
}

func TestHTTPStatus(t *testing.T) {
	for _, c := range []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{errors.New("boom"), http.StatusInternalServerError},
		{perr.New(perr.ErrorCodeUnauthorized, "bad webhook signature"), http.StatusUnauthorized},
		{perr.NotFoundf("label %q not priced", "Time: <1 Hour"), http.StatusNotFound},
	} {
		if got := pnet.HTTPStatus(c.err); got != c.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
