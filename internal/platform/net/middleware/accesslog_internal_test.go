package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMeterRecordsStatusAndBytes(t *testing.T) {
	rr := httptest.NewRecorder()
	m := &meter{ResponseWriter: rr, status: http.StatusOK}

	m.WriteHeader(http.StatusCreated)
	if m.status != http.StatusCreated || rr.Code != http.StatusCreated {
		t.Fatalf("status: meter=%d recorder=%d", m.status, rr.Code)
	}

	// split writes accumulate
	if _, err := m.Write([]byte("Price: 25 USD")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := m.Write([]byte("!")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if want := len("Price: 25 USD") + 1; m.bytes != want {
		t.Fatalf("bytes: want %d, got %d", want, m.bytes)
	}
}
