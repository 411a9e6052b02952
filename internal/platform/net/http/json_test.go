package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type quoteDTO struct {
	Hours int `json:"hours"`
}

func TestJSONHandler_Success(t *testing.T) {
	t.Parallel()

	// flat hourly rate of 5
	h := JSONHandler[quoteDTO](func(_ *http.Request, in quoteDTO) (any, error) {
		return map[string]int{"price": in.Hours * 5}, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/quote", bytes.NewBufferString(`{"hours":7}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `"price":35`) {
		t.Fatalf("body %q missing computed price", body)
	}
}

func TestJSONHandler_ResponsePassthrough(t *testing.T) {
	t.Parallel()

	h := JSONHandler[quoteDTO](func(_ *http.Request, _ quoteDTO) (any, error) {
		return Created(map[string]string{"label": "Price: 50 USD"}), nil
	})

	req := httptest.NewRequest(http.MethodPost, "/quote", bytes.NewBufferString(`{"hours":10}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 from the passed-through Response", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Price: 50 USD") {
		t.Fatalf("body %q missing passthrough payload", rr.Body.String())
	}
}

func TestJSONHandler_BindError(t *testing.T) {
	t.Parallel()

	h := JSONHandler[quoteDTO](func(_ *http.Request, _ quoteDTO) (any, error) {
		t.Fatal("handler should not be called on bind error")
		return nil, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/quote", bytes.NewBufferString(`{`)) // invalid JSON
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h(rr, req)

	if rr.Code == http.StatusOK {
		t.Fatalf("expected non-200 on bind error, got %d", rr.Code)
	}
	if !strings.Contains(strings.ToLower(rr.Body.String()), "error") {
		t.Fatalf("expected error text in body, got %q", rr.Body.String())
	}
}

func TestJSONHandler_HandlerError(t *testing.T) {
	t.Parallel()

	h := JSONHandler[quoteDTO](func(_ *http.Request, _ quoteDTO) (any, error) {
		return nil, errors.New("github unavailable")
	})

	req := httptest.NewRequest(http.MethodPost, "/quote", bytes.NewBufferString(`{"hours":1}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h(rr, req)

	if rr.Code == http.StatusOK {
		t.Fatalf("expected non-200 on handler error, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "github unavailable") {
		t.Fatalf("expected error message in body, got %q", rr.Body.String())
	}
}

func TestCallHandler_OKWrapAndPassthrough(t *testing.T) {
	t.Parallel()

	plain := CallHandler(func(_ *http.Request) (any, error) {
		return []string{"Price: 12.5 USD", "Price: 25 USD"}, nil
	})
	rr := httptest.NewRecorder()
	plain(rr, httptest.NewRequest(http.MethodGet, "/labels", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("plain value: status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Price: 25 USD") {
		t.Fatalf("plain value: body %q missing labels", rr.Body.String())
	}

	wrapped := CallHandler(func(_ *http.Request) (any, error) {
		return NoContent(), nil
	})
	rr = httptest.NewRecorder()
	wrapped(rr, httptest.NewRequest(http.MethodDelete, "/labels/7", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("passthrough: status = %d, want 204", rr.Code)
	}
}

func TestCallHandler_Error(t *testing.T) {
	t.Parallel()

	h := CallHandler(func(_ *http.Request) (any, error) {
		return nil, errors.New("issue not found")
	})
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/labels/404", nil))

	if rr.Code == http.StatusOK {
		t.Fatalf("expected non-200 on error, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "issue not found") {
		t.Fatalf("expected error message in body, got %q", rr.Body.String())
	}
}
