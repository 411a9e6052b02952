package httpkit_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gentlementlegen/assistive-pricing/internal/modkit/httpkit"
	perr "github.com/gentlementlegen/assistive-pricing/internal/platform/errors"
	kit "github.com/gentlementlegen/assistive-pricing/internal/platform/testkit"
)

// wireEnv mirrors the envelope fields these tests care about
type wireEnv struct {
	StatusCode int             `json:"status_code"`
	Code       int             `json:"code"`
	Error      string          `json:"error"`
	Data       json.RawMessage `json:"data"`
	Page       *struct {
		Total    int `json:"total"`
		Page     int `json:"page"`
		PageSize int `json:"page_size"`
	} `json:"page"`
}

func run(t *testing.T, h httpkit.Handler, method, body string) (int, wireEnv, string) {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "http://pricing.test/quote", rd)
	rec := httptest.NewRecorder()
	h(rec, req)

	raw := rec.Body.String()
	var env wireEnv
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &env); err != nil {
			t.Fatalf("response is not an envelope: %v (%s)", err, raw)
		}
	}
	return rec.Code, env, raw
}

func TestResponseAliases(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		resp       httpkit.Response
		wantStatus int
		wantBody   string
	}{
		{name: "ok", resp: httpkit.OK("Price: 25 USD"), wantStatus: 200, wantBody: "Price: 25 USD"},
		{name: "created", resp: httpkit.Created(7), wantStatus: 201, wantBody: "7"},
		{name: "no content", resp: httpkit.NoContent(), wantStatus: 204, wantBody: ""},
		{name: "data", resp: httpkit.Data("quote"), wantStatus: 200, wantBody: "quote"},
		{name: "error", resp: httpkit.Error(perr.NotFoundf("issue 404 not found")), wantStatus: 404, wantBody: "issue 404 not found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := httpkit.Handle(func(*http.Request) httpkit.Response { return tc.resp })
			status, _, raw := run(t, h, http.MethodGet, "")
			if status != tc.wantStatus {
				t.Fatalf("status = %d, want %d", status, tc.wantStatus)
			}
			if tc.wantBody == "" && raw != "" {
				t.Fatalf("body = %q, want empty", raw)
			}
			if tc.wantBody != "" {
				kit.MustContain(t, raw, tc.wantBody)
			}
		})
	}
}

func TestListAliasCarriesPage(t *testing.T) {
	t.Parallel()

	h := httpkit.Handle(func(*http.Request) httpkit.Response {
		return httpkit.List([]string{"Price: 12 USD", "Price: 25 USD"}, 41, 2, 2, "after-25")
	})
	status, env, _ := run(t, h, http.MethodGet, "")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if env.Page == nil || env.Page.Total != 41 || env.Page.Page != 2 || env.Page.PageSize != 2 {
		t.Fatalf("page block = %+v", env.Page)
	}
}

func TestCallAdapter(t *testing.T) {
	t.Parallel()

	t.Run("plain value wraps as 200", func(t *testing.T) {
		t.Parallel()
		h := httpkit.Call(func(*http.Request) (any, error) {
			return map[string]string{"label": "Price: 25 USD"}, nil
		})
		status, _, raw := run(t, h, http.MethodGet, "")
		if status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		kit.MustContain(t, raw, `"label":"Price: 25 USD"`)
	})

	t.Run("response passes through", func(t *testing.T) {
		t.Parallel()
		h := httpkit.Call(func(*http.Request) (any, error) {
			return httpkit.Created("priced"), nil
		})
		if status, _, _ := run(t, h, http.MethodGet, ""); status != http.StatusCreated {
			t.Fatalf("status = %d, want 201", status)
		}
	})

	t.Run("error decides the status", func(t *testing.T) {
		t.Parallel()
		h := httpkit.Call(func(*http.Request) (any, error) {
			return nil, perr.Forbiddenf("label access denied")
		})
		status, env, _ := run(t, h, http.MethodGet, "")
		if status != http.StatusForbidden || env.Error != "label access denied" {
			t.Fatalf("status=%d error=%q", status, env.Error)
		}
	})
}

func TestJSONAdapter(t *testing.T) {
	t.Parallel()

	type quoteIn struct {
		Hours    int    `json:"hours" validate:"required,min=1"`
		Currency string `json:"currency"`
	}

	t.Run("decodes and hands the value over", func(t *testing.T) {
		t.Parallel()
		h := httpkit.JSON(func(_ *http.Request, in quoteIn) (any, error) {
			return map[string]any{"hours": in.Hours, "currency": in.Currency}, nil
		})
		status, _, raw := run(t, h, http.MethodPost, `{"hours":7,"currency":"USD"}`)
		if status != http.StatusOK {
			t.Fatalf("status = %d (%s)", status, raw)
		}
		kit.MustContain(t, raw, `"hours":7`)
	})

	t.Run("malformed body never reaches the handler", func(t *testing.T) {
		t.Parallel()
		h := httpkit.JSON(func(_ *http.Request, _ quoteIn) (any, error) {
			t.Fatal("handler ran on malformed JSON")
			return nil, nil
		})
		if status, _, _ := run(t, h, http.MethodPost, `{`); status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		t.Parallel()
		h := httpkit.JSON(func(_ *http.Request, _ quoteIn) (any, error) {
			t.Fatal("handler ran despite unknown field")
			return nil, nil
		})
		if status, _, _ := run(t, h, http.MethodPost, `{"hours":1,"priority":2}`); status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
	})

	t.Run("validation tags run", func(t *testing.T) {
		t.Parallel()
		h := httpkit.JSON(func(_ *http.Request, _ quoteIn) (any, error) {
			t.Fatal("handler ran despite failing validation")
			return nil, nil
		})
		status, env, _ := run(t, h, http.MethodPost, `{"currency":"USD"}`)
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		kit.MustContain(t, strings.ToLower(env.Error), "hours")
	})

	t.Run("handler errors map through the code table", func(t *testing.T) {
		t.Parallel()
		h := httpkit.JSON(func(_ *http.Request, _ quoteIn) (any, error) {
			return nil, perr.Unavailablef("github unavailable")
		})
		if status, _, _ := run(t, h, http.MethodPost, `{"hours":3}`); status != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", status)
		}
	})
}

func TestCustomValidationRegistration(t *testing.T) {
	t.Parallel()

	if err := httpkit.RegisterValidation("usdonly", func(fl httpkit.FieldLevel) bool {
		return fl.Field().String() == "USD"
	}); err != nil {
		t.Fatalf("RegisterValidation: %v", err)
	}
	if err := httpkit.RegisterMessage("usdonly", "{0} must be USD"); err != nil {
		t.Fatalf("RegisterMessage: %v", err)
	}

	type payIn struct {
		Currency string `json:"currency" validate:"usdonly"`
	}
	h := httpkit.JSON(func(_ *http.Request, in payIn) (any, error) {
		return in.Currency, nil
	})

	if status, _, _ := run(t, h, http.MethodPost, `{"currency":"USD"}`); status != http.StatusOK {
		t.Fatalf("valid currency rejected: %d", status)
	}

	status, env, _ := run(t, h, http.MethodPost, `{"currency":"EUR"}`)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	kit.MustContain(t, env.Error, "must be USD")
}
