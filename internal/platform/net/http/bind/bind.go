// Package bind decodes and validates JSON request bodies for handlers
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "github.com/gentlementlegen/assistive-pricing/internal/platform/errors"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel for custom tag funcs
type FieldLevel = validator.FieldLevel

// FieldError aliases validator.FieldError
type FieldError = validator.FieldError

// ValidatorSvc bundles the process-wide validator and its translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	initOnce sync.Once
	shared   *ValidatorSvc

	// decoderMore reports trailing data after the first JSON value, a seam for tests
	decoderMore = func(dec *json.Decoder) bool { return dec.More() }
)

// Init builds the singleton validator with english translations and json tag names
func Init() *ValidatorSvc {
	initOnce.Do(func() {
		locale := en.New()
		trans, _ := ut.New(locale, locale).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// failures report json tag names, not Go field names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if tag == "" || tag == "-" {
				return fld.Name
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		// terser wording than the stock translations
		overrideMessage(v, trans, "min", "{0} must be at least {1}")
		overrideMessage(v, trans, "max", "{0} must be at most {1}")

		shared = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return shared
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc {
	if shared == nil {
		return Init()
	}
	return shared
}

// RegisterValidation installs a custom tag on the singleton. Later
// registrations of the same tag win
func RegisterValidation(tag string, fn validator.Func) error {
	return Get().Validator.RegisterValidation(tag, fn)
}

// RegisterMessage installs the failure message for a custom tag, with {0}
// standing for the field name
func RegisterMessage(tag, message string) error {
	s := Get()
	return s.Validator.RegisterTranslation(tag, s.Translator,
		func(u ut.Translator) error { return u.Add(tag, message, true) },
		func(u ut.Translator, fe validator.FieldError) string {
			msg, _ := u.T(tag, fe.Field())
			return msg
		},
	)
}

// overrideMessage replaces a stock translation, {0} the field and {1} the param
func overrideMessage(v *validator.Validate, trans ut.Translator, tag, message string) {
	_ = v.RegisterTranslation(tag, trans,
		func(u ut.Translator) error { return u.Add(tag, message, true) },
		func(u ut.Translator, fe validator.FieldError) string {
			msg, _ := u.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// JSONOptions tunes body parsing
type JSONOptions struct {
	MaxBytes        int64 // cap on body size, default 1MB, 0 lifts the cap
	DisallowUnknown bool  // reject unknown fields, default true
	AllowEmptyBody  bool  // treat an absent body as the zero value, default false
}

func defaultJSONOptions() JSONOptions {
	return JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}
}

// ParseJSON decodes the request body into T, validates it, and maps
// failures onto coded errors
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := defaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Error().Err(err).Msg("request body close failed")
		}
	}()

	var src io.Reader = r.Body
	if o.MaxBytes > 0 {
		src = io.LimitReader(r.Body, o.MaxBytes)
	}
	body, err := io.ReadAll(src)
	if err != nil {
		return zero, perr.JSONErrf("body read failed: %v", err)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		if o.AllowEmptyBody || bodylessMethod(r.Method) {
			return zero, nil
		}
		return zero, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	var dst T
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if decoderMore(dec) {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Get().Validator.Struct(dst); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			logger.Get().Error().Err(inv).Msg("validator internal error")
			return zero, perr.JSONErrf("validation error")
		}
		field, msg := ValidationFieldAndMessage(err)
		return zero, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
	}
	return dst, nil
}

// bodylessMethod reports methods that legitimately carry no body
func bodylessMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

// ValidationFieldAndMessage picks the first failing field and its translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fe.Field(), fe.Translate(Get().Translator)
	}
	return "", err.Error()
}
