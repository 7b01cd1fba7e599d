// Package bind decodes JSON request payloads and runs struct validation,
// mapping both failure kinds onto project error codes.
package bind

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "numwash/internal/platform/errors"
	"numwash/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ctxKey keeps bound payloads from colliding with other context values
type ctxKey uint8

const payloadKey ctxKey = iota

// FieldLevel aliases validator.FieldLevel so callers avoid the direct import
type FieldLevel = validator.FieldLevel

// UT aliases ut.Translator
type UT = ut.Translator

// FieldError aliases validator.FieldError
type FieldError = validator.FieldError

// ValidatorSvc bundles the process wide validator with its translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	once sync.Once
	svc  *ValidatorSvc

	// decMore is a seam so tests can force the trailing data branch
	decMore = func(dec *json.Decoder) bool { return dec.More() }
)

// wireName maps a struct field onto its json tag so error messages name
// the wire field, not the Go field
func wireName(fld reflect.StructField) string {
	tag, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if tag == "" || tag == "-" {
		return fld.Name
	}
	return tag
}

// registerMessage installs one short translation; withParam controls whether
// the rule's parameter joins the field name in the rendered message
func registerMessage(v *validator.Validate, trans ut.Translator, tag, template string, withParam bool) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, template, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			var msg string
			if withParam {
				msg, _ = t.T(tag, fe.Field(), fe.Param())
			} else {
				msg, _ = t.T(tag, fe.Field())
			}
			return msg
		},
	)
}

// Init builds the singleton validator: english messages, json tag names,
// and the short translations the API responses use
func Init() *ValidatorSvc {
	once.Do(func() {
		locale := en.New()
		uni := ut.New(locale, locale)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(wireName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		registerMessage(v, trans, "min", "{0} must be at least {1}", true)
		registerMessage(v, trans, "max", "{0} must be at most {1}", true)

		// phone_chars guards raw phone input: digits, spaces and one leading
		// plus. The surfaces that accept raw numbers register the check
		// itself; only the wording lives here so every response matches
		registerMessage(v, trans, "phone_chars", "{0} may only contain digits, spaces and a leading +", false)

		svc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return svc
}

// Get returns the singleton, initializing it on first use
func Get() *ValidatorSvc {
	if svc == nil {
		return Init()
	}
	return svc
}

// RegisterValidation adds a custom validation tag to the singleton
func RegisterValidation(tag string, fn validator.Func) error {
	return Get().Validator.RegisterValidation(tag, fn)
}

// JSONOptions tunes ParseJSON per call site
type JSONOptions struct {
	MaxBytes        int64 // default 1MB
	DisallowUnknown bool  // default true
	AllowEmptyBody  bool  // default false
}

func jsonOptions(opts []JSONOptions) JSONOptions {
	if len(opts) > 0 {
		return opts[0]
	}
	return JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}
}

// ParseJSON decodes the request body into T and validates it.
// Decode failures come back as ErrorCodeJSON, validation failures as
// ErrorCodeValidation carrying the translated message.
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := jsonOptions(opts)
	defer func() {
		if cerr := r.Body.Close(); cerr != nil {
			logger.Get().Error().Err(cerr).Msg("failed to close request body")
		}
	}()

	reader, empty, err := bodyReader(r, o)
	if err != nil {
		return zero, err
	}
	if empty {
		return zero, nil
	}

	dec := json.NewDecoder(reader)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var dst T
	if err := dec.Decode(&dst); err != nil {
		// an absent body decodes to the zero value when callers opted in
		if o.AllowEmptyBody && errors.Is(err, io.EOF) {
			return dst, nil
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if decMore(dec) {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := checkStruct(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// checkStruct maps validator failures onto project error codes
func checkStruct(dst any) error {
	err := Get().Validator.Struct(dst)
	if err == nil {
		return nil
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.JSONErrf("validation error")
	}
	_, msg := ValidationFieldAndMessage(err)
	return perr.Newf(perr.ErrorCodeValidation, "%s", msg)
}

// bodyReader hands back the reader ParseJSON decodes from. When empty bodies
// are rejected it peeks one byte first so body-less GET and DELETE requests
// short circuit instead of failing decode; the bool result reports "empty
// and tolerated".
func bodyReader(r *http.Request, o JSONOptions) (io.Reader, bool, error) {
	var reader io.Reader = r.Body

	if !o.AllowEmptyBody {
		peek := make([]byte, 1)
		n, _ := r.Body.Read(peek)
		if n == 0 {
			switch r.Method {
			case http.MethodGet, http.MethodDelete, http.MethodHead, http.MethodOptions:
				return nil, true, nil
			}
			return nil, false, perr.JSONErrf("empty body")
		}
		reader = io.MultiReader(bytes.NewReader(peek[:n]), r.Body)
	}

	if o.MaxBytes > 0 {
		reader = io.LimitReader(reader, o.MaxBytes)
	}
	return reader, false, nil
}

// JSON binds the payload ahead of the handler and stashes it on the context
func JSON[T any](opts ...JSONOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload, err := ParseJSON[T](r, opts...)
			if err != nil {
				// transport agnostic on purpose; envelope writing stays with the caller
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			next.ServeHTTP(w, r.WithContext(
				context.WithValue(r.Context(), payloadKey, &payload)))
		})
	}
}

// FromContext returns the payload bound by JSON, or nil
func FromContext[T any](r *http.Request) *T {
	v, _ := r.Context().Value(payloadKey).(*T)
	return v
}

// ValidationFieldAndMessage extracts the first offending field and its
// translated message from a validator error
func ValidationFieldAndMessage(err error) (field, message string) {
	switch e := err.(type) {
	case nil:
		return "", ""
	case *validator.InvalidValidationError:
		return "", e.Error()
	case validator.ValidationErrors:
		for _, fe := range e {
			return fe.Field(), fe.Translate(Get().Translator)
		}
	}
	return "", err.Error()
}

// As re-exports errors.As to reduce import noise at call sites
func As(err error, target any) bool { return errors.As(err, target) }
