// Package bind decodes request bodies and query strings into validated structs
// every failure comes back as a perr error the envelope layer can render
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "admissions/internal/platform/errors"
	"admissions/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// DefaultMaxBytes caps a form body, the largest field is a 1000 character review
const DefaultMaxBytes = 1 << 20

type checker struct {
	v     *validator.Validate
	trans ut.Translator
}

// messages name fields by their json tag, the same key clients sent
var shared = sync.OnceValue(func() *checker {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = en_translations.RegisterDefaultTranslations(v, trans)
	bound(v, trans, "min", "at least")
	bound(v, trans, "max", "at most")

	return &checker{v: v, trans: trans}
})

// bound replaces the stock min and max texts with "rating must be at most 5"
// strings count characters so they say so
func bound(v *validator.Validate, trans ut.Translator, tag, word string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			if err := t.Add(tag, "{0} must be "+word+" {1}", true); err != nil {
				return err
			}
			return t.Add(tag+"-chars", "{0} must be "+word+" {1} characters", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			key := tag
			if fe.Kind() == reflect.String {
				key = tag + "-chars"
			}
			msg, _ := t.T(key, fe.Field(), fe.Param())
			return msg
		},
	)
}

// JSONOptions tunes ParseJSON, the zero value rejects empty bodies and uses DefaultMaxBytes
type JSONOptions struct {
	MaxBytes       int64
	AllowEmptyBody bool
}

// ParseJSON decodes the body into T, rejecting unknown fields and trailing data, then validates it
// GET and DELETE tolerate a missing body like AllowEmptyBody does
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	var o JSONOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if r.Body == nil {
		r.Body = http.NoBody
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("closing request body")
		}
	}()

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, o.MaxBytes))
	dec.DisallowUnknownFields()

	var dst T
	if err := dec.Decode(&dst); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			if o.AllowEmptyBody || r.Method == http.MethodGet || r.Method == http.MethodDelete {
				return zero, nil
			}
			return zero, perr.JSONErrf("empty body")
		case errors.As(err, &tooBig):
			return zero, perr.JSONErrf("body exceeds %d bytes", tooBig.Limit)
		default:
			return zero, perr.JSONErrf("invalid JSON: %v", err)
		}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// Validate checks v against its validate tags
// services call it again after normalizing, trimming can empty a required field
func Validate(v any) error {
	c := shared()
	err := c.v.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// a non struct target is a programming error, not bad input
		logger.Get().Error().Err(err).Msg("validator misuse")
		return perr.Internalf("validation error")
	}
	details := make([]perr.Detail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, perr.Detail{Field: fe.Field(), Message: fe.Translate(c.trans)})
	}
	return invalid(details)
}

// invalid builds the 400 carrying every failing field, the first one names the error
func invalid(details []perr.Detail) error {
	e := perr.WithField(perr.Validationf("validation failed"), details[0].Field)
	return perr.WithDetails(e, details...)
}
