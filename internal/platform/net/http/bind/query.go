package bind

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	perr "admissions/internal/platform/errors"
)

// Query decodes the request query string into T using `query` tags and validates it
// supported field kinds are string, bool, ints and pointers to those
// absent or empty parameters leave the field at its zero value
func Query[T any](r *http.Request) (T, error) {
	var dst T
	rv := reflect.ValueOf(&dst).Elem()
	if rv.Kind() != reflect.Struct {
		return dst, perr.Internalf("bind: query target must be a struct, got %s", rv.Kind())
	}

	values := r.URL.Query()
	rt := rv.Type()
	var details []perr.Detail
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name := queryName(sf)
		if name == "" {
			continue
		}
		raw := strings.TrimSpace(values.Get(name))
		if raw == "" {
			continue
		}
		if err := setField(rv.Field(i), raw); err != nil {
			details = append(details, perr.Detail{Field: name, Message: name + " " + err.Error()})
		}
	}
	if len(details) > 0 {
		return dst, invalid(details)
	}
	return dst, Validate(dst)
}

func queryName(sf reflect.StructField) string {
	if !sf.IsExported() {
		return ""
	}
	tag := sf.Tag.Get("query")
	if tag == "-" {
		return ""
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}

func setField(fv reflect.Value, raw string) error {
	if fv.Kind() == reflect.Pointer {
		nv := reflect.New(fv.Type().Elem())
		if err := setField(nv.Elem(), raw); err != nil {
			return err
		}
		fv.Set(nv)
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return perr.InvalidArgf("must be true or false")
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, fv.Type().Bits())
		if err != nil {
			return perr.InvalidArgf("must be an integer")
		}
		fv.SetInt(n)
	default:
		return perr.Internalf("unsupported kind %s", fv.Kind())
	}
	return nil
}
