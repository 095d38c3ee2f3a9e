package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"admissions/internal/core/version"

	"github.com/swaggo/swag/v2"
)

// InstanceName is the swag instance the generated docs register under
const InstanceName = "api"

// readDoc returns the generated document, tests replace it
var readDoc = func() (string, error) { return swag.ReadDoc(InstanceName) }

type object = map[string]any

// child returns m[key] as an object, creating it when absent
func child(m object, key string) object {
	if c, ok := m[key].(object); ok {
		return c
	}
	c := object{}
	m[key] = c
	return c
}

// document loads the generated OpenAPI document or a bare skeleton when the
// binary was built without the swag tag
func document() (object, error) {
	raw, err := readDoc()
	if err != nil {
		return object{
			"openapi": "3.0.3",
			"info":    object{"title": "Admissions API", "version": version.Info().Version},
			"paths":   object{},
		}, nil
	}
	var doc object
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// docJSON serves the document patched for the UI and the runtime envelope
func docJSON(titleSuffix string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		doc, err := document()
		if err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		asOAS30(doc, "/api/v1")
		if titleSuffix != "" {
			info := child(doc, "info")
			if title, ok := info["title"].(string); ok {
				info["title"] = title + " " + titleSuffix
			}
		}
		child(child(doc, "components"), "schemas")["ErrorResponse"] = errorSchema
		withDefaultResponse(doc, "400", errorResponse(http.StatusBadRequest, 8, "rating must be at most 5"))
		withDefaultResponse(doc, "500", errorResponse(http.StatusInternalServerError, 0, "internal error"))

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

// asOAS30 pins the version the bundled UI renders and adds the API base url
func asOAS30(doc object, base string) {
	delete(doc, "swagger")
	if v, _ := doc["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		doc["openapi"] = "3.0.3"
	}
	if _, ok := doc["servers"]; !ok {
		doc["servers"] = []any{object{"url": base}}
	}
}

// errorSchema mirrors pnet.Wire for failures
var errorSchema = object{
	"type":     "object",
	"required": []any{"success", "status_code", "status"},
	"properties": object{
		"success":     object{"type": "boolean"},
		"status_code": object{"type": "integer", "format": "int32"},
		"status":      object{"type": "string"},
		"code":        object{"type": "integer", "format": "int32"},
		"error":       object{"type": "string"},
		"request_id":  object{"type": "string"},
		"details": object{
			"type": "array",
			"items": object{
				"type": "object",
				"properties": object{
					"field":   object{"type": "string"},
					"message": object{"type": "string"},
				},
			},
		},
	},
}

func errorResponse(status, code int, msg string) object {
	text := http.StatusText(status)
	return object{
		"description": text,
		"content": object{
			"application/json": object{
				"schema": object{"$ref": "#/components/schemas/ErrorResponse"},
				"example": object{
					"success":     false,
					"status_code": status,
					"status":      text,
					"code":        code,
					"error":       msg,
					"request_id":  "api-7c9e/4f1b-000042",
				},
			},
		},
	}
}

// withDefaultResponse adds resp to every operation not documenting status itself
func withDefaultResponse(doc object, status string, resp object) {
	paths, _ := doc["paths"].(object)
	for _, item := range paths {
		ops, ok := item.(object)
		if !ok {
			continue
		}
		for _, op := range ops {
			if op, ok := op.(object); ok {
				responses := child(op, "responses")
				if _, set := responses[status]; !set {
					responses[status] = resp
				}
			}
		}
	}
}
