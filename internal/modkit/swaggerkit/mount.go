// Package swaggerkit serves Swagger UI and the OpenAPI document under /api/docs
package swaggerkit

import (
	"net/http"

	phttp "admissions/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves the docs when enabled, titleSuffix marks non production deployments
func Mount(r phttp.Router, enabled bool, titleSuffix string) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", docJSON(titleSuffix))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName(InstanceName),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
