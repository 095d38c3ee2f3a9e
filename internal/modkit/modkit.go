package modkit

import (
	"net/http"

	phttp "admissions/internal/platform/net/http"
)

// AdminPrefix is where back office routes live relative to the API root
const AdminPrefix = "/admin"

// Module is the common surface for API modules
type Module interface {
	// MountRoutes mounts the public routes under the provided router
	MountRoutes(r phttp.Router)
	// Ports returns the module's service port for in process callers
	Ports() any
	Name() string
}

// AdminMounter is implemented by modules that also serve back office routes
type AdminMounter interface {
	MountAdminRoutes(r phttp.Router)
}

// Mount mounts every module's public routes on r, then the admin routes
// of those that have them under AdminPrefix behind gate
func Mount(r phttp.Router, gate func(http.Handler) http.Handler, mods ...Module) {
	for _, m := range mods {
		m.MountRoutes(r)
	}
	r.Route(AdminPrefix, func(adm phttp.Router) {
		if gate != nil {
			adm.Use(gate)
		}
		for _, m := range mods {
			if am, ok := m.(AdminMounter); ok {
				am.MountAdminRoutes(adm)
			}
		}
	})
}
