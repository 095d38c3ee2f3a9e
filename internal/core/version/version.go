// Package version reports the build the binary was produced from
package version

// BuildInfo identifies a build
type BuildInfo struct {
	Service string `json:"service" example:"admissions-api"`
	Version string `json:"version" example:"v0.3.1"`
	Commit  string `json:"commit" example:"9f2c1ab"`
	Date    string `json:"date" example:"2024-06-15"`
}

// Service is the default service name reported by Info
const Service = "admissions-api"

// set with -ldflags "-X 'admissions/internal/core/version.version=v0.3.1'
// -X 'admissions/internal/core/version.commit=9f2c1ab' -X 'admissions/internal/core/version.date=2024-06-15'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build information
func Info() BuildInfo {
	return BuildInfo{
		Service: Service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}
