// Package api provides the HTTP API for the application
package api

import (
	"errors"
	"time"

	"admissions/internal/core/token"
	"admissions/internal/platform/config"
	"admissions/internal/platform/logger"
	"admissions/internal/platform/metrics"
	phttp "admissions/internal/platform/net/http"
	"admissions/internal/platform/net/middleware"
	"admissions/internal/platform/store"

	"admissions/internal/modkit"
	"admissions/internal/modkit/httpkit"
	"admissions/internal/modkit/swaggerkit"

	authmod "admissions/internal/services/api/auth/module"
	metamod "admissions/internal/services/api/meta/module"
	regmod "admissions/internal/services/api/registrations/module"
	reviewsmod "admissions/internal/services/api/reviews/module"
	statsmod "admissions/internal/services/api/stats/module"
	usersmod "admissions/internal/services/api/users/module"

	"github.com/prometheus/client_golang/prometheus"
)

// LoginPath is the admin sign in endpoint, it stays reachable without a session
const LoginPath = httpkit.V1 + modkit.AdminPrefix + "/login"

// Options are the API options
type Options struct {
	// Config is the root config, CORE_API_ keys are read from it
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger
	// Registry collects request and domain metrics, nil disables /metrics
	Registry *prometheus.Registry

	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) error {
	if opt.Store == nil || opt.Store.PG == nil {
		return errors.New("api: postgres store is required")
	}
	apiCfg := opt.Config.Prefix("CORE_API_")

	deps, err := NewDeps(opt)
	if err != nil {
		return err
	}

	mods := []modkit.Module{
		metamod.New(deps),
		authmod.New(deps, authmod.FromConfig(opt.Config)),
		regmod.New(deps),
		reviewsmod.New(deps),
		usersmod.New(deps),
		statsmod.New(deps),
	}

	gate := httpkit.AdminGate(httpkit.AdminGateOptions{
		Port:      httpkit.NewPortFunc(token.Resolver(deps.Tokens, deps.Revoked)),
		LoginPath: apiCfg.MayString("LOGIN_URL", httpkit.DefaultLoginPath),
		Exempt:    []string{LoginPath},
	})

	stack := httpkit.CommonStackWith(httpkit.StackOptions{
		CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
		Metrics:        deps.Metrics,
		TrustedProxies: middleware.ParseProxies(apiCfg.MayCSV("TRUSTED_PROXIES", nil)),
	})

	swaggerkit.Mount(r, opt.EnableSwagger, apiCfg.MayString("DOCS_TITLE_SUFFIX", ""))
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.Registry != nil {
		r.Handle("/metrics", metrics.Handler(opt.Registry))
	}

	// versioned API with a common middleware stack
	// every admin route passes the gate, then each action checks again
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		modkit.Mount(api, gate, mods...)
	})

	l := opt.Logger
	if l == nil {
		l = logger.Get()
	}
	l.Info().Int("modules", len(mods)).Bool("redis", deps.RDS != nil).Bool("metrics", opt.Registry != nil).Msg("api mounted")
	return nil
}

// NewDeps builds the shared module dependencies from config and the open store
// without redis, revocations and rate limits live in process
func NewDeps(opt Options) (modkit.Deps, error) {
	apiCfg := opt.Config.Prefix("CORE_API_")

	iss, err := token.New(token.Config{
		Secret: []byte(apiCfg.MustString("TOKEN_SECRET")),
		Issuer: apiCfg.MayString("TOKEN_ISSUER", "admissions-api"),
		TTL:    apiCfg.MayDuration("SESSION_TTL", token.DefaultTTL),
	})
	if err != nil {
		return modkit.Deps{}, err
	}

	deps := modkit.Deps{
		Cfg:    opt.Config,
		PG:     opt.Store.PG,
		RDS:    opt.Store.RDS,
		Tokens: iss,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Registry != nil {
		deps.Metrics = metrics.New(opt.Registry)
	}

	perMinute := apiCfg.MayInt("SUBMIT_RATE", 10)
	if opt.Store.RDS != nil {
		deps.Revoked = token.NewKVDenylist(opt.Store.RDS)
		deps.Limiter = middleware.NewWindowLimiter(opt.Store.RDS, "ratelimit:", perMinute, time.Minute)
	} else {
		deps.Revoked = token.NewMemoryDenylist()
		deps.Limiter = middleware.NewTokenBucket(perMinute, perMinute)
	}
	return deps, nil
}
