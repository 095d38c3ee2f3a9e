package module

import (
	"strings"

	"admissions/internal/platform/config"
	authsvc "admissions/internal/services/api/auth/service"
)

// Options configures the auth module
type Options struct {
	Seed authsvc.SeedConfig
}

// FromConfig reads the seed account from ADMIN_ and gates it on CORE_API_ENV
func FromConfig(cfg config.Conf) Options {
	env := cfg.Prefix("CORE_API_").MayEnum("ENV", "production", "production", "development", "staging", "test")
	admin := cfg.Prefix("ADMIN_")
	return Options{
		Seed: authsvc.SeedConfig{
			Allowed:  strings.EqualFold(env, "development"),
			Email:    admin.MayString("EMAIL", ""),
			Password: admin.MayString("PASSWORD", ""),
			Name:     admin.MayString("NAME", authsvc.DefaultAdminName),
		},
	}
}
