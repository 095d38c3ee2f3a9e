// Command admissions-seed creates the first admin account from ADMIN_EMAIL and ADMIN_PASSWORD
//
// running it is an explicit operator action so the CORE_API_ENV gate of the
// HTTP seed endpoint does not apply here
package main

import (
	"context"
	"crypto/rand"
	"os"
	"time"

	"admissions/internal/core/token"
	"admissions/internal/platform/config"
	"admissions/internal/platform/logger"
	"admissions/internal/platform/store"
	"admissions/internal/platform/store/migrate"

	authmod "admissions/internal/services/api/auth/module"
	authrepo "admissions/internal/services/api/auth/repo"
	authsvc "admissions/internal/services/api/auth/service"
)

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Named("seed")

	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "admissions-seed",
		PG: store.PGConfig{
			Enabled:  true,
			URL:      pgCfg.MustString("DBURL"),
			MaxConns: 2,
		},
	}, store.WithLogger(*logger.Get()))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() { _ = st.Close(context.Background()) }()

	if _, err := migrate.Up(ctx, st.PG); err != nil {
		l.Fatal().Err(err).Msg("migrate.Up failed")
	}

	// no tokens are issued here, the signing key only satisfies the service
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		l.Fatal().Err(err).Msg("signing key")
	}
	iss, err := token.New(token.Config{Secret: key, Issuer: "admissions-seed"})
	if err != nil {
		l.Fatal().Err(err).Msg("token.New failed")
	}

	seed := authmod.FromConfig(root).Seed
	seed.Allowed = true

	svc := authsvc.New(st.PG, authrepo.NewPG(), iss, nil, seed, nil)
	admin, err := svc.Seed(ctx)
	if err != nil {
		l.Error().Err(err).Msg("seed failed")
		os.Exit(1)
	}
	l.Info().Str("id", admin.ID).Str("email", admin.Email).Str("name", admin.Name).Msg("admin created")
}
