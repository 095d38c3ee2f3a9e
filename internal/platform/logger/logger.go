// Package logger wraps zerolog with a process wide root and request scoped children
//
// Binaries call Init once at startup; everything else asks Get, C or Named
// so a forgotten Init still yields a usable logger built from LOG_ keys
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"admissions/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the logging type handed around the codebase
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level     string
	Format    string // console or json
	Service   string
	Component string
	Writer    io.Writer // stdout when nil
	// WithCaller adds file:line, handy locally and noisy in production
	WithCaller  bool
	SampleEvery int
	// StaticFields are stamped on every line, e.g. env or region
	StaticFields map[string]string
}

// FromEnv reads LOG_ keys through the raw view, config itself logs so it cannot be used here
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       strings.ToLower(env.Get("LEVEL", "debug")),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", ""),
		Component:   env.Get("COMPONENT", ""),
		WithCaller:  env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	initOnce sync.Once
	root     atomic.Pointer[Logger]
)

// Init builds the root logger, only the first call has any effect
func Init(opt Options) {
	initOnce.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := build(opt)
		root.Store(&l)
	})
}

// Get returns the root logger, initializing it from the environment when needed
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

func build(opt Options) Logger {
	out := opt.Writer
	if out == nil {
		out = os.Stdout
	}
	if opt.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	fields := zerolog.New(out).Level(parseLevel(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok {
		fields = fields.Str("go_version", bi.GoVersion)
	}
	for k, v := range map[string]string{"service": opt.Service, "component": opt.Component} {
		if v != "" {
			fields = fields.Str(k, v)
		}
	}
	for k, v := range opt.StaticFields {
		fields = fields.Str(k, v)
	}
	if opt.WithCaller {
		fields = fields.Caller()
	}

	l := fields.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// parseLevel maps LOG_LEVEL onto zerolog, unknown or empty values mean debug
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return lvl
}

type scopeKey struct{}

// scope is what a request contributes to its log lines
type scope struct {
	requestID string
	actorID   string
}

// WithRequest records the request id and acting user on ctx
// empty values keep whatever an outer layer already set
func WithRequest(ctx context.Context, reqID, actorID string) context.Context {
	s, _ := ctx.Value(scopeKey{}).(scope)
	if reqID != "" {
		s.requestID = reqID
	}
	if actorID != "" {
		s.actorID = actorID
	}
	return context.WithValue(ctx, scopeKey{}, s)
}

// C returns a child of the root carrying request_id and actor_id from ctx
func C(ctx context.Context) *Logger {
	s, _ := ctx.Value(scopeKey{}).(scope)
	b := Get().With()
	if s.requestID != "" {
		b = b.Str("request_id", s.requestID)
	}
	if s.actorID != "" {
		b = b.Str("actor_id", s.actorID)
	}
	l := b.Logger()
	return &l
}

// Named returns a child tagged with component, "" returns the root itself
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
