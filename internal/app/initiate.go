package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/diasna/tng/internal/pkg/pkgconfig"
	"github.com/diasna/tng/internal/pkg/pkglog"
	"github.com/diasna/tng/internal/pkg/pkgrouter"
	"github.com/diasna/tng/internal/pkg/pkgroutine"
	"github.com/diasna/tng/internal/pkg/pkgtrace"
	"github.com/diasna/tng/internal/pkg/pkguid"
	"github.com/rs/cors"
)

// ConfigPath resolves the config file: an explicit path wins, then LOCAL=true
// selects the working directory copy.
func ConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if os.Getenv("LOCAL") == "true" {
		return "./config/config.yaml"
	}
	return "/config/config.yaml"
}

func (a *App) initConfig() {
	cfg, err := pkgconfig.NewViper(ConfigPath(a.opts.ConfigPath))
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	if !pkglog.SetLevel(cfg.GetString("log.level")) {
		slog.Warn("unknown log level, keeping info", "level", cfg.GetString("log.level"))
	}

	a.config = cfg
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(100)
	a.uuid = pkguid.NewUUID()

	sf, err := pkguid.NewSnowflakeNode(a.config.GetInt("id.snowflake_node"))
	if err != nil {
		slog.Error("failed to init snowflake", "error", err)
		os.Exit(1)
	}
	a.snowflake = sf

	tracer, shutdown, err := pkgtrace.New(pkgtrace.Options{
		Enabled:        a.config.GetBool("tracing.enabled"),
		ServiceName:    Name,
		ServiceVersion: Version,
		Output:         a.config.GetString("tracing.output"),
	})
	if err != nil {
		slog.Error("failed to init tracing", "error", err)
		os.Exit(1)
	}
	a.tracer = tracer
	a.addCloser("Tracer", shutdown)
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (a *App) initClosers() {
	a.addCloser("HTTP Server", func(ctx context.Context) error {
		return a.httpServer.Shutdown(ctx)
	})
	a.addCloser("Config", func(context.Context) error {
		return a.config.Close()
	})
}

func (a *App) addCloser(name string, fn func(context.Context) error) {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}
	a.closerFn[name] = fn
}
