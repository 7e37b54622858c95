package app

import (
	"context"
	"net/http"

	"github.com/diasna/tng/internal/pkg/pkgconfig"
	"github.com/diasna/tng/internal/pkg/pkglog"
	"github.com/diasna/tng/internal/pkg/pkgrouter"
	"github.com/diasna/tng/internal/pkg/pkgroutine"
	"github.com/diasna/tng/internal/pkg/pkguid"
	"go.opentelemetry.io/otel/trace"
)

const (
	Name        = pkglog.ServiceName
	Version     = "1.0.0"
	Description = "Tracking number generator for shipment orders"
)

type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string
}

type App struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   Options

	// configuration
	config pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	snowflake pkguid.NumberID
	goroutine *pkgroutine.Manager
	tracer    trace.Tracer

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	//
	closerFn map[string]func(context.Context) error
}

func New(opts Options) *App {
	pkglog.InitLogging()

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
		opts:   opts,
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
