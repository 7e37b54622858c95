package tracking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/diasna/tng/internal/pkg/pkgconfig"
	"github.com/diasna/tng/internal/pkg/pkgpebble"
	"github.com/diasna/tng/internal/pkg/pkgrouter"
	"github.com/diasna/tng/internal/pkg/pkguid"
	"github.com/diasna/tng/internal/tracking/event"
	"github.com/diasna/tng/internal/tracking/generator"
	"github.com/diasna/tng/internal/tracking/inbound"
	"github.com/diasna/tng/internal/tracking/store"
	"github.com/diasna/tng/internal/tracking/usecase"
	"go.opentelemetry.io/otel/trace"
)

type Dependency struct {
	Config  pkgconfig.Config
	Router  *pkgrouter.Router
	RowID   pkguid.NumberID
	EventID pkguid.StringID
	Tracer  trace.Tracer
	Info    inbound.ServiceInfo
}

// Store is a uniqueness store that owns resources.
type Store interface {
	usecase.Store
	io.Closer
}

// Service is the tracking core wired from config, usable without HTTP.
type Service struct {
	*usecase.Usecase

	store    Store
	consumer *event.AlertConsumer
}

// New wires the module and mounts its endpoints on dep.Router.
func New(dep Dependency) (func(context.Context) error, error) {
	svc, err := NewService(dep)
	if err != nil {
		return nil, err
	}

	if dep.Router != nil {
		inbound.RegisterHTTPEndpoint(dep.Router, svc.Usecase, dep.Info)
	}

	return svc.Close, nil
}

func NewService(dep Dependency) (*Service, error) {
	if dep.Config == nil {
		return nil, errors.New("tracking: missing config")
	}

	storage, err := OpenStore(dep.Config)
	if err != nil {
		return nil, err
	}

	bus := event.NewBus(int(dep.Config.GetInt("alerts.buffer")))
	consumer := event.NewAlertConsumer(bus, event.LogAlerter{}, event.ConsumerConfig{
		Workers:     int(dep.Config.GetInt("alerts.workers")),
		MaxRetries:  3,
		BaseBackoff: 200 * time.Millisecond,
	})
	consumer.Start()

	if dep.EventID == nil {
		dep.EventID = pkguid.NewUUID()
	}

	uc := usecase.New(usecase.Dependency{
		Store:        storage,
		Generator:    generator.New(nil),
		Metrics:      usecase.NewMetrics(),
		Events:       bus,
		RowID:        dep.RowID,
		EventID:      dep.EventID,
		Tracer:       dep.Tracer,
		StoreTimeout: time.Duration(dep.Config.GetInt("storage.timeout_ms")) * time.Millisecond,
	})

	return &Service{Usecase: uc, store: storage, consumer: consumer}, nil
}

// Close drains pending alerts, then closes the store.
func (s *Service) Close(ctx context.Context) error {
	return errors.Join(s.consumer.Stop(ctx), s.store.Close())
}

// OpenStore builds the uniqueness store selected by storage.driver.
func OpenStore(cfg pkgconfig.Config) (Store, error) {
	switch driver := cfg.GetString("storage.driver"); driver {
	case "", "memory":
		slog.Info("tracking store initialized", "driver", "memory")
		return store.NewInMemoryStore(), nil

	case "pebble":
		fsync, err := pkgpebble.ParseFsyncMode(cfg.GetString("storage.pebble.fsync"))
		if err != nil {
			return nil, err
		}

		dir := cfg.GetString("storage.pebble.dir")
		s, err := store.NewPebbleStore(store.PebbleOptions{
			DataDir:       dir,
			Fsync:         fsync,
			FsyncInterval: time.Duration(cfg.GetInt("storage.pebble.fsync_interval_ms")) * time.Millisecond,
			SlowThreshold: time.Duration(cfg.GetInt("storage.pebble.slow_ms")) * time.Millisecond,
		})
		if err != nil {
			return nil, fmt.Errorf("open pebble store at %s: %w", dir, err)
		}

		slog.Info("tracking store initialized", "driver", "pebble", "dir", dir)
		return s, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
