package app

import (
	"log/slog"
	"os"

	"github.com/diasna/tng/internal/tracking"
	"github.com/diasna/tng/internal/tracking/inbound"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.tracking.enabled") {
		closer, err := tracking.New(tracking.Dependency{
			Config:  a.config,
			Router:  a.router,
			RowID:   a.snowflake,
			EventID: a.uuid,
			Tracer:  a.tracer,
			Info: inbound.ServiceInfo{
				Name:        Name,
				Version:     Version,
				Description: Description,
			},
		})
		if err != nil {
			slog.Error("failed to init module tracking", "error", err)
			os.Exit(1)
		}
		if closer != nil {
			a.addCloser("Tracking", closer)
		}
	}
}
