package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/diasna/tng/internal/pkg/pkgroutine"
	"github.com/diasna/tng/internal/pkg/pkguid"
	"github.com/diasna/tng/internal/tracking"
	"github.com/diasna/tng/internal/tracking/entity"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate tracking numbers against a local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			initCLILogging(cmd)

			count, _ := cmd.Flags().GetInt("count")
			workers, _ := cmd.Flags().GetInt("workers")
			if count < 1 {
				return fmt.Errorf("--count must be positive")
			}

			shipment, err := shipmentFromFlags(cmd)
			if err != nil {
				return err
			}

			svc, err := openService(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			runErr := generateMany(ctx, svc, shipment, count, workers, cmd.OutOrStdout())

			stats := svc.Stats()
			fmt.Fprintf(cmd.OutOrStdout(),
				"generated=%d collisions=%d failures=%d mean_ms=%.3f status=%s\n",
				stats.TotalGenerated, stats.TotalCollisions, stats.TotalFailures, stats.MeanLatencyMs(), stats.Status,
			)

			if err := svc.Close(context.Background()); err != nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().Int("count", 1, "Number of tracking numbers to generate")
	cmd.Flags().Int("workers", 4, "Concurrent generators")
	cmd.Flags().String("data-dir", "./data", "Pebble data directory")
	cmd.Flags().Bool("memory", false, "Use an in-memory store instead of Pebble")
	cmd.Flags().String("origin", "MY", "Origin country (ISO 3166-1 alpha-2)")
	cmd.Flags().String("destination", "ID", "Destination country (ISO 3166-1 alpha-2)")
	cmd.Flags().Float64("weight", 1, "Weight in kilograms")
	cmd.Flags().String("customer-id", "", "Customer UUID (random when empty)")
	cmd.Flags().String("customer-name", "CLI", "Customer name")
	cmd.Flags().String("customer-slug", "cli", "Customer slug")
	cmd.Flags().String("log-level", "warn", "Log level: debug|info|warn|error")

	return cmd
}

func shipmentFromFlags(cmd *cobra.Command) (entity.Shipment, error) {
	origin, _ := cmd.Flags().GetString("origin")
	destination, _ := cmd.Flags().GetString("destination")
	weight, _ := cmd.Flags().GetFloat64("weight")
	rawID, _ := cmd.Flags().GetString("customer-id")
	name, _ := cmd.Flags().GetString("customer-name")
	slug, _ := cmd.Flags().GetString("customer-slug")

	customerID := uuid.New()
	if rawID != "" {
		id, err := uuid.Parse(rawID)
		if err != nil {
			return entity.Shipment{}, fmt.Errorf("--customer-id: %w", err)
		}
		customerID = id
	}

	shipment := entity.Shipment{
		OriginCountryID:      origin,
		DestinationCountryID: destination,
		Weight:               weight,
		CustomerID:           customerID,
		CustomerName:         name,
		CustomerSlug:         slug,
	}.Normalize()
	if err := shipment.Validate(); err != nil {
		return entity.Shipment{}, fmt.Errorf("invalid shipment: %w", err)
	}

	return shipment, nil
}

func openService(cmd *cobra.Command) (*tracking.Service, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	values := map[string]string{"storage.driver": "pebble"}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		values["storage.pebble.dir"] = dir
	}
	if mem, _ := cmd.Flags().GetBool("memory"); mem {
		values["storage.driver"] = "memory"
	}

	rowID, err := pkguid.NewSnowflake()
	if err != nil {
		return nil, err
	}

	return tracking.NewService(tracking.Dependency{
		Config: overrides{Config: cfg, values: values},
		RowID:  rowID,
	})
}

// generateMany runs count generations on at most workers goroutines and
// writes one tracking number per line.
func generateMany(ctx context.Context, svc *tracking.Service, shipment entity.Shipment, count, workers int, out io.Writer) error {
	runner := pkgroutine.NewManager(workers)

	var mu sync.Mutex
	for i := 0; i < count; i++ {
		runner.Go(ctx, func(ctx context.Context) error {
			res, err := svc.Generate(ctx, shipment)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			_, err = fmt.Fprintln(out, res.TrackingNumber)
			return err
		})
	}

	return runner.Wait()
}
