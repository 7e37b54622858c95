// Package cmd holds the tng command line: the HTTP server plus offline
// generate, lookup and stats commands.
package cmd

import (
	"github.com/diasna/tng/internal/app"
	"github.com/diasna/tng/internal/pkg/pkgconfig"
	"github.com/diasna/tng/internal/pkg/pkglog"
	"github.com/spf13/cobra"
)

func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          app.Name,
		Short:        "Tracking number generator",
		Long:         "tng issues unique 16 character shipment tracking numbers over HTTP or from the command line.",
		Version:      app.Version,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "Config file (default /config/config.yaml, ./config/config.yaml when LOCAL=true)")

	root.AddCommand(newServeCommand())
	root.AddCommand(newGenerateCommand())
	root.AddCommand(newLookupCommand())
	root.AddCommand(newStatsCommand())

	return root
}

// loadConfig reads --config when given; otherwise defaults and TNG_ env vars.
func loadConfig(cmd *cobra.Command) (pkgconfig.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return pkgconfig.NewViper(path)
}

func initCLILogging(cmd *cobra.Command) {
	pkglog.InitLogging()
	level, _ := cmd.Flags().GetString("log-level")
	pkglog.SetLevel(level)
}

// overrides layers command line flags over a loaded config.
type overrides struct {
	pkgconfig.Config
	values map[string]string
}

func (o overrides) GetString(key string) string {
	if v, ok := o.values[key]; ok {
		return v
	}
	return o.Config.GetString(key)
}
