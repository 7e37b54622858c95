package cmd

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"
)

func newLookupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <tracking-number>",
		Short: "Show the stored record of a tracking number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initCLILogging(cmd)

			svc, err := openService(cmd)
			if err != nil {
				return err
			}
			defer svc.Close(context.Background())

			res, err := svc.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			rec := res.Record
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"id":                     rec.ID,
				"tracking_number":        rec.TrackingNumber,
				"origin_country_id":      rec.OriginCountryID,
				"destination_country_id": rec.DestinationCountryID,
				"weight":                 rec.Weight,
				"customer_id":            rec.CustomerID.String(),
				"customer_name":          rec.CustomerName,
				"customer_slug":          rec.CustomerSlug,
				"created_at":             rec.CreatedAt,
			})
		},
	}

	cmd.Flags().String("data-dir", "./data", "Pebble data directory")
	cmd.Flags().Bool("memory", false, "Use an in-memory store instead of Pebble")
	cmd.Flags().String("log-level", "warn", "Log level: debug|info|warn|error")

	return cmd
}
