package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type statsEnvelope struct {
	Data struct {
		TotalGenerated          int64   `json:"total_generated"`
		TotalCollisions         int64   `json:"total_collisions"`
		TotalFailures           int64   `json:"total_failures"`
		AverageGenerationTimeMs float64 `json:"average_generation_time_ms"`
		CollisionRate           float64 `json:"collision_rate"`
		FailureRate             float64 `json:"failure_rate"`
		Status                  string  `json:"status"`
	} `json:"data"`
}

func newStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Fetch generation statistics from a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")

			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, strings.TrimRight(addr, "/")+"/actuator/tracking-numbers", nil)
			if err != nil {
				return err
			}

			client := &http.Client{Timeout: 5 * time.Second}
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("stats: unexpected status %s", resp.Status)
			}

			var body statsEnvelope
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				return fmt.Errorf("stats: decode response: %w", err)
			}

			s := body.Data
			fmt.Fprintf(cmd.OutOrStdout(), "status:           %s\n", s.Status)
			fmt.Fprintf(cmd.OutOrStdout(), "total_generated:  %d\n", s.TotalGenerated)
			fmt.Fprintf(cmd.OutOrStdout(), "total_collisions: %d\n", s.TotalCollisions)
			fmt.Fprintf(cmd.OutOrStdout(), "total_failures:   %d\n", s.TotalFailures)
			fmt.Fprintf(cmd.OutOrStdout(), "mean_latency_ms:  %.3f\n", s.AverageGenerationTimeMs)
			fmt.Fprintf(cmd.OutOrStdout(), "collision_rate:   %.2f%%\n", s.CollisionRate)
			fmt.Fprintf(cmd.OutOrStdout(), "failure_rate:     %.2f%%\n", s.FailureRate)
			return nil
		},
	}

	cmd.Flags().String("addr", "http://127.0.0.1:8080", "Server base URL")

	return cmd
}
