package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/saturnino-fabrica-de-software/faceid/internal/rpc"
)

var healthService string

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Query the server's gRPC health service",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		client, err := rpc.NewClient(addr, 0)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		status, err := client.Check(ctx, healthService)
		if err != nil {
			return fmt.Errorf("health check: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), status.String())
		if status != healthpb.HealthCheckResponse_SERVING {
			return fmt.Errorf("server is %s", status)
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().StringVar(&healthService, "service", "", "Service name to check (empty checks the whole server)")
	rootCmd.AddCommand(healthCmd)
}
