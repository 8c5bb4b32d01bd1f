package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"docket/internal/app"
	"docket/internal/config"
	"docket/internal/logger"
)

var limit int

var rootCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "retry file steps of transfers that did not complete",
	Example: `reconcile list -n 20
reconcile run -n 100
reconcile marker <marker-id>`,
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().IntVarP(&limit, "limit", "n", 50, "maximum number of markers to process")
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(markerCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withApp loads configuration, builds the services and runs fn.
func withApp(fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Setup(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list incomplete and stale pending transfers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				markers, err := a.Reconciler.ListIncomplete(ctx, limit)
				if err != nil {
					return err
				}
				for _, m := range markers {
					fmt.Printf("%s\t%s\t%s\t%s -> %s\n", m.ID, m.Status, m.Operation, m.SourcePath, m.DestinationPath)
				}
				logrus.WithField("count", len(markers)).Info("listed transfer markers")
				return nil
			})
		},
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "reconcile incomplete transfers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				report, err := a.Reconciler.Reconcile(ctx, limit)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
				if len(report.Failed) > 0 {
					return fmt.Errorf("%d transfers could not be reconciled", len(report.Failed))
				}
				return nil
			})
		},
	}
}

func markerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "marker <marker-id>",
		Short: "reconcile a single transfer marker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid marker id %q: %w", args[0], err)
			}
			return withApp(func(ctx context.Context, a *app.App) error {
				marker, err := a.Reconciler.ReconcileMarker(ctx, id)
				if err != nil {
					return err
				}
				fmt.Printf("%s\t%s\n", marker.ID, marker.Status)
				return nil
			})
		},
	}
}
