package main

import (
	"fmt"

	"github.com/spf13/cobra"

	service "github.com/okian/lineup/internal/app"
	"github.com/okian/lineup/internal/config"
	"github.com/okian/lineup/pkg/logger"
	"github.com/okian/lineup/pkg/metrics"
)

// cli is shared by every subcommand once the root pre-run has loaded it.
type cli struct {
	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	rt := &cli{}
	root := &cobra.Command{
		Use:          "lineup",
		Short:        "Formation assignment engine",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.load(cmd)
		},
	}
	root.AddCommand(
		newServeCmd(rt),
		newAssignCmd(rt),
		newAnalyzeCmd(rt),
		newSwapCmd(rt),
		newPositionsCmd(rt),
	)
	return root
}

// load reads configuration and initializes metrics and logging. The server logs to
// stdout or the configured file; one-shot commands keep stdout for their
// JSON output.
func (rt *cli) load(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	rt.cfg = cfg
	metrics.Init(metrics.WithMetricsEnabled(cfg.MetricsEnabled))

	opts := []logger.Option{logger.WithWriter(cmd.ErrOrStderr())}
	if cmd.Name() == "serve" {
		opts = []logger.Option{
			logger.WithWriter(cmd.OutOrStdout()),
			logger.WithFile(cfg.LogFile, logger.RotateConfig{
				MaxSizeMB:  cfg.LogMaxSizeMB,
				MaxBackups: cfg.LogMaxBackups,
				MaxAgeDays: cfg.LogMaxAgeDays,
			}),
			logger.WithJSON(),
		}
	}
	if err := logger.Init(opts...); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	rt.log = logger.Get()

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		rt.log.Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}

// service builds an engine service from the loaded configuration.
func (rt *cli) service() *service.Service {
	return service.New(
		service.WithLogger(rt.log.Named("service")),
		service.WithFitnessTables(rt.cfg.Fitness),
		service.WithLookahead(rt.cfg.Lookahead),
		service.WithSwapFloors(rt.cfg.SwapFloor, rt.cfg.ReassignFloor),
		service.WithNearbyRadius(rt.cfg.NearbyRadius),
		service.WithSpatialCellSize(rt.cfg.SpatialCellSize),
		service.WithReviewThreshold(rt.cfg.ReviewThreshold),
	)
}
