package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	service "github.com/okian/lineup/internal/app"
)

// withService runs fn against a started service and prints its result.
func (rt *cli) withService(cmd *cobra.Command, fn func(ctx context.Context, svc *service.Service) (any, error)) error {
	ctx := cmd.Context()
	svc := rt.service()
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop(ctx)

	out, err := fn(ctx, svc)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), out)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newAssignCmd(rt *cli) *cobra.Command {
	var path, team string
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Fill a formation with the best players of a team",
		RunE: func(cmd *cobra.Command, _ []string) error {
			md, err := loadMatchday(path)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("team") {
				md.Team = team
			}
			return rt.withService(cmd, func(ctx context.Context, svc *service.Service) (any, error) {
				return svc.AutoAssign(ctx, md.Roster, md.Formation, md.Team)
			})
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "matchday file (yaml or json)")
	cmd.Flags().StringVar(&team, "team", "", "team to assign; overrides the file")
	return cmd
}

func newAnalyzeCmd(rt *cli) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Grade the formation as assigned in the matchday file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			md, err := loadMatchday(path)
			if err != nil {
				return err
			}
			return rt.withService(cmd, func(ctx context.Context, svc *service.Service) (any, error) {
				return svc.Analyze(ctx, md.Formation, md.Roster)
			})
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "matchday file (yaml or json)")
	return cmd
}

func newSwapCmd(rt *cli) *cobra.Command {
	var path, source, slot, target string
	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Rank the alternatives to moving a player into a slot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			md, err := loadMatchday(path)
			if err != nil {
				return err
			}
			return rt.withService(cmd, func(ctx context.Context, svc *service.Service) (any, error) {
				return svc.SmartSwap(ctx, source, slot, target, md.Formation, md.Roster)
			})
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "matchday file (yaml or json)")
	cmd.Flags().StringVar(&source, "source", "", "player to move")
	cmd.Flags().StringVar(&slot, "slot", "", "destination slot")
	cmd.Flags().StringVar(&target, "target", "", "player currently in the destination slot")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("slot")
	return cmd
}

func newPositionsCmd(rt *cli) *cobra.Command {
	var path, team string
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Move assigned players to their slot's default position",
		RunE: func(cmd *cobra.Command, _ []string) error {
			md, err := loadMatchday(path)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("team") {
				md.Team = team
			}
			return rt.withService(cmd, func(ctx context.Context, svc *service.Service) (any, error) {
				return svc.UpdatePositions(ctx, md.Roster, md.Formation, md.Team)
			})
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "matchday file (yaml or json)")
	cmd.Flags().StringVar(&team, "team", "", "team to move; overrides the file")
	return cmd
}
