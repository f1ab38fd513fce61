package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/NERVsystems/rapidmcp/pkg/geo"
	"github.com/NERVsystems/rapidmcp/pkg/myrapid"
	"github.com/NERVsystems/rapidmcp/pkg/tools"
)

// newService builds the lookup service used by the shell subcommands.
func newService(cmd *cobra.Command, opts *rootOptions) (*tools.Service, error) {
	logger := opts.newLogger(cmd.ErrOrStderr())
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	client := myrapid.NewClient(cfg, myrapid.WithLogger(logger))
	return tools.NewService(cfg, client, logger), nil
}

func newFareCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fare FROM_ID TO_ID",
		Short: "Print the fares between two stations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), svc.Fare(cmd.Context(), args[0], args[1]))
			return nil
		},
	}
}

func newStationsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stations",
		Short: "Print every route with its stations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), svc.AllStations(cmd.Context()))
			return nil
		},
	}
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search TEXT...",
		Short: "Search stations and places by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), svc.SearchStations(cmd.Context(), strings.Join(args, " ")))
			return nil
		},
	}
}

func newPlanCmd(opts *rootOptions) *cobra.Command {
	var req tools.JourneyRequest

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a journey between two coordinates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, loc := range []geo.Location{req.From, req.To} {
				if err := geo.ValidateCoords(loc.Latitude, loc.Longitude); err != nil {
					return err
				}
			}
			svc, err := newService(cmd, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), svc.PlanJourney(cmd.Context(), req))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&req.From.Longitude, "from-lng", 0, "Origin longitude")
	flags.Float64Var(&req.From.Latitude, "from-lat", 0, "Origin latitude")
	flags.Float64Var(&req.To.Longitude, "to-lng", 0, "Destination longitude")
	flags.Float64Var(&req.To.Latitude, "to-lat", 0, "Destination latitude")
	flags.StringVar(&req.Mode, "mode", "transit", "Travel mode")
	flags.StringVar(&req.JourneyType, "journey-type", "fastest", "Journey preference")
	flags.StringVar(&req.Departure, "departure", time.Now().Format(tools.DateTimeLayout),
		"Departure as 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'")
	for _, name := range []string{"from-lng", "from-lat", "to-lng", "to-lat"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
