package main

import (
	"fmt"
	"strconv"
	"time"

	"moonbot/config"
	"moonbot/logger"
	"moonbot/lunar"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "moonbot",
		Short:         "Moon phase calculator and Telegram notifier",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadConfig()
			logger.Init(logger.Options{
				Level:  config.AppConfig.LogLevel,
				Format: config.AppConfig.LogFormat,
			})
		},
	}

	root.AddCommand(serveCmd(), phaseCmd(), intervalCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot and the phase change notifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), config.AppConfig)
		},
	}
}

func phaseCmd() *cobra.Command {
	var julianDay string
	cmd := &cobra.Command{
		Use:   "phase [YYYY-MM-DD]",
		Short: "Print the Moon phase for a date, today by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in lunar.Input = lunar.NowInput{}
			switch {
			case julianDay != "" && len(args) > 0:
				return fmt.Errorf("use either a date or --jd, not both")
			case julianDay != "":
				jd, err := strconv.ParseInt(julianDay, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid Julian day %q: %w", julianDay, err)
				}
				in = lunar.JulianDayInput(jd)
			case len(args) == 1:
				date, err := lunar.ParseCalendarDate(args[0], time.Now())
				if err != nil {
					return err
				}
				in = lunar.CalendarDateInput(date)
			}
			m := lunar.ComputeMoonPhase(in)
			fmt.Fprint(cmd.OutOrStdout(), phaseReport(m))
			if ts, ok := m.Timestamp(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Unix time %d ms\n", ts)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&julianDay, "jd", "", "Julian day number instead of a date")
	return cmd
}

func intervalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interval FROM TO",
		Short: "Print the Moon phase for every day from FROM to TO inclusive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			from, err := lunar.ParseCalendarDate(args[0], now)
			if err != nil {
				return err
			}
			to, err := lunar.ParseCalendarDate(args[1], now)
			if err != nil {
				return err
			}
			cfg := config.AppConfig
			fmt.Fprint(cmd.OutOrStdout(), intervalNights(from, to, cfg.Latitude, cfg.Longitude).Print())
			return nil
		},
	}
}
