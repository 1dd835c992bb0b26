package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"flight-simulator/internal/cockpit"
	sim "flight-simulator/internal/sim"
)

func main() {
	if err := newCockpitCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCockpitCmd() *cobra.Command {
	cfg := sim.DefaultConfig()
	var logFile string

	cmd := &cobra.Command{
		Use:          "cockpit",
		Short:        "Fly the plane from the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The screen owns stdout, so logs go to a file or nowhere.
			var out io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				out = f
			}
			logger, err := sim.NewLogger(out, "info")
			if err != nil {
				return err
			}

			simulator, err := sim.NewSimulator(cfg, logger)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("init terminal: %w", err)
			}
			defer screen.Fini()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			logger.Info("cockpit started", "scene", cfg.Scene, "ups", cfg.UPS)
			err = cockpit.New(screen, simulator).Run(ctx)
			if errors.Is(err, context.Canceled) {
				err = nil
			}
			logger.Info("cockpit stopped", "telemetry", simulator.Telemetry().String())
			return err
		},
	}

	f := cmd.Flags()
	f.IntVar(&cfg.UPS, "ups", cfg.UPS, "fixed updates per second")
	f.StringVar(&cfg.Scene, "scene", cfg.Scene, "scene layout")
	f.StringVar(&logFile, "log-file", "", "append logs to this file")
	return cmd
}
