package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	sim "flight-simulator/internal/sim"
)

func main() {
	if err := newHeadlessCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newHeadlessCmd() *cobra.Command {
	cfg := sim.DefaultConfig()
	var (
		steps    int
		duration time.Duration
		script   string
		hold     string
		logEvery int
		logLevel string
	)

	cmd := &cobra.Command{
		Use:          "headless",
		Short:        "Run the flight model without a window",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := sim.NewLogger(os.Stderr, logLevel)
			if err != nil {
				return err
			}
			simulator, err := sim.NewSimulator(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			started := time.Now()
			var performed int
			switch {
			case script != "":
				plan, err := sim.ParseScript(script)
				if err != nil {
					return err
				}
				logger.Info("running script", "ticks", humanize.Comma(int64(plan.Ticks())))
				performed = simulator.RunScript(ctx, plan, logEvery)
			default:
				plan, err := sim.ParseScript(hold + ":1")
				if err != nil {
					return err
				}
				keys := plan[0].Keys
				if steps > 0 {
					performed = simulator.RunHeadless(ctx, steps, keys)
				} else {
					performed = runRealtime(ctx, simulator, keys, duration)
				}
			}

			t := simulator.Telemetry()
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s steps in %s. %s\n",
				humanize.Comma(int64(performed)), time.Since(started).Round(time.Millisecond), t)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&steps, "steps", 1000, "number of fixed updates to run (0 runs in real time for --duration)")
	f.IntVar(&cfg.UPS, "ups", cfg.UPS, "fixed updates per second")
	f.DurationVar(&duration, "duration", time.Second, "wall-clock run length when --steps is 0")
	f.StringVar(&script, "script", "", `control script, for example "up:600,hold:120,left:90,down:300"`)
	f.StringVar(&hold, "hold", "up", "action held for the whole run when no script is given")
	f.StringVar(&cfg.Scene, "scene", cfg.Scene, "scene layout")
	f.IntVar(&logEvery, "log-every", 0, "log telemetry every N scripted ticks")
	f.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	return cmd
}

// runRealtime paces ticks against the wall clock until d elapses.
func runRealtime(ctx context.Context, s *sim.Simulator, keys sim.KeyState, d time.Duration) int {
	if d <= 0 {
		d = time.Second
	}
	ticker := time.NewTicker(s.TickInterval())
	defer ticker.Stop()
	deadline := time.NewTimer(d)
	defer deadline.Stop()

	performed := 0
	for {
		select {
		case <-ctx.Done():
			return performed
		case <-deadline.C:
			return performed
		case <-ticker.C:
			s.Step(keys)
			performed++
		}
	}
}
