package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/sched"
	"github.com/schedsim/schedsim/server"
)

var (
	// CLI flags; each overrides the corresponding config-file field.
	policyName string // Active scheduling policy (FIFO, SJF, RR, MLFQ)
	socketPath string // UNIX socket to listen on
	tickMs     int64  // Simulated duration of one tick (ms)
	quantumMs  int64  // RR/MLFQ time slice (ms)
	tiers      int    // Number of MLFQ priority levels
	horizonMs  int64  // Stop after this much simulated time (0 = run until interrupted)
	configPath string // Optional YAML config file
	logLevel   string // Log verbosity level
	noPace     bool   // Disable per-tick wall sleeping (run as fast as possible)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "schedsim",
	Short: "Tick-driven simulator of a single-CPU OS scheduler",
}

// runCmd starts the socket server and the tick loop.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scheduler simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := sched.DefaultConfig()
		if configPath != "" {
			cfg, err = sched.LoadConfig(configPath)
			if err != nil {
				logrus.Fatalf("Invalid config file: %v", err)
			}
		}
		applyFlagOverrides(cmd, &cfg)

		// Invalid selections are fatal here, before any engine state exists.
		engine, err := sched.NewEngine(cfg)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		srv := server.New(cfg.SocketPath, engine)
		if err := srv.Listen(); err != nil {
			logrus.Fatalf("Cannot start server: %v", err)
		}
		defer srv.Close()

		logrus.Infof("Active scheduler: %s", cfg.Policy)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			if err := srv.Serve(ctx); err != nil {
				logrus.Errorf("server: %v", err)
				stop()
			}
		}()

		engine.Run(ctx)
		engine.Metrics().Print(engine.Now())
	},
}

// applyFlagOverrides copies explicitly-set flags over the loaded config so
// the precedence is flags > config file > defaults.
func applyFlagOverrides(cmd *cobra.Command, cfg *sched.Config) {
	if cmd.Flags().Changed("policy") {
		cfg.Policy = policyName
	}
	if cmd.Flags().Changed("socket") {
		cfg.SocketPath = socketPath
	}
	if cmd.Flags().Changed("tick-ms") {
		cfg.TickMs = tickMs
	}
	if cmd.Flags().Changed("quantum-ms") {
		cfg.QuantumMs = quantumMs
	}
	if cmd.Flags().Changed("tiers") {
		cfg.Tiers = tiers
	}
	if cmd.Flags().Changed("horizon-ms") {
		cfg.HorizonMs = horizonMs
	}
	if cmd.Flags().Changed("no-pace") {
		cfg.Pace = !noPace
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sched.DefaultConfig()

	runCmd.Flags().StringVar(&policyName, "policy", defaults.Policy, "Scheduling policy (FIFO, SJF, RR, MLFQ)")
	runCmd.Flags().StringVar(&socketPath, "socket", defaults.SocketPath, "UNIX socket path to listen on")
	runCmd.Flags().Int64Var(&tickMs, "tick-ms", defaults.TickMs, "Simulated milliseconds per tick")
	runCmd.Flags().Int64Var(&quantumMs, "quantum-ms", defaults.QuantumMs, "RR/MLFQ time slice in ms")
	runCmd.Flags().IntVar(&tiers, "tiers", defaults.Tiers, "Number of MLFQ priority levels")
	runCmd.Flags().Int64Var(&horizonMs, "horizon-ms", defaults.HorizonMs, "Stop after this much simulated time (0 = unbounded)")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML config file (flags override it)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().BoolVar(&noPace, "no-pace", false, "Do not sleep between ticks (simulate as fast as possible)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
