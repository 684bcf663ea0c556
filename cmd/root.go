package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/sched-sim/sched-sim/sim"
	"github.com/sched-sim/sched-sim/sim/trace"
	"github.com/sched-sim/sched-sim/sim/workload"
)

var (
	// CLI flags for the run configuration
	configPath  string  // Optional YAML run config
	numCPUs     int     // Number of simulated processing units
	policyName  string  // Scheduling policy name
	quantum     int     // Round-robin quantum (ticks)
	alpha       float64 // SJF smoothing factor
	horizon     int64   // Max ticks to simulate (0 = until idle)
	traceLevel  string  // Trace verbosity
	logLevel    string  // Log verbosity level
	showMetrics bool    // Print the metrics tables after the run
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "sched-sim",
	Short: "Tick-based simulator for preemptive CPU scheduling policies",
}

// runCmd executes the simulation using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run [workload files...]",
	Short: "Run a scheduling simulation over one or more workload files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid run configuration: %v", err)
		}
		procs, err := workload.Load(args...)
		if err != nil {
			logrus.Fatalf("Unable to load workload: %v", err)
		}
		logrus.Infof("Loaded %d processes from %d files", len(procs), len(args))

		if err := runSimulation(cmd.OutOrStdout(), cfg, procs); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// resolveRunConfig loads the optional config file and lets explicitly set flags
// override its values.
func resolveRunConfig(cmd *cobra.Command) (*sim.RunConfig, error) {
	cfg := &sim.RunConfig{}
	if configPath != "" {
		loaded, err := sim.LoadRunConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("cpus") || cfg.CPUs == nil {
		cfg.CPUs = &numCPUs
	}
	if flags.Changed("policy") || cfg.Policy == "" {
		cfg.Policy = policyName
	}
	if flags.Changed("quantum") || cfg.Quantum == nil {
		cfg.Quantum = &quantum
	}
	if flags.Changed("alpha") || cfg.Alpha == nil {
		cfg.Alpha = &alpha
	}
	if flags.Changed("horizon") || cfg.Horizon == nil {
		cfg.Horizon = &horizon
	}
	if flags.Changed("trace") || cfg.Trace == "" {
		cfg.Trace = traceLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runSimulation drives a fresh simulator over procs and reports to w.
func runSimulation(w io.Writer, cfg *sim.RunConfig, procs []sim.Process) error {
	s, err := sim.NewSimulatorFromConfig(cfg)
	if err != nil {
		return err
	}
	defer s.Destroy()

	for _, p := range procs {
		if err := s.AddProcess(p); err != nil {
			return fmt.Errorf("adding process: %w", err)
		}
	}
	runErr := s.Run(cfg.HorizonTicks())

	if s.Trace != nil {
		if err := trace.Render(w, s.Trace); err != nil {
			return fmt.Errorf("rendering trace: %w", err)
		}
		summary := trace.Summarize(s.Trace)
		logrus.Infof("Trace: %d ticks, %d dispatches, %d preemptions, %d splits",
			summary.TotalTicks, summary.EventCounts[trace.EventDispatch],
			summary.EventCounts[trace.EventPreempt], summary.EventCounts[trace.EventSplit])
	}
	if showMetrics {
		s.Metrics.Print(w)
	}
	return runErr
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML run configuration")
	runCmd.Flags().IntVar(&numCPUs, "cpus", sim.DefaultCPUs, "Number of simulated CPUs")
	runCmd.Flags().StringVar(&policyName, "policy", sim.DefaultPolicy, "Scheduling policy (fcfs, round-robin, sjf)")
	runCmd.Flags().IntVar(&quantum, "quantum", sim.DefaultQuantum, "Round-robin quantum in ticks")
	runCmd.Flags().Float64Var(&alpha, "alpha", sim.DefaultSJFAlpha, "SJF prediction smoothing factor in (0, 1]")
	runCmd.Flags().Int64Var(&horizon, "horizon", 0, "Maximum ticks to simulate (0 = until all processes terminate)")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Trace level (none, ticks, events)")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().BoolVar(&showMetrics, "metrics", true, "Print per-process and per-CPU metrics")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
