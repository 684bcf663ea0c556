package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sched-sim/sched-sim/sim/workload"
)

// --- sched-sim generate ---

var (
	generatorSpecPath string
	generatorSeed     int64
)

// generateLong is the help text of the generate command.
const generateLong = "Sample process arrivals and burst durations from the distributions in a generator spec, once, with the given seed. " +
	"Output is a fixed YAML workload file written to stdout for piping into run. " +
	"The same spec and seed always produce the same file, and the run command itself never randomizes: " +
	"it replays the workload file deterministically."

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic YAML workload spec from a generator spec",
	Long:  generateLong,
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := workload.LoadGeneratorSpec(generatorSpecPath)
		if err != nil {
			logrus.Fatalf("Failed to load generator spec: %v", err)
		}
		if cmd.Flags().Changed("seed") {
			spec.Seed = generatorSeed
		}
		procs, err := workload.Generate(spec)
		if err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
		out, err := workload.FromProcesses(procs)
		if err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
		if err := workload.WriteSpec(cmd.OutOrStdout(), out); err != nil {
			logrus.Fatalf("Writing spec failed: %v", err)
		}
	},
}

func init() {
	generateCmd.Flags().StringVar(&generatorSpecPath, "spec", "", "Path to generator spec YAML")
	generateCmd.Flags().Int64Var(&generatorSeed, "seed", 0, "Override the spec's random seed")
	_ = generateCmd.MarkFlagRequired("spec")

	rootCmd.AddCommand(generateCmd)
}
