package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sched-sim/sched-sim/sim/workload"
)

// --- sched-sim convert ---

var convertCmd = &cobra.Command{
	Use:   "convert [workload files...]",
	Short: "Merge process files and workload specs into one YAML workload spec",
	Long:  "Load process files and YAML workload specs, check them as the run command would, and write a single YAML workload spec to stdout for piping.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		procs, err := workload.Load(args...)
		if err != nil {
			logrus.Fatalf("Unable to load workload: %v", err)
		}
		spec, err := workload.FromProcesses(procs)
		if err != nil {
			logrus.Fatalf("Conversion failed: %v", err)
		}
		if err := workload.WriteSpec(cmd.OutOrStdout(), spec); err != nil {
			logrus.Fatalf("Writing spec failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
