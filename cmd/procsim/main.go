package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"procsim/internal/job"
	"procsim/internal/report"
	"procsim/internal/sched"
)

var (
	logLevel  string // log verbosity
	showTrace bool   // print one line per processed event
	traceCSV  string // optional CSV trace output path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "procsim",
	Short: "Discrete-event simulator for CPU scheduling policies",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd simulates a process file under a scheduler file
var runCmd = &cobra.Command{
	Use:   "run <scheduler-file> <process-file>",
	Short: "Run the scheduling simulation",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		policy, specs, err := load(args[0], args[1])
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Starting simulation: %s with %d processes", policy, len(specs))

		e, err := sched.New(policy, specs)
		if err != nil {
			logrus.Fatalf("unable to build simulation: %v", err)
		}
		res, err := e.Run(cmd.Context())
		if err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}

		out := cmd.OutOrStdout()
		if showTrace {
			if err := report.WriteTrace(out, res.Trace); err != nil {
				logrus.Fatalf("writing trace: %v", err)
			}
		}
		if traceCSV != "" {
			if err := writeCSV(traceCSV, res.Trace); err != nil {
				logrus.Fatalf("writing CSV trace: %v", err)
			}
			logrus.Infof("Trace written to %s", traceCSV)
		}
		if err := report.WriteStatistics(out, res); err != nil {
			logrus.Fatalf("writing statistics: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// validateCmd only loads and checks both input files
var validateCmd = &cobra.Command{
	Use:   "validate <scheduler-file> <process-file>",
	Short: "Check a scheduler file and a process file without simulating",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, specs, err := load(args[0], args[1])
		if err != nil {
			return err
		}
		if _, err := sched.New(policy, specs); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %s, %d processes\n", policy, len(specs))
		return nil
	},
}

func load(schedFile, procFile string) (sched.Policy, []job.Spec, error) {
	policy, err := sched.LoadPolicy(schedFile)
	if err != nil {
		return sched.Policy{}, nil, fmt.Errorf("%s: %w", schedFile, err)
	}
	specs, err := job.Load(procFile)
	if err != nil {
		return sched.Policy{}, nil, fmt.Errorf("%s: %w", procFile, err)
	}
	return policy, specs, nil
}

func writeCSV(path string, trace []sched.TraceRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteTraceCSV(f, trace); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().BoolVar(&showTrace, "trace", true, "Print every processed event and dispatch")
	runCmd.Flags().StringVar(&traceCSV, "trace-csv", "", "Also write the trace as CSV to this path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
