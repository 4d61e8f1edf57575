// SPDX-License-Identifier: MIT

// Command kinetics calibrates Markov transition matrices against observed
// steady-state occupancies and reports balance diagnostics.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kinetics",
		Short: "Steady-state calibration of discrete-state Markov kinetics",
		Long: `kinetics infers plausible transition matrices for a Markov chain whose
kinetics are unobserved, given a measured steady-state occupancy and a
tolerance band around it, and classifies them as reversible or driven.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default from config or info)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json (default from config or text)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newCalibrateCmd(),
		newSteadyCmd(),
		newBalanceCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"version": version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "kinetics version %s\n", version)
			return nil
		},
	}
}
