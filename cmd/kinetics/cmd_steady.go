// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/kinetics/steadystate"
)

func newSteadyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "steady",
		Short: "Solve the stationary distribution of a transition matrix",
		Example: `  kinetics steady --matrix "0.9,0.1;0.5,0.5"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("matrix")
			T, err := parseMatrix(raw)
			if err != nil {
				return fmt.Errorf("parsing --matrix: %w", err)
			}
			pi, err := steadystate.Solve(T)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string][]float64{"steady_state": pi})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatVec(pi))
			return nil
		},
	}
	cmd.Flags().String("matrix", "", `Row-stochastic matrix, rows separated by ';' and cells by ','`)
	_ = cmd.MarkFlagRequired("matrix")

	return cmd
}
