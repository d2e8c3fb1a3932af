package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-secondaries/kernel"
)

func newKernelCommand(ctx *commandContext) *cobra.Command {
	var point float64

	cmd := &cobra.Command{
		Use:   "kernel --point p <grid>...",
		Short: "Print the triangular Dirac approximation of a point on a grid",
		Long: `Print the triangular Dirac approximation of a point on a grid.

The grid must be strictly increasing with at least two nodes. Each node gets
weight max(0, 1 - |p - g| / h), where h is the spacing of the interval that
contains p.`,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			grid, err := parseFloats(args)
			if err != nil {
				return err
			}
			weights, err := kernel.ApproxDirac(point, grid)
			if err != nil {
				return err
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{
					"point":   point,
					"grid":    grid,
					"weights": weights,
					"mass":    kernel.Mass(weights),
				})
			}

			rows := make([][]string, len(grid))
			for i := range grid {
				rows[i] = []string{formatFloat(grid[i]), formatFloat(weights[i])}
			}
			w := cmd.OutOrStdout()
			writeTable(w, []string{"Node", "Weight"}, rows, []columnAlignment{alignRight, alignRight})
			fmt.Fprintf(w, "mass %s\n", formatFloat(kernel.Mass(weights)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&point, "point", 0, "Point to approximate")
	return cmd
}
