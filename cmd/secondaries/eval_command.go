package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-secondaries/secondary"
)

type evalRow struct {
	ESecondary float64    `json:"e_secondary"`
	Values     [3]float64 `json:"values"`
}

type evalResult struct {
	Kind     string    `json:"kind"`
	EPrimary float64   `json:"e_primary"`
	Rows     []evalRow `json:"rows"`
}

func newEvalCommand(ctx *commandContext) *cobra.Command {
	var primary float64

	cmd := &cobra.Command{
		Use:   "eval <kind> <e_secondary>...",
		Short: "Evaluate the secondary spectrum of a primary particle",
		Long: `Evaluate the secondary spectrum of a primary particle.

kind is one of muon, pi0 or piCh. Each secondary energy produces one row of
three channel densities, already divided by that secondary energy. The
interpolator is built from <data-root>/<kind>_normed.dat on first use and
cached as <data-root>/<kind>_secondaries.json.

Example:
  secondaries eval muon --primary 10 0.5 1 2`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := secondary.ParseKind(args[0])
			if err != nil {
				return err
			}
			energies, err := parseFloats(args[1:])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("primary") {
				return fmt.Errorf("--primary is required")
			}

			_, sp, err := ctx.ensureSpectra()
			if err != nil {
				return err
			}
			rows, err := sp.Evaluate(kind, energies, primary)
			if err != nil {
				return err
			}

			if ctx.JSONMode() {
				res := evalResult{Kind: kind.String(), EPrimary: primary, Rows: make([]evalRow, len(rows))}
				for i, r := range rows {
					res.Rows[i].ESecondary = energies[i]
					copy(res.Rows[i].Values[:], r)
				}
				return writeJSON(cmd, res)
			}

			table := make([][]string, len(rows))
			for i, r := range rows {
				line := []string{formatFloat(energies[i])}
				for _, v := range r {
					line = append(line, formatFloat(v))
				}
				table[i] = line
			}
			writeTable(cmd.OutOrStdout(),
				[]string{"E_secondary", "ch1", "ch2", "ch3"},
				table,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight})
			return nil
		},
	}

	cmd.Flags().Float64VarP(&primary, "primary", "p", 0, "Primary particle energy")
	return cmd
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = v
	}
	return out, nil
}
