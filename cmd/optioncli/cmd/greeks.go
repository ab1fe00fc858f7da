package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnayoung/go-optionlab/greeks"
)

var greeksCmd = &cobra.Command{
	Use:   "greeks",
	Short: "Compute the analytic Black-Scholes Greeks of a European option",
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := greeksFlags.build()
		if err != nil {
			return err
		}

		g, err := greeks.Compute(opt)
		if err != nil {
			return fmt.Errorf("greeks: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "delta: %s\n", g.Delta.String())
		fmt.Fprintf(out, "gamma: %s\n", g.Gamma.String())
		fmt.Fprintf(out, "theta: %s\n", g.Theta.String())
		fmt.Fprintf(out, "vega:  %s\n", g.Vega.String())
		fmt.Fprintf(out, "rho:   %s\n", g.Rho.String())
		fmt.Fprintf(out, "rho_q: %s\n", g.RhoQ.String())
		return nil
	},
}

var greeksFlags *contractFlags

func init() {
	greeksFlags = addContractFlags(greeksCmd)
}
