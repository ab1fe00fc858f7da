package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnayoung/go-optionlab/pricing"
)

var priceSteps int

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Price a European option under Black-Scholes and a CRR binomial tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := priceFlags.build()
		if err != nil {
			return err
		}

		bs, err := pricing.BlackScholes(opt)
		if err != nil {
			return fmt.Errorf("black-scholes: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "black-scholes: %s\n", bs.String())

		tree, err := pricing.Binomial(opt, priceSteps)
		if err != nil {
			return fmt.Errorf("binomial: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "binomial (%d steps): %s\n", priceSteps, tree.Price.String())
		return nil
	},
}

var priceFlags *contractFlags

func init() {
	priceFlags = addContractFlags(priceCmd)
	priceCmd.Flags().IntVar(&priceSteps, "steps", 500, "binomial tree step count")
}
