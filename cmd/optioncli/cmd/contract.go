package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnayoung/go-optionlab/option"
	"github.com/johnayoung/go-optionlab/primitives"
)

// contractFlags holds the raw float/string inputs a cobra command collects
// before they're validated and converted into decimal-safe primitives.
type contractFlags struct {
	underlying float64
	strike     float64
	volatility float64
	riskFree   float64
	dividend   float64
	days       float64
	style      string
	side       string
	quantity   float64
}

func addContractFlags(c *cobra.Command) *contractFlags {
	f := &contractFlags{}
	c.Flags().Float64Var(&f.underlying, "underlying", 100, "underlying price")
	c.Flags().Float64Var(&f.strike, "strike", 100, "strike price")
	c.Flags().Float64Var(&f.volatility, "volatility", 0.2, "implied volatility")
	c.Flags().Float64Var(&f.riskFree, "rate", 0.05, "risk-free rate")
	c.Flags().Float64Var(&f.dividend, "dividend", 0, "continuous dividend yield")
	c.Flags().Float64Var(&f.days, "days", 30, "days to expiration")
	c.Flags().StringVar(&f.style, "style", "call", "option style: call or put")
	c.Flags().StringVar(&f.side, "side", "long", "position side: long or short")
	c.Flags().Float64Var(&f.quantity, "quantity", 1, "contract quantity")
	return f
}

func (f *contractFlags) build() (*option.Options, error) {
	underlying, err := primitives.NewPositiveFromFloat(f.underlying)
	if err != nil {
		return nil, fmt.Errorf("--underlying: %w", err)
	}
	strike, err := primitives.NewPositiveFromFloat(f.strike)
	if err != nil {
		return nil, fmt.Errorf("--strike: %w", err)
	}
	vol, err := primitives.NewPositiveFromFloat(f.volatility)
	if err != nil {
		return nil, fmt.Errorf("--volatility: %w", err)
	}
	dividend, err := primitives.NewPositiveFromFloat(f.dividend)
	if err != nil {
		return nil, fmt.Errorf("--dividend: %w", err)
	}
	days, err := primitives.NewPositiveFromFloat(f.days)
	if err != nil {
		return nil, fmt.Errorf("--days: %w", err)
	}
	quantity, err := primitives.NewPositiveFromFloat(f.quantity)
	if err != nil {
		return nil, fmt.Errorf("--quantity: %w", err)
	}

	style := primitives.OptionStyle(f.style)
	if !style.Valid() {
		return nil, fmt.Errorf("--style: must be %q or %q", primitives.Call, primitives.Put)
	}
	side := primitives.Side(f.side)
	if !side.Valid() {
		return nil, fmt.Errorf("--side: must be %q or %q", primitives.Long, primitives.Short)
	}

	return option.New(option.Params{
		OptionType:        primitives.European,
		Side:              side,
		UnderlyingSymbol:  "CLI",
		StrikePrice:       strike,
		ExpirationDate:    primitives.ExpirationInDays(days),
		ImpliedVolatility: vol,
		Quantity:          quantity,
		UnderlyingPrice:   underlying,
		RiskFreeRate:      primitives.NewDecimalFromFloat(f.riskFree),
		OptionStyle:       style,
		DividendYield:     dividend,
	})
}
