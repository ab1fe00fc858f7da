package primitives

// Process-wide numerical tolerances. These are the only mutable-adjacent
// state the core carries; they are never mutated at runtime.
var (
	// Tolerance is the general-purpose numerical tolerance used by
	// bisection solvers and break-even checks.
	Tolerance = MustPositive(MustDecimalFromString("0.00000001"))

	// MinVolatility is the lower bound accepted for implied volatility.
	MinVolatility = MustPositive(MustDecimalFromString("0.00000001"))

	// MaxVolatility is the upper bound accepted for implied volatility.
	MaxVolatility = MustPositive(MustDecimalFromString("100.0"))

	// DeltaThreshold is the |net delta| below which a strategy is
	// considered delta-neutral.
	DeltaThreshold = MustDecimalFromString("0.0001")

	// DaysPerYear is the day count used to convert a day-denominated
	// expiration into years.
	DaysPerYear = MustDecimalFromString("365")
)
