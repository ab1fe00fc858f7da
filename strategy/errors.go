package strategy

import "errors"

var (
	// ErrInvalidShape indicates the supplied legs do not match the arity
	// or slot roles a strategy's Kind requires.
	ErrInvalidShape = errors.New("legs do not match strategy shape")
	// ErrLegNotFound indicates no leg matches the requested
	// (style, side, strike) signature.
	ErrLegNotFound = errors.New("no matching leg")
	// ErrStrategyFull indicates AddPosition was called on a strategy whose
	// Kind already has every slot filled.
	ErrStrategyFull = errors.New("strategy already has the maximum number of legs")
	// ErrMaxProfitUndefined indicates max profit has no finite or
	// well-defined value for the strategy's current legs.
	ErrMaxProfitUndefined = errors.New("max profit is undefined for this strategy")
	// ErrMaxLossUndefined indicates max loss has no finite or well-defined
	// value for the strategy's current legs.
	ErrMaxLossUndefined = errors.New("max loss is undefined for this strategy")
	// ErrNoAdjustableLeg indicates no leg of the strategy is eligible to
	// absorb a delta adjustment.
	ErrNoAdjustableLeg = errors.New("no adjustable leg available")
)
