package chain

import (
	"errors"

	"go.uber.org/zap"

	"github.com/johnayoung/go-optionlab/primitives"
	"github.com/johnayoung/go-optionlab/strategy"
)

// ErrNoValidCandidate indicates every combination the optimizer examined
// failed its side filter, failed to construct, failed validate(), or
// failed to price max profit/loss.
var ErrNoValidCandidate = errors.New("no valid strategy candidate found in chain")

// CreateStrategyFunc builds a candidate strategy from one row combination,
// using bids for the legs it sells short and asks for the legs it buys
// long, per spec §4.6's create_strategy contract. It returns an error for
// any combination lacking the quotes its shape needs; the optimizer treats
// that as "skip this candidate", not a fatal failure.
type CreateStrategyFunc func(chain *OptionChain, rows []OptionData) (*strategy.Strategy, error)

// Optimizer searches an OptionChain for the best-scoring instance of a
// strategy shape, per spec §4.9. Logger receives a trace-level entry for
// every skipped candidate and its reason; a nil Logger uses zap's no-op
// logger.
type Optimizer struct {
	Logger *zap.Logger
}

func (o *Optimizer) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// FindOptimal enumerates every arity-sized row combination, filters by
// side and by whether a candidate strategy can be constructed, validated,
// and fully priced, scores the survivors by criteria, and returns the
// best. Ties are broken by first-seen iteration order since a later
// candidate only replaces the incumbent on a strictly better score.
func (o *Optimizer) FindOptimal(
	c *OptionChain,
	arity int,
	side primitives.OptimalSide,
	criteria primitives.OptimizationCriteria,
	create CreateStrategyFunc,
) (*strategy.Strategy, error) {
	combos := c.combinations(arity)
	tick := c.Tick()
	log := o.logger()

	var best *strategy.Strategy
	var bestScore primitives.Positive
	var bestSeen bool

	for _, combo := range combos {
		if !rowsMatchSide(combo.Rows, c.UnderlyingPrice, side, tick) {
			log.Debug("skipping candidate", zap.Int("index", combo.Index), zap.String("skip_reason", "strike outside requested side"))
			continue
		}

		candidate, err := create(c, combo.Rows)
		if err != nil {
			log.Debug("skipping candidate", zap.Int("index", combo.Index), zap.String("skip_reason", "construction failed"), zap.Error(err))
			continue
		}
		if !candidate.Validate() {
			log.Debug("skipping candidate", zap.Int("index", combo.Index), zap.String("skip_reason", "failed validation"))
			continue
		}
		if _, err := candidate.MaxProfit(); err != nil {
			log.Debug("skipping candidate", zap.Int("index", combo.Index), zap.String("skip_reason", "max profit undefined"), zap.Error(err))
			continue
		}
		if _, err := candidate.MaxLoss(); err != nil {
			log.Debug("skipping candidate", zap.Int("index", combo.Index), zap.String("skip_reason", "max loss undefined"), zap.Error(err))
			continue
		}

		score, err := scoreFor(candidate, criteria)
		if err != nil {
			log.Debug("skipping candidate", zap.Int("index", combo.Index), zap.String("skip_reason", "scoring failed"), zap.Error(err))
			continue
		}
		if !bestSeen || score.GreaterThan(bestScore) {
			best, bestScore, bestSeen = candidate, score, true
		}
	}

	if !bestSeen {
		return nil, ErrNoValidCandidate
	}
	return best, nil
}

func scoreFor(s *strategy.Strategy, criteria primitives.OptimizationCriteria) (primitives.Positive, error) {
	switch criteria {
	case primitives.CriteriaArea:
		area, err := s.ProfitArea()
		if err != nil {
			return primitives.Positive{}, err
		}
		p, err := primitives.NewPositive(area)
		if err != nil {
			return primitives.Zero(), nil
		}
		return p, nil
	default:
		return s.ProfitRatio()
	}
}

func rowsMatchSide(rows []OptionData, underlying primitives.Positive, side primitives.OptimalSide, tick primitives.Positive) bool {
	for _, row := range rows {
		if !side.Accepts(row.Strike, underlying, tick) {
			return false
		}
	}
	return true
}
