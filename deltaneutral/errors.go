package deltaneutral

import "errors"

// ErrNoAdjustableLeg indicates the strategy is off neutral but none of
// its adjustable legs carry a nonzero delta to offset with.
var ErrNoAdjustableLeg = errors.New("no adjustable leg with nonzero delta available")
