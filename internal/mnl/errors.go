package mnl

import "fmt"

// ConfigError reports an invalid sampler or model parameter. It always fires
// before any sampling work begins.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InstabilityError reports a non-finite log-posterior during sampling. The
// run aborts rather than silently skipping the iteration; the failing
// iteration and coefficient state are kept for diagnosis.
type InstabilityError struct {
	Iteration int
	State     []float64
}

func (e *InstabilityError) Error() string {
	return fmt.Sprintf("non-finite log-posterior at iteration %d (state %v)", e.Iteration, e.State)
}
