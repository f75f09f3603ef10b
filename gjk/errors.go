package gjk

import "fmt"

// ConvergenceError reports that an iterative stage exhausted its iteration
// cap without resolving. It is recoverable at the call boundary: callers may
// retry with relaxed tolerances, fall back to another engine, or skip the
// pair for one frame.
type ConvergenceError struct {
	Stage      string
	Iterations int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s failed to converge after %d iterations", e.Stage, e.Iterations)
}
