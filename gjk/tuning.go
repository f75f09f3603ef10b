package gjk

// Default tolerance and iteration values. They match the observable behavior
// the engines were validated against; change them only with care.
const (
	// DefaultNearZero is the band within which a projection is treated as
	// exactly zero, classifying the origin as lying on a simplex edge.
	DefaultNearZero = 1e-3

	// DefaultConvergence is the minimum improvement a new support point must
	// provide before an expansion or march loop terminates.
	DefaultConvergence = 0.1

	// DefaultGJKIterations bounds the simplex refinement loop. Typical
	// convergence is 3-6 iterations.
	DefaultGJKIterations = 20

	// DefaultEPAIterations bounds polytope expansion during penetration
	// recovery.
	DefaultEPAIterations = 20

	// DefaultMarchIterations bounds the minimum-displacement march. The march
	// normally stops on its progress check; the cap guarantees termination.
	DefaultMarchIterations = 100

	// DefaultPortalIterations bounds portal refinement in the MPR engine.
	DefaultPortalIterations = 100

	// DefaultHybridIterations bounds the baseline winding-based simplex loop.
	DefaultHybridIterations = 100
)

// Tuning groups the tolerances and iteration caps shared by every engine.
// The zero value is not usable; start from DefaultTuning.
type Tuning struct {
	NearZero         float64 `yaml:"near_zero"`
	Convergence      float64 `yaml:"convergence"`
	GJKIterations    int     `yaml:"gjk_iterations"`
	EPAIterations    int     `yaml:"epa_iterations"`
	MarchIterations  int     `yaml:"march_iterations"`
	PortalIterations int     `yaml:"portal_iterations"`
	HybridIterations int     `yaml:"hybrid_iterations"`
}

func DefaultTuning() Tuning {
	return Tuning{
		NearZero:         DefaultNearZero,
		Convergence:      DefaultConvergence,
		GJKIterations:    DefaultGJKIterations,
		EPAIterations:    DefaultEPAIterations,
		MarchIterations:  DefaultMarchIterations,
		PortalIterations: DefaultPortalIterations,
		HybridIterations: DefaultHybridIterations,
	}
}
