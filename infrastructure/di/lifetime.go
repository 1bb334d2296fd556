package di

// Lifetime controls how often a registered factory runs
type Lifetime int

const (
	// Transient creates a new instance on each resolution
	Transient Lifetime = iota

	// Singleton constructs at most once and caches the instance
	Singleton
)

// String returns the lifetime name
func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}
