package respread

import "time"

// Hook observes leaf evaluation. Hooks registered on a node apply to
// every leaf call at or below it; a leaf fires the hooks of its owner
// and the owner's ancestors, nearest first on entry and in reverse on
// exit. Cached hits are served before hooks fire, so a hook sees only
// actual evaluations.
type Hook interface {
	// BeforeCall runs before a leaf body evaluates. path is the
	// leaf's dotted fully qualified name.
	BeforeCall(path string, key any)

	// AfterCall runs after the body returns, with its result or error
	// and the elapsed evaluation time.
	AfterCall(path string, key any, value any, err error, elapsed time.Duration)
}

// BaseHook is a no-op Hook for embedding, so hook types only implement
// the callbacks they care about.
type BaseHook struct{}

func (BaseHook) BeforeCall(path string, key any) {}

func (BaseHook) AfterCall(path string, key any, value any, err error, elapsed time.Duration) {}
