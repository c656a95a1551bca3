package respread

// Scope is a bounded evaluation pass over a node's subtree. Acquiring
// clears every memo store beneath the node, so the pass starts from
// clean state; releasing clears again, so nothing computed during the
// pass leaks into the next one. Scopes are the recommended way to bound
// memo growth over long key ranges.
type Scope[K comparable, V any] struct {
	node     *Node[K, V]
	released bool
}

// Acquire opens a scope over n, clearing its subtree's caches.
func Acquire[K comparable, V any](n *Node[K, V]) *Scope[K, V] {
	n.CacheClear(false)
	return &Scope[K, V]{node: n}
}

// Node returns the scoped node.
func (s *Scope[K, V]) Node() *Node[K, V] {
	return s.node
}

// Release clears the subtree's caches again and closes the scope.
// Releasing twice is a no-op.
func (s *Scope[K, V]) Release() {
	if s.released {
		return
	}
	s.released = true
	s.node.CacheClear(false)
}

// Scoped runs body inside a scope over n. Exit-side clearing is
// guaranteed: it runs whether body returns an error, succeeds, or
// panics.
func Scoped[K comparable, V any](n *Node[K, V], body func(n *Node[K, V]) error) error {
	s := Acquire(n)
	defer s.Release()
	return body(n)
}
