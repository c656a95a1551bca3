package respread

import (
	"errors"
	"slices"
)

// Path hops. A path is an ordered sequence of hops resolved from a
// starting node: HopParent moves to the enclosing node, HopRoot to the
// ultimate ancestor, and any other element descends into that named
// child. Both strings are reserved child names, so a literal hop can
// never be ambiguous.
const (
	HopParent = hopParent
	HopRoot   = hopRoot
)

// Path locates a target child relative to a node.
type Path []string

// Resolve walks the path from this node. Any unsatisfiable hop fails
// with a *PathError wrapping the cause; errors.Is against
// ErrPathResolution matches every resolution failure.
func (n *Node[K, V]) Resolve(path ...string) (Child[K, V], error) {
	var cur Child[K, V] = n
	for _, hop := range path {
		node, ok := cur.(*Node[K, V])
		if !ok {
			return nil, &PathError{Path: path, Hop: hop, Err: ErrNotNode}
		}
		switch hop {
		case HopParent:
			if node.parent == nil {
				return nil, &PathError{Path: path, Hop: hop, Err: errors.New("node has no parent")}
			}
			cur = node.parent
		case HopRoot:
			cur = node.Root()
		default:
			child, err := node.Child(hop)
			if err != nil {
				return nil, &PathError{Path: path, Hop: hop, Err: err}
			}
			cur = child
		}
	}
	return cur, nil
}

// ResolveLeaf resolves a path that must end on a leaf.
func (n *Node[K, V]) ResolveLeaf(path ...string) (*Leaf[K, V], error) {
	c, err := n.Resolve(path...)
	if err != nil {
		return nil, err
	}
	leaf, ok := c.(*Leaf[K, V])
	if !ok {
		pe := &PathError{Path: path, Err: ErrNotLeaf}
		if len(path) > 0 {
			pe.Hop = path[len(path)-1]
		}
		return nil, pe
	}
	return leaf, nil
}

type redirectConfig struct {
	appendName bool
}

// RedirectOption modifies a Redirect wrapper.
type RedirectOption func(*redirectConfig)

// AppendName appends the wrapped leaf's own registered name to the
// redirect path at resolution time, so one path literal can serve many
// same-shaped leaves delegating to their counterparts on another node.
func AppendName() RedirectOption {
	return func(c *redirectConfig) {
		c.appendName = true
	}
}

// Redirect wraps fallback so that each call first resolves path from
// the owning node and invokes the target leaf with the same key. If the
// target fails with an error matching one of catch, the fallback body
// runs with the original arguments instead; any other target error is
// fatal and propagates unchanged.
//
// This is the two-tier evaluation policy: prefer an authoritative
// source and compute a value only when that source signals
// inapplicability through a designated error kind.
func Redirect[K comparable, V any](path Path, catch []error, fallback Func[K, V], opts ...RedirectOption) Func[K, V] {
	var cfg redirectConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(c *CallCtx[K, V], key K) (V, error) {
		var zero V
		if c.Node() == nil {
			return zero, &PathError{Path: path, Err: errors.New("leaf is not registered on a node")}
		}

		hops := slices.Clone(path)
		if cfg.appendName {
			hops = append(hops, c.Name())
		}

		target, err := c.Node().ResolveLeaf(hops...)
		if err != nil {
			return zero, err
		}

		v, err := target.Call(key)
		if err == nil {
			return v, nil
		}
		for _, kind := range catch {
			if errors.Is(err, kind) {
				return fallback(c, key)
			}
		}
		return zero, err
	}
}
