package respread

import (
	"errors"
	"slices"
	"strings"
)

// Item is one leaf result keyed by its path segments from the
// traversal root.
type Item[V any] struct {
	Path  []string
	Value V
}

// DisplayItem is one leaf result keyed by its dotted path.
type DisplayItem[V any] struct {
	Name  string
	Value V
}

// Walk visits every leaf beneath the node depth-first in children
// order, passing each leaf's path segments relative to this node. The
// visit function reports whether traversal should continue. Each call
// builds fresh traversal state, so a walk may be restarted freely.
//
// Walking a dynamic node consults its provider; a factory failure
// aborts the walk with that error.
func (n *Node[K, V]) Walk(fn func(path []string, leaf *Leaf[K, V]) bool) error {
	_, err := n.walk(nil, fn)
	return err
}

func (n *Node[K, V]) walk(path []string, fn func(path []string, leaf *Leaf[K, V]) bool) (bool, error) {
	for _, name := range n.ChildNames() {
		child, err := n.Child(name)
		if err != nil {
			return false, err
		}
		cont, err := child.walk(append(slices.Clone(path), name), fn)
		if err != nil {
			return false, err
		}
		if !cont {
			return false, nil
		}
	}
	return true, nil
}

// Names returns the fully qualified name of every leaf beneath the
// node, segments joined by sep, in traversal order.
func (n *Node[K, V]) Names(sep string) ([]string, error) {
	var names []string
	err := n.Walk(func(path []string, _ *Leaf[K, V]) bool {
		names = append(names, strings.Join(path, sep))
		return true
	})
	return names, err
}

// Values calls every leaf beneath the node with key and returns the
// flat ordered sequence of results. Nested nodes contribute their own
// leaves in place, never a nested sequence. The first failure aborts
// the traversal.
func (n *Node[K, V]) Values(key K) ([]V, error) {
	var out []V
	var callErr error
	err := n.Walk(func(_ []string, leaf *Leaf[K, V]) bool {
		v, err := leaf.Call(key)
		if err != nil {
			callErr = err
			return false
		}
		out = append(out, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	if callErr != nil {
		return nil, callErr
	}
	return out, nil
}

// Items calls every leaf beneath the node with key and returns ordered
// (path, value) pairs. Like Values, the first failure aborts.
func (n *Node[K, V]) Items(key K) ([]Item[V], error) {
	var out []Item[V]
	var callErr error
	err := n.Walk(func(path []string, leaf *Leaf[K, V]) bool {
		v, err := leaf.Call(key)
		if err != nil {
			callErr = err
			return false
		}
		out = append(out, Item[V]{Path: path, Value: v})
		return true
	})
	if err != nil {
		return nil, err
	}
	if callErr != nil {
		return nil, callErr
	}
	return out, nil
}

// Display calls every leaf beneath the node with key and returns
// ordered (dotted-name, value) pairs, omitting leaves whose call
// failed instead of aborting. With no swallow set, any leaf error is
// suppressed; otherwise only errors matching one of swallow are
// suppressed and anything else aborts the traversal. Useful when some
// keys are not valid for every leaf.
func (n *Node[K, V]) Display(key K, swallow ...error) ([]DisplayItem[V], error) {
	var out []DisplayItem[V]
	var callErr error
	err := n.Walk(func(path []string, leaf *Leaf[K, V]) bool {
		v, err := leaf.Call(key)
		if err != nil {
			if swallowed(err, swallow) {
				return true
			}
			callErr = err
			return false
		}
		out = append(out, DisplayItem[V]{Name: strings.Join(path, "."), Value: v})
		return true
	})
	if err != nil {
		return nil, err
	}
	if callErr != nil {
		return nil, callErr
	}
	return out, nil
}

func swallowed(err error, swallow []error) bool {
	if len(swallow) == 0 {
		return true
	}
	for _, s := range swallow {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}
