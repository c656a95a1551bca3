package respread

import (
	"fmt"
	"slices"
)

// ChildProvider derives a node's child set from an external data source
// instead of static registration. DerivedChildren is consulted on every
// membership or enumeration request and is never cached by the node, so
// the child set tracks the source's current state.
type ChildProvider[K comparable, V any] interface {
	// DerivedChildren returns the current ordered valid names.
	DerivedChildren() []string

	// ChildFactory returns the body for a derived name. It is called
	// only for names absent from the node's static registrations and
	// present in DerivedChildren.
	ChildFactory(name string) (Func[K, V], error)
}

// NewDynamicNode builds a node whose children are derived from
// provider, optionally extended with static defs. Derived names come
// first in children order, then static registrations; a static
// registration shadows a derived name on lookup.
func NewDynamicNode[K comparable, V any](provider ChildProvider[K, V], defs ...Def[K, V]) *Node[K, V] {
	n := NewNode(defs...)
	n.provider = provider
	return n
}

// Provider returns the node's child provider, or nil for a static node.
func (n *Node[K, V]) Provider() ChildProvider[K, V] {
	return n.provider
}

// Table is an ordered, row-keyed table: each row name maps a call key
// to a value. It implements ChildProvider, so a dynamic node backed by
// a Table exposes one child per row; a child called with a key the row
// has no value for fails with ErrNoData, the usual designated kind for
// redirect fallbacks from historical data to projections.
type Table[K comparable, V any] struct {
	rows []string
	data map[string]map[K]V
}

// NewTable creates an empty table.
func NewTable[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{data: make(map[string]map[K]V)}
}

// AddRow appends a row. Re-adding a name replaces its cells but keeps
// its position.
func (t *Table[K, V]) AddRow(name string, cells map[K]V) *Table[K, V] {
	if _, ok := t.data[name]; !ok {
		t.rows = append(t.rows, name)
	}
	row := make(map[K]V, len(cells))
	for k, v := range cells {
		row[k] = v
	}
	t.data[name] = row
	return t
}

// Set writes one cell.
func (t *Table[K, V]) Set(name string, key K, value V) *Table[K, V] {
	if _, ok := t.data[name]; !ok {
		t.rows = append(t.rows, name)
		t.data[name] = make(map[K]V)
	}
	t.data[name][key] = value
	return t
}

// Lookup reads one cell.
func (t *Table[K, V]) Lookup(name string, key K) (V, bool) {
	v, ok := t.data[name][key]
	return v, ok
}

// DerivedChildren implements ChildProvider.
func (t *Table[K, V]) DerivedChildren() []string {
	return slices.Clone(t.rows)
}

// ChildFactory implements ChildProvider. The returned body reads the
// named row, so it reflects cells written after synthesis.
func (t *Table[K, V]) ChildFactory(name string) (Func[K, V], error) {
	if _, ok := t.data[name]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrChildNotFound, name)
	}
	return func(_ *CallCtx[K, V], key K) (V, error) {
		v, ok := t.data[name][key]
		if !ok {
			var zero V
			return zero, fmt.Errorf("%w: row %q key %v", ErrNoData, name, key)
		}
		return v, nil
	}, nil
}
