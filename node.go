package respread

import (
	"fmt"
	"slices"
)

// Node is an ordered, uniquely named registry of children that
// propagates calls to every leaf beneath it. Nodes nest to form callable
// trees; a node holds only a non-owning reference upward to its parent.
//
// A node is single-threaded: nothing in it synchronizes, and concurrent
// use of one tree must be serialized by the caller.
type Node[K comparable, V any] struct {
	parent   *Node[K, V]
	name     string
	order    []string
	children map[string]Child[K, V]
	provider ChildProvider[K, V]
	hooks    []Hook
}

// Def is one (name, child) entry of a node's declared child set. Defs
// are evaluated once, in declaration order, by NewNode; composing
// constructors that append extra defs after a shared base list is the
// way to extend a node type.
type Def[K comparable, V any] struct {
	name  string
	child Child[K, V]
}

// WithChild declares a child under the given name.
func WithChild[K comparable, V any](name string, c Child[K, V]) Def[K, V] {
	return Def[K, V]{name: name, child: c}
}

// WithLeaf declares an uncached leaf under the given name.
func WithLeaf[K comparable, V any](name string, fn Func[K, V]) Def[K, V] {
	return Def[K, V]{name: name, child: NewLeaf(fn)}
}

// WithCached declares a cached leaf under the given name.
func WithCached[K comparable, V any](name string, fn Func[K, V]) Def[K, V] {
	return Def[K, V]{name: name, child: NewCached(fn)}
}

// WithNode declares a nested node under the given name.
func WithNode[K comparable, V any](name string, n *Node[K, V]) Def[K, V] {
	return Def[K, V]{name: name, child: n}
}

// NewNode builds a node from its declared children, registered in
// declaration order. Invalid or duplicate names panic: a bad def list is
// a construction-time programming error, not a runtime condition.
func NewNode[K comparable, V any](defs ...Def[K, V]) *Node[K, V] {
	n := &Node[K, V]{children: make(map[string]Child[K, V])}
	for _, def := range defs {
		if err := n.AddChild(def.name, def.child); err != nil {
			panic(err)
		}
	}
	return n
}

// AddChild registers child under name at the end of the children order.
// Registering an existing name fails with ErrDuplicateName; reserved or
// non-identifier names fail with ErrInvalidName.
func (n *Node[K, V]) AddChild(name string, child Child[K, V]) error {
	return n.AddChildAt(name, child, len(n.order))
}

// AddChildAt registers child under name at the given position in the
// children order. Positions past the end append.
func (n *Node[K, V]) AddChildAt(name string, child Child[K, V], index int) error {
	if err := validateName(name); err != nil {
		return err
	}
	if _, ok := n.children[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if index < 0 {
		index = 0
	}
	if index > len(n.order) {
		index = len(n.order)
	}
	n.children[name] = child
	n.order = slices.Insert(n.order, index, name)
	child.bind(n, name)
	return nil
}

// ReplaceChild overwrites an existing registration, keeping its position
// in the children order. A name not yet registered fails with
// ErrChildNotFound.
func (n *Node[K, V]) ReplaceChild(name string, child Child[K, V]) error {
	old, ok := n.children[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrChildNotFound, name)
	}
	old.unbind()
	n.children[name] = child
	child.bind(n, name)
	return nil
}

// RemoveChild deregisters the named child.
func (n *Node[K, V]) RemoveChild(name string) error {
	child, ok := n.children[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrChildNotFound, name)
	}
	child.unbind()
	delete(n.children, name)
	if i := slices.Index(n.order, name); i >= 0 {
		n.order = slices.Delete(n.order, i, i+1)
	}
	return nil
}

// Reorder replaces the children order with the given one. The new order
// must be a permutation of the current names, or a subset; names left
// out are deregistered.
func (n *Node[K, V]) Reorder(names ...string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := n.children[name]; !ok {
			return fmt.Errorf("%w: %q", ErrChildNotFound, name)
		}
		if seen[name] {
			return fmt.Errorf("%w: %q listed twice in reorder", ErrDuplicateName, name)
		}
		seen[name] = true
	}
	for _, name := range n.order {
		if !seen[name] {
			n.children[name].unbind()
			delete(n.children, name)
		}
	}
	n.order = slices.Clone(names)
	return nil
}

// SetParent sets the upward reference and returns the node for fluent
// chaining. No cycle check is made; setting a node as its own ancestor
// makes Root and path resolution loop forever.
func (n *Node[K, V]) SetParent(parent *Node[K, V]) *Node[K, V] {
	n.parent = parent
	return n
}

// Parent returns the enclosing node, or nil for a root.
func (n *Node[K, V]) Parent() *Node[K, V] {
	return n.parent
}

// Root follows parent links to the ultimate ancestor.
func (n *Node[K, V]) Root() *Node[K, V] {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Name returns the name the node is registered under, or "" for a root.
func (n *Node[K, V]) Name() string {
	return n.name
}

// Path returns the registered names from the root down to this node.
// A root contributes no segment.
func (n *Node[K, V]) Path() []string {
	if n.parent == nil {
		return nil
	}
	return append(n.parent.Path(), n.name)
}

// ChildNames returns the current ordered name set. For a dynamic node
// the provider's derived names come first, then static registrations
// not shadowed by a derived name; the provider is consulted on every
// request, never cached.
func (n *Node[K, V]) ChildNames() []string {
	if n.provider == nil {
		return slices.Clone(n.order)
	}
	names := slices.Clone(n.provider.DerivedChildren())
	for _, name := range n.order {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// NumChildren returns the number of direct children.
func (n *Node[K, V]) NumChildren() int {
	return len(n.ChildNames())
}

// HasChild reports whether name is a registered or derivable child.
func (n *Node[K, V]) HasChild(name string) bool {
	_, err := n.Child(name)
	return err == nil
}

// Child looks up a direct child by name. Static registrations win;
// a dynamic node then consults its provider and synthesizes a fresh
// leaf for a derived name. Synthesized leaves are not persisted: every
// access re-synthesizes unless the caller registers one explicitly.
func (n *Node[K, V]) Child(name string) (Child[K, V], error) {
	if c, ok := n.children[name]; ok {
		return c, nil
	}
	if n.provider != nil && slices.Contains(n.provider.DerivedChildren(), name) {
		fn, err := n.provider.ChildFactory(name)
		if err != nil {
			return nil, err
		}
		leaf := NewLeaf(fn)
		leaf.bind(n, name)
		return leaf, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrChildNotFound, name)
}

// MustChild is Child for names known to exist; it panics otherwise.
func (n *Node[K, V]) MustChild(name string) Child[K, V] {
	c, err := n.Child(name)
	if err != nil {
		panic(err)
	}
	return c
}

// LeafOf looks up a direct child and requires it to be a leaf.
func (n *Node[K, V]) LeafOf(name string) (*Leaf[K, V], error) {
	c, err := n.Child(name)
	if err != nil {
		return nil, err
	}
	leaf, ok := c.(*Leaf[K, V])
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotLeaf, name)
	}
	return leaf, nil
}

// NodeOf looks up a direct child and requires it to be a nested node.
func (n *Node[K, V]) NodeOf(name string) (*Node[K, V], error) {
	c, err := n.Child(name)
	if err != nil {
		return nil, err
	}
	sub, ok := c.(*Node[K, V])
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotNode, name)
	}
	return sub, nil
}

// Call invokes the named leaf child with the given key.
func (n *Node[K, V]) Call(name string, key K) (V, error) {
	leaf, err := n.LeafOf(name)
	if err != nil {
		var zero V
		return zero, err
	}
	return leaf.Call(key)
}

// AttrAbove returns the first child named name on any ancestor,
// searching upward from the immediate parent.
func (n *Node[K, V]) AttrAbove(name string) (Child[K, V], error) {
	if n.parent == nil {
		return nil, fmt.Errorf("%w: no %q above node", ErrChildNotFound, name)
	}
	if c, err := n.parent.Child(name); err == nil {
		return c, nil
	}
	return n.parent.AttrAbove(name)
}

// Use registers a hook observing every leaf call at or below this node.
func (n *Node[K, V]) Use(h Hook) {
	n.hooks = append(n.hooks, h)
}

// allHooks collects hooks registered on this node and its ancestors,
// nearest first.
func (n *Node[K, V]) allHooks() []Hook {
	var hooks []Hook
	for cur := n; cur != nil; cur = cur.parent {
		hooks = append(hooks, cur.hooks...)
	}
	return hooks
}

// CacheClear empties every memo store beneath the node. With entireTree
// set it first ascends to the root, clearing the whole tree.
func (n *Node[K, V]) CacheClear(entireTree bool) {
	if entireTree && n.parent != nil {
		n.Root().CacheClear(false)
		return
	}
	n.cacheClear()
}

func (n *Node[K, V]) cacheClear() {
	for _, name := range n.order {
		n.children[name].cacheClear()
	}
}

func (n *Node[K, V]) bind(owner *Node[K, V], name string) {
	n.parent = owner
	n.name = name
}

func (n *Node[K, V]) unbind() {
	n.parent = nil
	n.name = ""
}

// reserved strings that would collide with path hops.
const (
	hopParent = "parent"
	hopRoot   = "root"
)

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if name == hopParent || name == hopRoot {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidName, name)
	}
	for i, r := range name {
		switch {
		case r == '_',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return fmt.Errorf("%w: %q must not start with a digit", ErrInvalidName, name)
			}
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, r)
		}
	}
	return nil
}
