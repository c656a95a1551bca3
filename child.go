package respread

import (
	"strings"
	"time"
)

// Func is the body of a leaf: a function of the shared call key. The
// CallCtx carries the leaf's owning node and registered name so the body
// can reach siblings and ancestors, taking the place of bound-method
// receivers in attribute-based tree designs.
type Func[K comparable, V any] func(c *CallCtx[K, V], key K) (V, error)

// Child is a registered member of a Node: either a *Leaf or a nested
// *Node. Children are created unattached and bound when registered.
type Child[K comparable, V any] interface {
	// bind attaches the child to its owning node under the given name.
	bind(owner *Node[K, V], name string)
	// unbind detaches the child from its owner.
	unbind()
	// cacheClear empties every memo store at or below the child.
	cacheClear()
	// walk visits leaves depth-first in children order. It reports
	// whether traversal should continue.
	walk(path []string, fn func(path []string, leaf *Leaf[K, V]) bool) (bool, error)
}

// CallCtx is passed to every leaf body.
type CallCtx[K comparable, V any] struct {
	node *Node[K, V]
	name string
}

// Node returns the node owning the executing leaf, or nil for an
// unregistered leaf.
func (c *CallCtx[K, V]) Node() *Node[K, V] {
	return c.node
}

// Name returns the name the executing leaf is registered under.
func (c *CallCtx[K, V]) Name() string {
	return c.name
}

// Call invokes a sibling leaf on the owning node.
func (c *CallCtx[K, V]) Call(name string, key K) (V, error) {
	if c.node == nil {
		var zero V
		return zero, ErrChildNotFound
	}
	return c.node.Call(name, key)
}

// Root returns the ultimate ancestor of the owning node.
func (c *CallCtx[K, V]) Root() *Node[K, V] {
	if c.node == nil {
		return nil
	}
	return c.node.Root()
}

// Leaf is a registered callable. A cached leaf memoizes successful
// results per call key; the memo store belongs to this leaf value alone,
// so two trees built by the same constructor never share cached results.
type Leaf[K comparable, V any] struct {
	fn     Func[K, V]
	owner  *Node[K, V]
	name   string
	cached bool
	memo   map[K]V
}

// NewLeaf wraps fn as an uncached leaf.
func NewLeaf[K comparable, V any](fn Func[K, V]) *Leaf[K, V] {
	return &Leaf[K, V]{fn: fn}
}

// NewCached wraps fn as a leaf with a per-instance memo store. Caching
// is what keeps mutually recursive definitions from growing the call
// stack without bound: once a key is memoized, the recursion
// short-circuits on the first cached hit.
func NewCached[K comparable, V any](fn Func[K, V]) *Leaf[K, V] {
	return &Leaf[K, V]{fn: fn, cached: true, memo: make(map[K]V)}
}

// Call invokes the leaf. Cached leaves serve repeated keys from the
// memo store; errors are never memoized.
func (l *Leaf[K, V]) Call(key K) (V, error) {
	if l.cached {
		if v, ok := l.memo[key]; ok {
			return v, nil
		}
	}

	ctx := &CallCtx[K, V]{node: l.owner, name: l.name}

	hooks := l.hooks()
	if len(hooks) == 0 {
		return l.invoke(ctx, key)
	}

	path := strings.Join(append(l.ownerPath(), l.name), ".")
	for _, h := range hooks {
		h.BeforeCall(path, key)
	}
	start := time.Now()
	v, err := l.invoke(ctx, key)
	elapsed := time.Since(start)
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i].AfterCall(path, key, v, err, elapsed)
	}
	return v, err
}

func (l *Leaf[K, V]) invoke(ctx *CallCtx[K, V], key K) (V, error) {
	v, err := l.fn(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}
	if l.cached {
		l.memo[key] = v
	}
	return v, nil
}

// Peek returns the memoized value for key without computing.
func (l *Leaf[K, V]) Peek(key K) (V, bool) {
	v, ok := l.memo[key]
	return v, ok
}

// IsCached reports whether a value for key is currently memoized.
func (l *Leaf[K, V]) IsCached(key K) bool {
	_, ok := l.memo[key]
	return ok
}

// Release drops the memoized value for a single key.
func (l *Leaf[K, V]) Release(key K) {
	delete(l.memo, key)
}

// CacheClear empties the leaf's memo store.
func (l *Leaf[K, V]) CacheClear() {
	clear(l.memo)
}

// Name returns the name the leaf is registered under, or "" when
// unregistered.
func (l *Leaf[K, V]) Name() string {
	return l.name
}

// Owner returns the node the leaf is registered on, or nil.
func (l *Leaf[K, V]) Owner() *Node[K, V] {
	return l.owner
}

func (l *Leaf[K, V]) hooks() []Hook {
	if l.owner == nil {
		return nil
	}
	return l.owner.allHooks()
}

func (l *Leaf[K, V]) ownerPath() []string {
	if l.owner == nil {
		return nil
	}
	return l.owner.Path()
}

func (l *Leaf[K, V]) bind(owner *Node[K, V], name string) {
	l.owner = owner
	l.name = name
}

func (l *Leaf[K, V]) unbind() {
	l.owner = nil
	l.name = ""
}

func (l *Leaf[K, V]) cacheClear() {
	clear(l.memo)
}

func (l *Leaf[K, V]) walk(path []string, fn func(path []string, leaf *Leaf[K, V]) bool) (bool, error) {
	return fn(path, l), nil
}
