package respread

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveHops(t *testing.T) {
	inner := NewNode(WithLeaf("x", constLeaf(1)))
	mid := NewNode(WithNode("inner", inner))
	top := NewNode(
		WithLeaf("rate", constLeaf(0.05)),
		WithNode("mid", mid),
	)

	c, err := inner.Resolve(HopParent)
	require.NoError(t, err)
	require.Same(t, mid, c)

	c, err = inner.Resolve(HopRoot)
	require.NoError(t, err)
	require.Same(t, top, c)

	c, err = inner.Resolve(HopRoot, "mid", "inner", "x")
	require.NoError(t, err)
	leaf, ok := c.(*Leaf[int, float64])
	require.True(t, ok)
	require.Equal(t, "x", leaf.Name())

	c, err = inner.Resolve(HopParent, HopParent, "rate")
	require.NoError(t, err)
	require.IsType(t, &Leaf[int, float64]{}, c)

	// empty path resolves to the starting node
	c, err = inner.Resolve()
	require.NoError(t, err)
	require.Same(t, inner, c)
}

func TestResolveFailures(t *testing.T) {
	inner := NewNode(WithLeaf("x", constLeaf(1)))
	top := NewNode(WithNode("inner", inner))

	// no parent above the root
	_, err := top.Resolve(HopParent)
	require.ErrorIs(t, err, ErrPathResolution)
	var pe *PathError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, HopParent, pe.Hop)

	// missing named hop
	_, err = top.Resolve("missing")
	require.ErrorIs(t, err, ErrPathResolution)
	require.ErrorIs(t, err, ErrChildNotFound)

	// descending through a leaf
	_, err = top.Resolve("inner", "x", "deeper")
	require.ErrorIs(t, err, ErrPathResolution)
	require.ErrorIs(t, err, ErrNotNode)

	// path ends on a node where a leaf is required
	_, err = top.ResolveLeaf("inner")
	require.ErrorIs(t, err, ErrPathResolution)
	require.ErrorIs(t, err, ErrNotLeaf)
}

func TestRedirectPrefersTarget(t *testing.T) {
	historical := NewDynamicNode[int, float64](historicalTable())

	fallbackRan := false
	projected := NewNode(
		WithCached("revenue", Redirect(
			Path{HopRoot, "historical"},
			[]error{ErrNoData},
			func(c *CallCtx[int, float64], year int) (float64, error) {
				fallbackRan = true
				prior, err := c.Call("revenue", year-1)
				if err != nil {
					return 0, err
				}
				return prior * 1.10, nil
			},
			AppendName(),
		)),
	)
	_ = NewNode(
		WithNode("historical", historical),
		WithNode("projected", projected),
	)

	// a year with data comes straight from the table
	v, err := projected.Call("revenue", 2021)
	require.NoError(t, err)
	require.Equal(t, 1150.0, v)
	require.False(t, fallbackRan)

	// a year past the data falls back to the computed projection
	v, err = projected.Call("revenue", 2022)
	require.NoError(t, err)
	require.InDelta(t, 1150.0*1.10, v, 1e-9)
	require.True(t, fallbackRan)

	// recursion through the fallback chains onto historical data
	v, err = projected.Call("revenue", 2024)
	require.NoError(t, err)
	require.InDelta(t, 1150.0*1.10*1.10*1.10, v, 1e-9)
}

func TestRedirectExactKindMatching(t *testing.T) {
	boom := errors.New("boom")
	target := NewNode(WithLeaf("f", errLeaf(boom)))

	fallbackRan := false
	wrapped := NewNode(
		WithLeaf("f", Redirect(
			Path{HopRoot, "target"},
			[]error{ErrNoData},
			func(_ *CallCtx[int, float64], _ int) (float64, error) {
				fallbackRan = true
				return 1, nil
			},
			AppendName(),
		)),
	)
	_ = NewNode(
		WithNode("target", target),
		WithNode("wrapped", wrapped),
	)

	// an undesignated kind propagates unchanged, fallback never runs
	_, err := wrapped.Call("f", 0)
	require.ErrorIs(t, err, boom)
	require.False(t, fallbackRan)

	// the designated kind triggers the fallback
	require.NoError(t, target.ReplaceChild("f", NewLeaf(errLeaf(ErrNoData))))
	v, err := wrapped.Call("f", 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
	require.True(t, fallbackRan)
}

func TestRedirectWrappedCausesMatch(t *testing.T) {
	// the designated set matches wrapped causes, not just identical values
	target := NewNode(WithLeaf("f", func(_ *CallCtx[int, float64], _ int) (float64, error) {
		return 0, errors.Join(errors.New("context"), ErrNoData)
	}))
	wrapped := NewNode(
		WithLeaf("f", Redirect(
			Path{HopRoot, "target", "f"},
			[]error{ErrNoData},
			constLeaf(7),
		)),
	)
	_ = NewNode(
		WithNode("target", target),
		WithNode("wrapped", wrapped),
	)

	v, err := wrapped.Call("f", 0)
	require.NoError(t, err)
	require.Equal(t, 7.0, v)
}

func TestRedirectUnresolvablePath(t *testing.T) {
	n := NewNode(
		WithLeaf("f", Redirect(
			Path{HopRoot, "nowhere", "f"},
			[]error{ErrNoData},
			constLeaf(1),
		)),
	)

	_, err := n.Call("f", 0)
	require.ErrorIs(t, err, ErrPathResolution)
}

func TestRedirectOnUnregisteredLeaf(t *testing.T) {
	leaf := NewLeaf(Redirect(
		Path{HopRoot, "f"},
		[]error{ErrNoData},
		constLeaf(1),
	))

	_, err := leaf.Call(0)
	require.ErrorIs(t, err, ErrPathResolution)
}
