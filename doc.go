// Package respread builds hierarchical, callable computation trees for
// numeric modeling: leaves are functions of a shared call key (a period
// or scenario), interior nodes propagate calls to their children in
// declaration order, and the flat sequence of leaf results crosses the
// function axis with the argument axis.
//
// # Overview
//
// The library is organized around four concepts:
//
//  1. Nodes: ordered, named registries of children that propagate calls
//  2. Leaves: registered callables, optionally memoized per instance
//  3. Scopes: bounded evaluation passes with guaranteed cache clearing
//  4. Paths: navigation between functions anywhere in the tree
//
// # Basic usage
//
// Declare a tree and call it:
//
//	balance := respread.NewNode(
//	    respread.WithCached("starting", starting),
//	    respread.WithCached("ending", ending),
//	)
//
//	vals, err := balance.Values(12)       // flat, in declaration order
//	items, err := balance.Items(12)       // (path, value) pairs
//	rows, err := balance.Display(12)      // dotted names, failures omitted
//
// Leaf bodies receive a CallCtx to reach siblings, so mutually
// recursive definitions read naturally:
//
//	func ending(c *respread.CallCtx[int, float64], p int) (float64, error) {
//	    prior, err := c.Call("starting", p)
//	    if err != nil {
//	        return 0, err
//	    }
//	    return prior * 1.01, nil
//	}
//
// Wrapping with WithCached makes such definitions safe over long key
// ranges: each (leaf, key) pair is computed once per tree instance.
//
// # Scoped evaluation
//
// A scope clears every memo beneath a node on entry and again on exit,
// exit-side clearing being guaranteed even when the body fails:
//
//	err := respread.Scoped(balance, func(n *Node[int, float64]) error {
//	    _, err := n.Values(120)
//	    return err
//	})
//
// # Dynamic children
//
// A node backed by a ChildProvider derives its child set from an
// external source on every access:
//
//	hist := respread.NewTable[int, float64]().
//	    AddRow("revenue", map[int]float64{2020: 1000, 2021: 1150}).
//	    AddRow("expenses", map[int]float64{2020: 750, 2021: 850})
//	node := respread.NewDynamicNode[int, float64](hist)
//
// # Redirects
//
// Redirect builds two-tier definitions that prefer an authoritative
// source and compute a value only when that source reports a
// designated error kind:
//
//	projected := respread.Redirect(
//	    respread.Path{respread.HopRoot, "historical"},
//	    []error{respread.ErrNoData},
//	    computeRevenue,
//	    respread.AppendName(),
//	)
//
// The tree is single-threaded by contract: no operation synchronizes,
// and concurrent use of one tree must be serialized by the caller.
package respread
