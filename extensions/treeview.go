package extensions

import (
	"fmt"

	"github.com/m1gwings/treedrawer/tree"

	"github.com/jrdnh/respread"
)

// Draw renders the structure of a node as text art, one tree node per
// registered name in children order. Dynamic children appear under
// their derived names; leaves that cannot be synthesized are skipped.
func Draw[K comparable, V any](n *respread.Node[K, V]) string {
	label := n.Name()
	if label == "" {
		label = "root"
	}
	t := tree.NewTree(tree.NodeString(label))
	drawInto(t, n)
	return fmt.Sprint(t)
}

func drawInto[K comparable, V any](t *tree.Tree, n *respread.Node[K, V]) {
	drawn := 0
	for _, name := range n.ChildNames() {
		child, err := n.Child(name)
		if err != nil {
			continue
		}
		t.AddChild(tree.NodeString(name))
		if sub, ok := child.(*respread.Node[K, V]); ok {
			ct, err := t.Child(drawn)
			if err == nil {
				drawInto(ct, sub)
			}
		}
		drawn++
	}
}
