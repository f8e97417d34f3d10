package power

import (
	"calcvoices/engine/library"
)

// Node is one account in a delegation tree dump.
type Node struct {
	ID                   library.Account
	OwnTokenAmount       int64
	DelegatedTokenAmount int64
	DelegatedVoices      int64
	Delegated            []*Node
}

// TokenPower is the node's own plus delegated token amount.
func (n *Node) TokenPower() int64 {
	return n.OwnTokenAmount + n.DelegatedTokenAmount
}

// CouncilTree dumps the council delegation tree below id, broken delegators excluded.
func (ag *Aggregator) CouncilTree(id library.Account) *Node {
	return ag.tree(library.Council, id)
}

// AssemblyTree dumps the assembly delegation tree below id, broken delegators excluded.
func (ag *Aggregator) AssemblyTree(id library.Account) *Node {
	return ag.tree(library.Assembly, id)
}

func (ag *Aggregator) node(g library.Graph, id library.Account) *Node {
	n := &Node{ID: id}
	if g == library.Council {
		t := ag.Council(id)
		n.OwnTokenAmount, n.DelegatedTokenAmount = t.Own, t.Delegated
	} else {
		t := ag.Assembly(id)
		n.OwnTokenAmount, n.DelegatedVoices = t.Own, t.Delegated
	}
	return n
}

func (ag *Aggregator) tree(g library.Graph, id library.Account) *Node {
	root, ok := ag.registry.Get(id)
	if !ok {
		return nil
	}
	top := ag.node(g, root.ID)
	seen := map[library.Account]struct{}{root.ID: {}}
	pending := []*Node{top}
	for len(pending) > 0 {
		n := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		a, _ := ag.registry.Get(n.ID)
		for _, child := range ag.children(g, a) {
			if _, dup := seen[child.ID]; dup {
				continue
			}
			seen[child.ID] = struct{}{}
			c := ag.node(g, child.ID)
			n.Delegated = append(n.Delegated, c)
			pending = append(pending, c)
		}
	}
	return top
}

// Walk visits n's descendants depth first in order, reporting each with its depth below n
// (direct delegators are at depth 1).
func (n *Node) Walk(visit func(depth int, n *Node)) {
	if n == nil {
		return
	}
	type item struct {
		depth int
		node  *Node
	}
	var stack []item
	for i := len(n.Delegated) - 1; i >= 0; i-- {
		stack = append(stack, item{1, n.Delegated[i]})
	}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(it.depth, it.node)
		for i := len(it.node.Delegated) - 1; i >= 0; i-- {
			stack = append(stack, item{it.depth + 1, it.node.Delegated[i]})
		}
	}
}
