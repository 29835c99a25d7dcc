package layout

import (
	"slices"
	"strconv"

	perrors "github.com/matzehuels/panelayout/pkg/errors"
)

// Remove deletes key from the snapshot and gives its space back.
//
// When the parent keeps two or more children, the freed space along the
// parent's axis is spread over the remaining siblings. When only one
// sibling remains the parent is collapsed: the sibling absorbs the freed
// space and takes the parent's place in the grandparent. The root is never
// collapsed; it keeps its key and is left with the single sibling as its
// only child.
func (e *Engine) Remove(l *Layout, key string) (*Layout, error) {
	father, i, err := l.locate(key)
	if err != nil {
		return l, err
	}
	axis := father.Axis.Normalize()
	freed := father.Children[i].NodeSize().Along(axis)
	rest := slices.Delete(slices.Clone(father.Children), i, i+1)
	isRoot := father == l.root

	var repl Node
	switch {
	case len(rest) == 0:
		repl = father.with(father.Size, nil)
	case len(rest) == 1:
		sibling, _ := e.ScaleNode(rest[0], AxisSize(axis, freed))
		if isRoot {
			repl = father.with(father.Size, []Node{sibling})
		} else {
			repl = sibling
		}
	default:
		shrunk := father.with(father.Size.WithAlong(axis, father.Size.Along(axis)-freed), rest)
		repl, _ = e.scaleContainer(shrunk, AxisSize(axis, freed))
	}

	next, err := l.derive(father.Key, repl)
	if err != nil {
		return l, err
	}
	return next, nil
}

// Insert adds a new leaf named key next to target.
//
// For center the leaf replaces target outright, taking its slot and size.
// For an edge direction target is halved along the direction's axis and the
// leaf takes the freed half, before target for top and left and after it for
// bottom and right. If the direction runs along the axis of target's parent
// the leaf simply joins that parent. Otherwise target's slot becomes a new
// container with the flipped axis holding the halved target and the leaf.
//
// Leaf targets are halved exactly. Container targets shrink through
// [Engine.ScaleNode], so their descendants keep their minimum sizes and the
// leaf receives whatever space that frees.
func (e *Engine) Insert(l *Layout, key, target string, dir Direction) (*Layout, error) {
	if !dir.Valid() {
		return l, perrors.New(perrors.ErrCodeInvalidDirection, "unknown direction %q", dir)
	}
	if err := perrors.ValidateKey(key); err != nil {
		return l, err
	}
	if l.Has(key) {
		return l, perrors.New(perrors.ErrCodeDuplicateKey, "key %q already in layout", key)
	}
	father, i, err := l.locate(target)
	if err != nil {
		return l, err
	}
	tnode := father.Children[i]

	if dir == Center {
		return l.derive(target, &Leaf{Key: key, Size: tnode.NodeSize()})
	}

	split := dir.Axis()
	kept := e.halve(tnode, split)
	leaf := &Leaf{
		Key:  key,
		Size: tnode.NodeSize().WithAlong(split, tnode.NodeSize().Along(split)-kept.NodeSize().Along(split)),
	}
	pair := []Node{kept, leaf}
	if dir.Leading() {
		pair = []Node{leaf, kept}
	}

	if split == father.Axis.Normalize() {
		children := slices.Clone(father.Children)
		children = slices.Replace(children, i, i+1, pair...)
		return l.derive(father.Key, father.with(father.Size, children))
	}

	sub := &Container{
		Key:      l.uniqueKey(father.Key + "/" + strconv.Itoa(i)),
		Axis:     split,
		Size:     tnode.NodeSize(),
		Children: pair,
	}
	return l.derive(target, sub)
}

// halve shrinks n to half its extent along axis.
func (e *Engine) halve(n Node, axis Axis) Node {
	half := n.NodeSize().Along(axis) / 2
	if leaf, ok := n.(*Leaf); ok {
		return &Leaf{Key: leaf.Key, Size: leaf.Size.WithAlong(axis, half)}
	}
	kept, _ := e.ScaleNode(n, AxisSize(axis, -half))
	return kept
}

// Drag relocates dragged onto target in direction dir: dragged is removed
// from its current parent (see [Engine.Remove]) and then inserted at target
// (see [Engine.Insert]). A dragged key that is not yet in the layout is a
// new leaf and is only inserted. Dropping a node onto itself returns l
// unchanged.
func (e *Engine) Drag(l *Layout, dragged, target string, dir Direction) (*Layout, error) {
	if dragged == target {
		return l, nil
	}
	if !dir.Valid() {
		return l, perrors.New(perrors.ErrCodeInvalidDirection, "unknown direction %q", dir)
	}
	if _, _, err := l.locate(target); err != nil {
		return l, err
	}
	if dragged == l.root.Key {
		return l, perrors.New(perrors.ErrCodeRootOperation, "%q is the root container", dragged)
	}

	work := l
	if n, ok := l.Node(dragged); ok {
		if _, isContainer := n.(*Container); isContainer {
			return l, perrors.New(perrors.ErrCodeInvalidInput, "%q is a container; only leaves can be dragged", dragged)
		}
		father, i, _ := l.Father(dragged)
		// Removing dragged collapses a two-child parent into the sibling,
		// which then stands in for the parent as drop target.
		if father.Key == target && len(father.Children) == 2 && father != l.root {
			target = father.Children[1-i].NodeKey()
		}
		var err error
		if work, err = e.Remove(l, dragged); err != nil {
			return l, err
		}
	}

	next, err := e.Insert(work, dragged, target, dir)
	if err != nil {
		return l, err
	}
	return next, nil
}

// Swap exchanges the slots of two leaves. Sizes stay with the slots.
func (e *Engine) Swap(l *Layout, a, b string) (*Layout, error) {
	if a == b {
		return l, nil
	}
	for _, k := range []string{a, b} {
		n, ok := l.Node(k)
		if !ok {
			return l, perrors.New(perrors.ErrCodeKeyNotFound, "key %q not in layout", k)
		}
		if _, isLeaf := n.(*Leaf); !isLeaf {
			return l, perrors.New(perrors.ErrCodeInvalidInput, "%q is not a leaf", k)
		}
	}
	root := relabel(l.root, map[string]string{a: b, b: a}).(*Container)
	return NewLayout(root)
}

// relabel rewrites leaf keys according to m, sharing every subtree that
// contains none of them.
func relabel(n Node, m map[string]string) Node {
	switch n := n.(type) {
	case *Leaf:
		if k, ok := m[n.Key]; ok {
			return &Leaf{Key: k, Size: n.Size}
		}
		return n
	case *Container:
		var children []Node
		for i, ch := range n.Children {
			r := relabel(ch, m)
			if r != ch && children == nil {
				children = slices.Clone(n.Children)
			}
			if children != nil {
				children[i] = r
			}
		}
		if children == nil {
			return n
		}
		return n.with(n.Size, children)
	}
	return n
}
