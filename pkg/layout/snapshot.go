package layout

import (
	"fmt"
	"maps"
	"slices"

	perrors "github.com/matzehuels/panelayout/pkg/errors"
)

// FatherIndex maps every non-root key of one snapshot to the container that
// directly owns it. It is derived, read-only and tied to the tree it was
// built from; build a new one for every snapshot.
type FatherIndex map[string]*Container

// BuildFatherIndex walks root once and records the parent of every node.
func BuildFatherIndex(root *Container) FatherIndex {
	idx := make(FatherIndex)
	var walk func(c *Container)
	walk = func(c *Container) {
		for _, ch := range c.Children {
			idx[ch.NodeKey()] = c
			if sub, ok := ch.(*Container); ok {
				walk(sub)
			}
		}
	}
	if root != nil {
		walk(root)
	}
	return idx
}

// Layout is an immutable, concrete layout snapshot: a root container plus
// the father index and key lookup derived from it.
type Layout struct {
	root    *Container
	fathers FatherIndex
	nodes   map[string]Node
	order   []string
}

// NewLayout wraps root in a snapshot after checking that every key is
// non-empty and unique. The tree must not be modified afterwards.
func NewLayout(root *Container) (*Layout, error) {
	if root == nil {
		return nil, perrors.New(perrors.ErrCodeInvalidTree, "nil root container")
	}
	l := &Layout{
		root:    root,
		fathers: BuildFatherIndex(root),
		nodes:   make(map[string]Node),
	}
	var walk func(n Node) error
	walk = func(n Node) error {
		key := n.NodeKey()
		if key == "" {
			return perrors.New(perrors.ErrCodeInvalidTree, "node without key")
		}
		if _, dup := l.nodes[key]; dup {
			return perrors.New(perrors.ErrCodeDuplicateKey, "key %q appears more than once", key)
		}
		l.nodes[key] = n
		l.order = append(l.order, key)
		if c, ok := n.(*Container); ok {
			for _, ch := range c.Children {
				if ch == nil {
					return perrors.New(perrors.ErrCodeInvalidTree, "container %q has a nil child", key)
				}
				if err := walk(ch); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return l, nil
}

// FromDraft rebuilds a snapshot from a fully specified draft, such as one
// produced by [DraftOf], taking every size verbatim. Unlike [Engine.Format]
// nothing is distributed or inherited; run [Check] on the result when the
// draft comes from an untrusted source.
func FromDraft(d Draft) (*Layout, error) {
	if d.Kind == KindLeaf {
		return nil, perrors.New(perrors.ErrCodeInvalidTree, "root must be a container, got leaf %q", d.Key)
	}
	root, err := concrete(d, true)
	if err != nil {
		return nil, err
	}
	return NewLayout(root.(*Container))
}

func concrete(d Draft, isRoot bool) (Node, error) {
	size := Size{Width: d.Width, Height: d.Height}
	if !isRoot && !d.IsContainer() {
		if len(d.Children) > 0 {
			return nil, perrors.New(perrors.ErrCodeInvalidTree, "leaf %q has children", d.Key)
		}
		return &Leaf{Key: d.Key, Size: size}, nil
	}
	if !d.Axis.Valid() {
		return nil, perrors.New(perrors.ErrCodeInvalidTree, "container %q has unknown axis %q", d.Key, d.Axis)
	}
	c := &Container{Key: d.Key, Axis: d.Axis.Normalize(), Size: size, Children: make([]Node, len(d.Children))}
	for i, ch := range d.Children {
		n, err := concrete(ch, false)
		if err != nil {
			return nil, err
		}
		c.Children[i] = n
	}
	return c, nil
}

// Root returns the root container.
func (l *Layout) Root() *Container { return l.root }

// Size returns the root container's size.
func (l *Layout) Size() Size { return l.root.Size }

// Len returns the number of nodes, containers included.
func (l *Layout) Len() int { return len(l.order) }

// Has reports whether key names a node in this snapshot.
func (l *Layout) Has(key string) bool {
	_, ok := l.nodes[key]
	return ok
}

// Node returns the node with the given key.
func (l *Layout) Node(key string) (Node, bool) {
	n, ok := l.nodes[key]
	return n, ok
}

// Father returns the container owning key and key's index in it.
// It reports false for the root and for unknown keys.
func (l *Layout) Father(key string) (*Container, int, bool) {
	f, ok := l.fathers[key]
	if !ok {
		return nil, -1, false
	}
	return f, f.IndexOf(key), true
}

// Fathers returns a copy of the snapshot's father index.
func (l *Layout) Fathers() FatherIndex {
	return maps.Clone(l.fathers)
}

// Keys returns every key in depth-first pre-order, the root first.
func (l *Layout) Keys() []string {
	return slices.Clone(l.order)
}

// Leaves returns the leaves in visual order.
func (l *Layout) Leaves() []*Leaf {
	var out []*Leaf
	for _, k := range l.order {
		if leaf, ok := l.nodes[k].(*Leaf); ok {
			out = append(out, leaf)
		}
	}
	return out
}

// Positions maps the snapshot from the origin.
func (l *Layout) Positions() PositionMap {
	return ToPositionMap(l.root, Point{})
}

// locate returns the father and index of key, with structural errors for
// unknown keys and for the root.
func (l *Layout) locate(key string) (*Container, int, error) {
	if key == l.root.Key {
		return nil, -1, perrors.New(perrors.ErrCodeRootOperation, "%q is the root container", key)
	}
	f, i, ok := l.Father(key)
	if !ok {
		return nil, -1, perrors.New(perrors.ErrCodeKeyNotFound, "key %q not in layout", key)
	}
	return f, i, nil
}

// replace returns a new root in which the node named key is swapped for
// repl. Only the path from the root to key is copied; every other subtree is
// shared with l.
func (l *Layout) replace(key string, repl Node) (*Container, error) {
	cur, curKey := repl, key
	for {
		f, ok := l.fathers[curKey]
		if !ok {
			break
		}
		i := f.IndexOf(curKey)
		children := slices.Clone(f.Children)
		children[i] = cur
		cur, curKey = f.with(f.Size, children), f.Key
	}
	if curKey != l.root.Key {
		return nil, perrors.New(perrors.ErrCodeKeyNotFound, "key %q not in layout", key)
	}
	root, ok := cur.(*Container)
	if !ok {
		return nil, perrors.New(perrors.ErrCodeInternal, "root replaced by %T", cur)
	}
	return root, nil
}

// derive builds the snapshot that follows l after key is replaced by repl.
func (l *Layout) derive(key string, repl Node) (*Layout, error) {
	root, err := l.replace(key, repl)
	if err != nil {
		return nil, err
	}
	return NewLayout(root)
}

// uniqueKey returns base if it is unused, otherwise base#2, base#3, ...
func (l *Layout) uniqueKey(base string) string {
	if !l.Has(base) {
		return base
	}
	for n := 2; ; n++ {
		k := fmt.Sprintf("%s#%d", base, n)
		if !l.Has(k) {
			return k
		}
	}
}
