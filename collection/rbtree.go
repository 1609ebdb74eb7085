package collection

// rbtree is the primary index: a red-black tree over entries in ascending
// key order. Insert and delete run top-down in a single pass.
type rbtree struct {
	cmp   Compare
	root  *rbnode
	count int
}

type rbnode struct {
	entry *Entry
	left  *rbnode
	right *rbnode
	red   bool
}

func newRBTree(cmp Compare) *rbtree {
	return &rbtree{cmp: cmp}
}

func (t *rbtree) size() int {
	return t.count
}

func (n *rbnode) child(right bool) *rbnode {
	if right {
		return n.right
	}
	return n.left
}

func (n *rbnode) setChild(right bool, node *rbnode) {
	if right {
		n.right = node
	} else {
		n.left = node
	}
}

func isRed(node *rbnode) bool {
	return node != nil && node.red
}

func singleRotate(oldroot *rbnode, dir bool) *rbnode {
	newroot := oldroot.child(!dir)

	oldroot.setChild(!dir, newroot.child(dir))
	newroot.setChild(dir, oldroot)

	oldroot.red = true
	newroot.red = false

	return newroot
}

func doubleRotate(root *rbnode, dir bool) *rbnode {
	root.setChild(!dir, singleRotate(root.child(!dir), !dir))
	return singleRotate(root, dir)
}

// insert adds an entry under its key. Returns false if the key already has a
// node; the existing node is left untouched (the caller overwrites the entry
// value in place, never the key).
func (t *rbtree) insert(e *Entry) (inserted bool) {
	if t.root == nil {
		t.root = &rbnode{entry: e}
		inserted = true
	} else {
		var head = &rbnode{}

		var dir = true
		var last = true

		var parent *rbnode  // parent
		var gparent *rbnode // grandparent
		var ggparent = head // great grandparent
		var node = t.root

		ggparent.right = t.root

		for {
			if node == nil {
				// insert new node at bottom
				node = &rbnode{entry: e, red: true}
				parent.setChild(dir, node)
				inserted = true
			} else if isRed(node.left) && isRed(node.right) {
				// flip colors
				node.red = true
				node.left.red, node.right.red = false, false
			}
			// fix red violation
			if isRed(node) && isRed(parent) {
				dir2 := ggparent.right == gparent

				if node == parent.child(last) {
					ggparent.setChild(dir2, singleRotate(gparent, !last))
				} else {
					ggparent.setChild(dir2, doubleRotate(gparent, !last))
				}
			}

			cmp := t.cmp(node.entry.Key, e.Key)

			// stop if found
			if cmp == 0 {
				break
			}

			last = dir
			dir = cmp < 0

			// update helpers
			if gparent != nil {
				ggparent = gparent
			}
			gparent = parent
			parent = node

			node = node.child(dir)
		}

		t.root = head.right
	}

	// make root black
	t.root.red = false

	if inserted {
		t.count++
	}

	return inserted
}

// delete removes the node holding key, pushing a red node down the search
// path so the removal never needs to rebalance bottom-up.
func (t *rbtree) delete(key interface{}) bool {
	if t.root == nil {
		return false
	}

	var head = &rbnode{red: true} // fake red node to push down
	var node = head
	var parent *rbnode  // parent
	var gparent *rbnode // grandparent
	var found *rbnode

	var dir = true

	node.right = t.root

	for node.child(dir) != nil {
		last := dir

		// update helpers
		gparent = parent
		parent = node
		node = node.child(dir)

		cmp := t.cmp(node.entry.Key, key)

		dir = cmp < 0

		// save node if found
		if cmp == 0 {
			found = node
		}

		// pretend to push red node down
		if !isRed(node) && !isRed(node.child(dir)) {
			if isRed(node.child(!dir)) {
				sr := singleRotate(node, dir)
				parent.setChild(last, sr)
				parent = sr
			} else {
				sibling := parent.child(!last)
				if sibling != nil {
					if !isRed(sibling.child(!last)) && !isRed(sibling.child(last)) {
						// flip colors
						parent.red = false
						sibling.red, node.red = true, true
					} else {
						dir2 := gparent.right == parent

						if isRed(sibling.child(last)) {
							gparent.setChild(dir2, doubleRotate(parent, last))
						} else if isRed(sibling.child(!last)) {
							gparent.setChild(dir2, singleRotate(parent, last))
						}

						gpc := gparent.child(dir2)
						gpc.red = true
						node.red = true
						gpc.left.red, gpc.right.red = false, false
					}
				}
			}
		}
	}

	// get rid of node if we've found one
	if found != nil {
		found.entry = node.entry
		parent.setChild(parent.right == node, node.child(node.left == nil))
		t.count--
	}

	t.root = head.right
	if t.root != nil {
		t.root.red = false
	}

	return found != nil
}

func (t *rbtree) search(key interface{}) (*Entry, bool) {
	n := t.root
	for n != nil {
		cmp := t.cmp(key, n.entry.Key)
		switch {
		case cmp == 0:
			return n.entry, true
		case cmp < 0:
			n = n.left
		default:
			n = n.right
		}
	}
	return nil, false
}

func (t *rbtree) min() *Entry {
	n := t.root
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n.entry
}

func (t *rbtree) max() *Entry {
	n := t.root
	if n == nil {
		return nil
	}
	for n.right != nil {
		n = n.right
	}
	return n.entry
}

// floor returns the entry with the largest key <= key, nil if none.
func (t *rbtree) floor(key interface{}) *Entry {
	var best *Entry
	n := t.root
	for n != nil {
		if t.cmp(n.entry.Key, key) <= 0 {
			best = n.entry
			n = n.right
		} else {
			n = n.left
		}
	}
	return best
}

// ceiling returns the entry with the smallest key >= key, nil if none.
func (t *rbtree) ceiling(key interface{}) *Entry {
	var best *Entry
	n := t.root
	for n != nil {
		if t.cmp(n.entry.Key, key) >= 0 {
			best = n.entry
			n = n.left
		} else {
			n = n.right
		}
	}
	return best
}

// ascend visits entries in ascending key order starting at the smallest key
// >= from; nil means start at the minimum. The visitor returns false to stop.
func (t *rbtree) ascend(from interface{}, visit func(e *Entry) bool) {
	t.ascendNode(t.root, from, visit)
}

func (t *rbtree) ascendNode(node *rbnode, from interface{}, visit func(e *Entry) bool) bool {
	if node == nil {
		return true
	}
	// skip the left branch when all its keys are below the bound
	if from == nil || t.cmp(node.entry.Key, from) >= 0 {
		if !t.ascendNode(node.left, from, visit) {
			return false
		}
		if !visit(node.entry) {
			return false
		}
	}
	return t.ascendNode(node.right, from, visit)
}

// descend visits entries in descending key order starting at the largest key
// <= to; nil means start at the maximum.
func (t *rbtree) descend(to interface{}, visit func(e *Entry) bool) {
	t.descendNode(t.root, to, visit)
}

func (t *rbtree) descendNode(node *rbnode, to interface{}, visit func(e *Entry) bool) bool {
	if node == nil {
		return true
	}
	if to == nil || t.cmp(node.entry.Key, to) <= 0 {
		if !t.descendNode(node.right, to, visit) {
			return false
		}
		if !visit(node.entry) {
			return false
		}
	}
	return t.descendNode(node.left, to, visit)
}
