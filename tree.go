// Copyright 2014-2022 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package playlist implements an ordered container of songs on top of an
// in-memory, unbalanced binary search tree.
//
// The tree is a plain BST: every node holds one item and at most two
// children, items in the left subtree order before the node and items in the
// right subtree after it.  Nothing rebalances the tree, so inserting items in
// sorted order produces a tree whose height equals its size.  That is an
// accepted limitation; callers that need guaranteed logarithmic height should
// use a balanced structure instead.
//
// There are two layers.  TreeG is the generic tree, usable for any type, and
// requires a passed-in "less" function to define its ordering.  Playlist is a
// specific instantiation for SongEntry values, ordered by the concatenation of
// title and artist, with the validation rules of a song list.
package playlist

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

const (
	DefaultFreeListSize = 32
)

// FreeListG represents a free list of tree nodes. By default each
// TreeG has its own FreeList, but multiple trees can share the same
// FreeList.
// Two trees using the same freelist are safe for concurrent write access.
type FreeListG[T any] struct {
	mu       sync.Mutex
	freelist []*node[T]
}

// NewFreeListG creates a new free list.
// size is the maximum size of the returned free list.
func NewFreeListG[T any](size int) *FreeListG[T] {
	return &FreeListG[T]{freelist: make([]*node[T], 0, size)}
}

func (f *FreeListG[T]) newNode() (n *node[T]) {
	f.mu.Lock()
	index := len(f.freelist) - 1
	if index < 0 {
		f.mu.Unlock()
		return new(node[T])
	}
	n = f.freelist[index]
	f.freelist[index] = nil
	f.freelist = f.freelist[:index]
	f.mu.Unlock()
	return
}

func (f *FreeListG[T]) freeNode(n *node[T]) (out bool) {
	f.mu.Lock()
	if len(f.freelist) < cap(f.freelist) {
		f.freelist = append(f.freelist, n)
		out = true
	}
	f.mu.Unlock()
	return
}

// Len returns the number of nodes currently held by the free list.
func (f *FreeListG[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.freelist)
}

// ItemIteratorG allows callers of {A/De}scend* to iterate in-order over portions of
// the tree.  When this function returns false, iteration will stop and the
// associated Ascend* function will immediately return.
type ItemIteratorG[T any] func(item T) bool

// Ordered represents the set of types for which the '<' operator work.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64 | ~string
}

// Less[T] returns a default LessFunc that uses the '<' operator for types that support it.
func Less[T Ordered]() LessFunc[T] {
	return func(a, b T) bool { return a < b }
}

// NewOrderedG creates a new tree for ordered types.
func NewOrderedG[T Ordered]() *TreeG[T] {
	return NewG[T](Less[T]())
}

// NewG creates a new, empty tree.
//
// The passed-in LessFunc determines how objects of type T are ordered.
func NewG[T any](less LessFunc[T]) *TreeG[T] {
	return NewWithFreeListG(less, NewFreeListG[T](DefaultFreeListSize))
}

// NewWithFreeListG creates a new tree that uses the given node free list.
func NewWithFreeListG[T any](less LessFunc[T], f *FreeListG[T]) *TreeG[T] {
	if less == nil {
		panic("nil less func")
	}
	return &TreeG[T]{
		freelist: f,
		less:     less,
	}
}

// node is an internal node in a tree.  It exclusively owns its children;
// there are no parent links.
type node[T any] struct {
	item        T
	left, right *node[T]
}

func (n *node[T]) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// TreeG is a generic implementation of an unbalanced binary search tree.
//
// TreeG stores items of type T in an ordered structure, allowing easy insertion,
// removal, and iteration.
//
// Write operations are not safe for concurrent mutation by multiple
// goroutines, but Read operations are.
type TreeG[T any] struct {
	length   int
	root     *node[T]
	freelist *FreeListG[T]
	less     LessFunc[T]
}

// LessFunc[T] determines how to order a type 'T'.  It should implement a strict
// ordering, and should return true if within that ordering, 'a' < 'b'.
type LessFunc[T any] func(a, b T) bool

func (t *TreeG[T]) newNode(item T) *node[T] {
	n := t.freelist.newNode()
	n.item = item
	return n
}

func (t *TreeG[T]) freeNode(n *node[T]) bool {
	// clear to allow GC
	var zero T
	n.item = zero
	n.left, n.right = nil, nil
	return t.freelist.freeNode(n)
}

// Insert adds item to the tree.  If an equal item is already present the tree
// is left untouched and Insert returns false.
func (t *TreeG[T]) Insert(item T) bool {
	slot := &t.root
	for *slot != nil {
		switch cur := *slot; {
		case t.less(item, cur.item):
			slot = &cur.left
		case t.less(cur.item, item):
			slot = &cur.right
		default:
			return false
		}
	}
	*slot = t.newNode(item)
	t.length++
	return true
}

// ReplaceOrInsert adds the given item to the tree.  If an item in the tree
// already equals the given one, it is replaced in place and returned,
// and the second return value is true.  Otherwise, (zeroValue, false)
func (t *TreeG[T]) ReplaceOrInsert(item T) (_ T, _ bool) {
	slot := &t.root
	for *slot != nil {
		switch cur := *slot; {
		case t.less(item, cur.item):
			slot = &cur.left
		case t.less(cur.item, item):
			slot = &cur.right
		default:
			out := cur.item
			cur.item = item
			return out, true
		}
	}
	*slot = t.newNode(item)
	t.length++
	return
}

// get finds the node holding key, or nil.
func (t *TreeG[T]) get(key T) *node[T] {
	n := t.root
	for n != nil {
		switch {
		case t.less(key, n.item):
			n = n.left
		case t.less(n.item, key):
			n = n.right
		default:
			return n
		}
	}
	return nil
}

// min returns the first item in the subtree.
func min[T any](n *node[T]) (_ T, found bool) {
	if n == nil {
		return
	}
	for n.left != nil {
		n = n.left
	}
	return n.item, true
}

// max returns the last item in the subtree.
func max[T any](n *node[T]) (_ T, found bool) {
	if n == nil {
		return
	}
	for n.right != nil {
		n = n.right
	}
	return n.item, true
}

// toRemove details what item to remove in a remove call.
type toRemove int

const (
	removeItem toRemove = iota // removes the given item
	removeMin                  // removes smallest item in the subtree
	removeMax                  // removes largest item in the subtree
)

// remove removes an item from the subtree rooted at n and returns the new
// root of that subtree, which the caller stores back into its child slot.
func (t *TreeG[T]) remove(n *node[T], item T, typ toRemove) (_ *node[T], _ T, _ bool) {
	if n == nil {
		return
	}
	switch typ {
	case removeMin:
		if n.left != nil {
			var out T
			var ok bool
			n.left, out, ok = t.remove(n.left, item, typ)
			return n, out, ok
		}
	case removeMax:
		if n.right != nil {
			var out T
			var ok bool
			n.right, out, ok = t.remove(n.right, item, typ)
			return n, out, ok
		}
	case removeItem:
		var out T
		var ok bool
		switch {
		case t.less(item, n.item):
			n.left, out, ok = t.remove(n.left, item, typ)
			return n, out, ok
		case t.less(n.item, item):
			n.right, out, ok = t.remove(n.right, item, typ)
			return n, out, ok
		}
	default:
		panic("invalid type")
	}
	out := n.item
	return t.removeNode(n), out, true
}

// removeNode unlinks n from the tree and returns the subtree that takes its
// place.
//
// A leaf is simply dropped.  A node with a single child is replaced by that
// child.  A node with two children stays where it is and takes over the item
// of its in-order successor, the leftmost node of its right subtree; the
// successor is then removed from the right subtree.  The successor has no left
// child, so that second removal is always one of the first two cases.
func (t *TreeG[T]) removeNode(n *node[T]) *node[T] {
	switch {
	case n.isLeaf():
		t.freeNode(n)
		return nil
	case n.left == nil:
		child := n.right
		t.freeNode(n)
		return child
	case n.right == nil:
		child := n.left
		t.freeNode(n)
		return child
	}
	var successor T
	n.right, successor = t.removeLeftmost(n.right)
	n.item = successor
	return n
}

// removeLeftmost removes the leftmost node of the subtree rooted at n,
// returning the new subtree root and the removed item.
func (t *TreeG[T]) removeLeftmost(n *node[T]) (*node[T], T) {
	if n.left == nil {
		item := n.item
		return t.removeNode(n), item
	}
	var item T
	n.left, item = t.removeLeftmost(n.left)
	return n, item
}

// Delete removes an item equal to the passed in item from the tree, returning
// it.  If no such item exists, returns (zeroValue, false).
func (t *TreeG[T]) Delete(item T) (T, bool) {
	return t.deleteItem(item, removeItem)
}

// DeleteMin removes the smallest item in the tree and returns it.
// If no such item exists, returns (zeroValue, false).
func (t *TreeG[T]) DeleteMin() (T, bool) {
	var zero T
	return t.deleteItem(zero, removeMin)
}

// DeleteMax removes the largest item in the tree and returns it.
// If no such item exists, returns (zeroValue, false).
func (t *TreeG[T]) DeleteMax() (T, bool) {
	var zero T
	return t.deleteItem(zero, removeMax)
}

func (t *TreeG[T]) deleteItem(item T, typ toRemove) (T, bool) {
	var out T
	var outb bool
	t.root, out, outb = t.remove(t.root, item, typ)
	if outb {
		t.length--
	}
	return out, outb
}

type direction int

const (
	descend = direction(-1)
	ascend  = direction(+1)
)

type optionalItem[T any] struct {
	item  T
	valid bool
}

func optional[T any](item T) optionalItem[T] {
	return optionalItem[T]{item: item, valid: true}
}
func empty[T any]() optionalItem[T] {
	return optionalItem[T]{}
}

// iterate provides a simple method for iterating over elements in the tree.
//
// When ascending, the 'start' should be less than 'stop' and when descending,
// the 'start' should be greater than 'stop'. Setting 'includeStart' to true
// will force the iterator to include the first item when it equals 'start',
// thus creating a "greaterOrEqual" or "lessThanEqual" rather than just a
// "greaterThan" or "lessThan" queries.
//
// It returns false once iteration has been stopped, either by the iterator or
// by reaching 'stop'.
func (t *TreeG[T]) iterate(n *node[T], dir direction, start, stop optionalItem[T], includeStart bool, iter ItemIteratorG[T]) bool {
	if n == nil {
		return true
	}
	switch dir {
	case ascend:
		if start.valid && t.less(n.item, start.item) {
			return t.iterate(n.right, dir, start, stop, includeStart, iter)
		}
		if !t.iterate(n.left, dir, start, stop, includeStart, iter) {
			return false
		}
		if includeStart || !start.valid || t.less(start.item, n.item) {
			if stop.valid && !t.less(n.item, stop.item) {
				return false
			}
			if !iter(n.item) {
				return false
			}
		}
		return t.iterate(n.right, dir, start, stop, includeStart, iter)
	case descend:
		if start.valid && t.less(start.item, n.item) {
			return t.iterate(n.left, dir, start, stop, includeStart, iter)
		}
		if !t.iterate(n.right, dir, start, stop, includeStart, iter) {
			return false
		}
		if includeStart || !start.valid || t.less(n.item, start.item) {
			if stop.valid && !t.less(stop.item, n.item) {
				return false
			}
			if !iter(n.item) {
				return false
			}
		}
		return t.iterate(n.left, dir, start, stop, includeStart, iter)
	}
	return true
}

// AscendRange calls the iterator for every value in the tree within the range
// [greaterOrEqual, lessThan), until iterator returns false.
func (t *TreeG[T]) AscendRange(greaterOrEqual, lessThan T, iterator ItemIteratorG[T]) {
	t.iterate(t.root, ascend, optional[T](greaterOrEqual), optional[T](lessThan), true, iterator)
}

// AscendLessThan calls the iterator for every value in the tree within the range
// [first, pivot), until iterator returns false.
func (t *TreeG[T]) AscendLessThan(pivot T, iterator ItemIteratorG[T]) {
	t.iterate(t.root, ascend, empty[T](), optional(pivot), false, iterator)
}

// AscendGreaterOrEqual calls the iterator for every value in the tree within
// the range [pivot, last], until iterator returns false.
func (t *TreeG[T]) AscendGreaterOrEqual(pivot T, iterator ItemIteratorG[T]) {
	t.iterate(t.root, ascend, optional[T](pivot), empty[T](), true, iterator)
}

// Ascend calls the iterator for every value in the tree within the range
// [first, last], until iterator returns false.
func (t *TreeG[T]) Ascend(iterator ItemIteratorG[T]) {
	t.iterate(t.root, ascend, empty[T](), empty[T](), false, iterator)
}

// DescendRange calls the iterator for every value in the tree within the range
// [lessOrEqual, greaterThan), until iterator returns false.
func (t *TreeG[T]) DescendRange(lessOrEqual, greaterThan T, iterator ItemIteratorG[T]) {
	t.iterate(t.root, descend, optional[T](lessOrEqual), optional[T](greaterThan), true, iterator)
}

// DescendLessOrEqual calls the iterator for every value in the tree within the range
// [pivot, first], until iterator returns false.
func (t *TreeG[T]) DescendLessOrEqual(pivot T, iterator ItemIteratorG[T]) {
	t.iterate(t.root, descend, optional[T](pivot), empty[T](), true, iterator)
}

// DescendGreaterThan calls the iterator for every value in the tree within
// the range [last, pivot), until iterator returns false.
func (t *TreeG[T]) DescendGreaterThan(pivot T, iterator ItemIteratorG[T]) {
	t.iterate(t.root, descend, empty[T](), optional[T](pivot), false, iterator)
}

// Descend calls the iterator for every value in the tree within the range
// [last, first], until iterator returns false.
func (t *TreeG[T]) Descend(iterator ItemIteratorG[T]) {
	t.iterate(t.root, descend, empty[T](), empty[T](), false, iterator)
}

// Preorder returns every item in node-left-right order.
func (t *TreeG[T]) Preorder() []T {
	out := make([]T, 0, t.length)
	var walk func(n *node[T])
	walk = func(n *node[T]) {
		if n == nil {
			return
		}
		out = append(out, n.item)
		walk(n.left)
		walk(n.right)
	}
	walk(t.root)
	return out
}

// Inorder returns every item in left-node-right order, which is ascending
// order.
func (t *TreeG[T]) Inorder() []T {
	out := make([]T, 0, t.length)
	t.Ascend(func(item T) bool {
		out = append(out, item)
		return true
	})
	return out
}

// Postorder returns every item in left-right-node order.
func (t *TreeG[T]) Postorder() []T {
	out := make([]T, 0, t.length)
	var walk func(n *node[T])
	walk = func(n *node[T]) {
		if n == nil {
			return
		}
		walk(n.left)
		walk(n.right)
		out = append(out, n.item)
	}
	walk(t.root)
	return out
}

// Get looks for the key item in the tree, returning it.  It returns
// (zeroValue, false) if unable to find that item.
func (t *TreeG[T]) Get(key T) (_ T, _ bool) {
	if n := t.get(key); n != nil {
		return n.item, true
	}
	return
}

// Min returns the smallest item in the tree, or (zeroValue, false) if the tree is empty.
func (t *TreeG[T]) Min() (_ T, _ bool) {
	return min(t.root)
}

// Max returns the largest item in the tree, or (zeroValue, false) if the tree is empty.
func (t *TreeG[T]) Max() (_ T, _ bool) {
	return max(t.root)
}

// Has returns true if the given key is in the tree.
func (t *TreeG[T]) Has(key T) bool {
	return t.get(key) != nil
}

// IsEmpty reports whether the tree has no root.
func (t *TreeG[T]) IsEmpty() bool {
	return t.root == nil
}

// Len returns the number of items currently in the tree.  It is maintained on
// every insert and delete; see Count for the structural count.
func (t *TreeG[T]) Len() int {
	return t.length
}

// Count walks the whole tree and returns the number of nodes.  O(n).
func (t *TreeG[T]) Count() int {
	return count(t.root)
}

func count[T any](n *node[T]) int {
	if n == nil {
		return 0
	}
	return 1 + count(n.left) + count(n.right)
}

// Height returns the number of nodes on the longest root-to-leaf path, 0 for
// an empty tree.  It is recomputed on every call.  O(n).
func (t *TreeG[T]) Height() int {
	return height(t.root)
}

func height[T any](n *node[T]) int {
	if n == nil {
		return 0
	}
	l, r := height(n.left), height(n.right)
	if l > r {
		return l + 1
	}
	return r + 1
}

// Clear removes all items from the tree.  If addNodesToFreelist is true,
// t's nodes are added to its freelist as part of this call, until the freelist
// is full.  Otherwise, the root node is simply dereferenced and the subtree
// left to Go's normal GC processes.
//
// This call takes:
//
//	O(1): when addNodesToFreelist is false, this is a single operation.
//	O(1): when the freelist is already full, it breaks out immediately
//	O(freelist size):  when the freelist is empty, nodes are added to the
//	    freelist until full.
func (t *TreeG[T]) Clear(addNodesToFreelist bool) {
	if t.root != nil && addNodesToFreelist {
		t.reset(t.root)
	}
	t.root, t.length = nil, 0
}

// reset returns the subtree's nodes to the free list, stopping as soon as the
// free list refuses one.
func (t *TreeG[T]) reset(n *node[T]) bool {
	if n == nil {
		return true
	}
	left, right := n.left, n.right
	if !t.reset(left) || !t.reset(right) {
		return false
	}
	return t.freeNode(n)
}

// Clone returns a deep copy of the tree.  Every node is duplicated, so later
// writes to either tree are invisible to the other.  The clone gets its own
// free list.
func (t *TreeG[T]) Clone() *TreeG[T] {
	out := NewG[T](t.less)
	out.root = out.cloneNode(t.root)
	out.length = t.length
	return out
}

func (t *TreeG[T]) cloneNode(n *node[T]) *node[T] {
	if n == nil {
		return nil
	}
	c := t.newNode(n.item)
	c.left = t.cloneNode(n.left)
	c.right = t.cloneNode(n.right)
	return c
}

// Move transfers ownership of every node to a new tree, which shares t's free
// list and ordering, and leaves t empty.
func (t *TreeG[T]) Move() *TreeG[T] {
	out := NewWithFreeListG(t.less, t.freelist)
	out.root, out.length = t.root, t.length
	t.root, t.length = nil, 0
	return out
}

// Check verifies the search tree invariant: items are strictly increasing in
// order, and the maintained length matches the number of nodes.
func (t *TreeG[T]) Check() error {
	var prev optionalItem[T]
	var i int
	var err error
	t.Ascend(func(item T) bool {
		if prev.valid && !t.less(prev.item, item) {
			err = fmt.Errorf("item %d (%v) does not sort after %v", i, item, prev.item)
			return false
		}
		prev = optional(item)
		i++
		return true
	})
	if err != nil {
		return err
	}
	if n := t.Count(); n != t.length {
		return fmt.Errorf("length %d does not match %d nodes", t.length, n)
	}
	return nil
}

// print is used for testing/debugging purposes.
func (n *node[T]) print(w io.Writer, level int) {
	if n == nil {
		return
	}
	fmt.Fprintf(w, "%sNODE:%v\n", strings.Repeat("  ", level), n.item)
	n.left.print(w, level+1)
	n.right.print(w, level+1)
}

