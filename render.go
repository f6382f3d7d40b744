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

package playlist

import (
	"github.com/xlab/treeprint"
)

const emptyLabel = "(empty)"

// Render draws the shape of the playlist's tree.  Children are tagged [L] or
// [R] so that a node with a single child still shows which side it is on.
func (p *Playlist) Render() string {
	root := p.tree.root
	if root == nil {
		return treeprint.NewWithRoot(emptyLabel).String()
	}
	tree := treeprint.NewWithRoot(root.item.String())
	renderChildren(tree, root)
	return tree.String()
}

func renderChildren(tree treeprint.Tree, n *node[SongEntry]) {
	for _, c := range []struct {
		meta  string
		child *node[SongEntry]
	}{{"L", n.left}, {"R", n.right}} {
		if c.child == nil {
			continue
		}
		if c.child.isLeaf() {
			tree.AddMetaNode(c.meta, c.child.item.String())
			continue
		}
		renderChildren(tree.AddMetaBranch(c.meta, c.child.item.String()), c.child)
	}
}

// String implements fmt.Stringer by rendering the tree.
func (p *Playlist) String() string {
	return p.Render()
}
