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

//go:build goexperiment.arenas

package playlist

import (
	"arena"
)

// CloneWithArena is Clone with every node allocated from a.  The returned
// tree must not be used after a is freed.  Nodes it releases are dropped
// rather than recycled, since they belong to the arena.
func (t *TreeG[T]) CloneWithArena(a *arena.Arena) *TreeG[T] {
	t2 := arena.New[TreeG[T]](a)
	t2.freelist = NewFreeListG[T](0)
	t2.less = t.less
	t2.length = t.length
	t2.root = t.root.cloneWithArena(a)
	return t2
}

func (n *node[T]) cloneWithArena(a *arena.Arena) *node[T] {
	if n == nil {
		return nil
	}
	n2 := arena.New[node[T]](a)
	n2.item = n.item
	n2.left = n.left.cloneWithArena(a)
	n2.right = n.right.cloneWithArena(a)
	return n2
}

// CloneWithArena is Playlist.Clone with the tree allocated from a.
func (p *Playlist) CloneWithArena(a *arena.Arena) *Playlist {
	return &Playlist{tree: p.tree.CloneWithArena(a), log: p.log}
}
