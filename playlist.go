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
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// SongEntry is a single song stored in a Playlist.
type SongEntry struct {
	Title  string `toml:"title"`
	Artist string `toml:"artist"`
}

// Key returns the ordering key of the entry: title followed by artist.
//
// The key is derived by plain concatenation, so ("AB", "C") and ("A", "BC")
// share the key "ABC" and are treated as the same song.
func (s SongEntry) Key() string {
	return s.Title + s.Artist
}

func (s SongEntry) String() string {
	return s.Title + " by " + s.Artist
}

// compareKeys compares a.Key() with b.Key() without building either string.
func compareKeys(a, b SongEntry) int {
	a1, a2 := a.Title, a.Artist
	b1, b2 := b.Title, b.Artist
	for {
		if a1 == "" {
			a1, a2 = a2, ""
		}
		if b1 == "" {
			b1, b2 = b2, ""
		}
		if a1 == "" || b1 == "" {
			break
		}
		n := len(a1)
		if len(b1) < n {
			n = len(b1)
		}
		if c := strings.Compare(a1[:n], b1[:n]); c != 0 {
			return c
		}
		a1, b1 = a1[n:], b1[n:]
	}
	switch {
	case a1 == "" && b1 == "":
		return 0
	case a1 == "":
		return -1
	default:
		return 1
	}
}

// lessSong orders entries by their derived key.
func lessSong(a, b SongEntry) bool {
	return compareKeys(a, b) < 0
}

// Order selects one of the three depth-first traversals.
type Order int

const (
	Inorder Order = iota
	Preorder
	Postorder
)

// ErrUnknownOrder is returned by ParseOrder for an unrecognised name.
var ErrUnknownOrder = errors.New("unknown traversal order")

func (o Order) String() string {
	switch o {
	case Preorder:
		return "preorder"
	case Inorder:
		return "inorder"
	case Postorder:
		return "postorder"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder maps "preorder", "inorder" or "postorder" (case-insensitive) to
// an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "preorder", "pre":
		return Preorder, nil
	case "inorder", "in", "":
		return Inorder, nil
	case "postorder", "post":
		return Postorder, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

// Playlist is an ordered set of songs kept in an unbalanced binary search
// tree, keyed by title followed by artist.
//
// The zero value is not usable; create playlists with New or NewWithLogger.
// A Playlist is not safe for concurrent mutation.
type Playlist struct {
	tree *TreeG[SongEntry]
	log  zerolog.Logger
}

// New creates an empty playlist.
func New() *Playlist {
	return NewWithLogger(zerolog.Nop())
}

// NewWithLogger creates an empty playlist that reports rejected insertions
// and failed removals at debug level.
func NewWithLogger(log zerolog.Logger) *Playlist {
	return &Playlist{
		tree: NewG(lessSong),
		log:  log,
	}
}

// IsEmpty reports whether the playlist holds no songs.
func (p *Playlist) IsEmpty() bool {
	return p.tree.IsEmpty()
}

// Height returns the height of the underlying tree, 0 when empty.
func (p *Playlist) Height() int {
	return p.tree.Height()
}

// Count returns the number of songs.  It walks the whole tree.
func (p *Playlist) Count() int {
	return p.tree.Count()
}

// Insert adds a song.  It returns false, leaving the playlist untouched, if
// title or artist is empty or a song with the same key is already present.
func (p *Playlist) Insert(title, artist string) bool {
	if title == "" || artist == "" {
		p.log.Debug().Str("title", title).Str("artist", artist).Msg("rejecting song with empty field")
		return false
	}
	if !p.tree.Insert(SongEntry{Title: title, Artist: artist}) {
		p.log.Debug().Str("title", title).Str("artist", artist).Msg("rejecting duplicate song")
		return false
	}
	return true
}

// Remove deletes the song with exactly this title and artist.  It returns
// false if no such song exists.
func (p *Playlist) Remove(title, artist string) bool {
	if _, ok := p.tree.Delete(SongEntry{Title: title, Artist: artist}); !ok {
		p.log.Debug().Str("title", title).Str("artist", artist).Msg("song not found for removal")
		return false
	}
	return true
}

// Search reports whether a song with this title and artist is present.
func (p *Playlist) Search(title, artist string) bool {
	return p.tree.Has(SongEntry{Title: title, Artist: artist})
}

// PreorderTraverse returns the songs in node-left-right order.
func (p *Playlist) PreorderTraverse() []SongEntry {
	return p.tree.Preorder()
}

// InorderTraverse returns the songs in ascending key order.
func (p *Playlist) InorderTraverse() []SongEntry {
	return p.tree.Inorder()
}

// PostorderTraverse returns the songs in left-right-node order.
func (p *Playlist) PostorderTraverse() []SongEntry {
	return p.tree.Postorder()
}

// Traverse returns the songs in the given order.
func (p *Playlist) Traverse(o Order) []SongEntry {
	switch o {
	case Preorder:
		return p.PreorderTraverse()
	case Postorder:
		return p.PostorderTraverse()
	default:
		return p.InorderTraverse()
	}
}

// Ascend calls fn for every song in ascending key order until fn returns
// false.
func (p *Playlist) Ascend(fn func(SongEntry) bool) {
	p.tree.Ascend(fn)
}

// Descend calls fn for every song in descending key order until fn returns
// false.
func (p *Playlist) Descend(fn func(SongEntry) bool) {
	p.tree.Descend(fn)
}

// Min returns the song with the smallest key.
func (p *Playlist) Min() (SongEntry, bool) {
	return p.tree.Min()
}

// Max returns the song with the largest key.
func (p *Playlist) Max() (SongEntry, bool) {
	return p.tree.Max()
}

// Clear removes every song.
func (p *Playlist) Clear() {
	p.tree.Clear(true)
}

// Clone returns an independent deep copy of the playlist.
func (p *Playlist) Clone() *Playlist {
	return &Playlist{tree: p.tree.Clone(), log: p.log}
}

// Move hands every song over to a new playlist and leaves p empty.
func (p *Playlist) Move() *Playlist {
	return &Playlist{tree: p.tree.Move(), log: p.log}
}

// Check verifies that the songs are in strictly increasing key order.
func (p *Playlist) Check() error {
	return p.tree.Check()
}
