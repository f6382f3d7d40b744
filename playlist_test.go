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
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func song(i int) SongEntry {
	return SongEntry{Title: fmt.Sprintf("Song %03d", i), Artist: fmt.Sprintf("Artist %03d", i)}
}

func fill(p *Playlist, perm []int) {
	for _, i := range perm {
		s := song(i)
		p.Insert(s.Title, s.Artist)
	}
}

func assertAscending(t *testing.T, songs []SongEntry) {
	t.Helper()
	for i := 1; i < len(songs); i++ {
		if songs[i-1].Key() >= songs[i].Key() {
			t.Fatalf("entries %d and %d out of order: %q >= %q", i-1, i, songs[i-1].Key(), songs[i].Key())
		}
	}
}

func ExamplePlaylist() {
	p := New()
	p.Insert("Song A", "Artist A")
	p.Insert("Song B", "Artist B")
	p.Insert("Song C", "Artist C")
	fmt.Println("count: ", p.Count())
	fmt.Println("height:", p.Height())
	for _, s := range p.InorderTraverse() {
		fmt.Println(s)
	}
	fmt.Println("search:", p.Search("Song B", "Artist B"))
	fmt.Println("remove:", p.Remove("Song C", "Artist C"))
	fmt.Println("count: ", p.Count())
	fmt.Println(p.InorderTraverse())
	// Output:
	// count:  3
	// height: 3
	// Song A by Artist A
	// Song B by Artist B
	// Song C by Artist C
	// search: true
	// remove: true
	// count:  2
	// [Song A by Artist A Song B by Artist B]
}

func TestEmptyPlaylist(t *testing.T) {
	p := New()
	if !p.IsEmpty() || p.Count() != 0 || p.Height() != 0 {
		t.Fatalf("empty: IsEmpty %v Count %d Height %d", p.IsEmpty(), p.Count(), p.Height())
	}
	if p.Search("Song A", "Artist A") {
		t.Fatal("search on empty playlist succeeded")
	}
	if p.Remove("Song A", "Artist A") {
		t.Fatal("remove on empty playlist succeeded")
	}
	for _, o := range []Order{Preorder, Inorder, Postorder} {
		if got := p.Traverse(o); got == nil || len(got) != 0 {
			t.Fatalf("%v on empty playlist: %#v", o, got)
		}
	}
	if _, ok := p.Min(); ok {
		t.Fatal("min on empty playlist")
	}
	p.Clear()
	if !p.IsEmpty() {
		t.Fatal("clear made an empty playlist non-empty")
	}
}

func TestInsertRejects(t *testing.T) {
	p := New()
	for _, tc := range []struct{ title, artist string }{
		{"", "Artist"},
		{"Title", ""},
		{"", ""},
	} {
		if p.Insert(tc.title, tc.artist) {
			t.Fatalf("Insert(%q, %q) accepted an empty field", tc.title, tc.artist)
		}
	}
	if !p.IsEmpty() {
		t.Fatal("rejected inserts modified the playlist")
	}

	if !p.Insert("Song A", "Artist A") {
		t.Fatal("first insert failed")
	}
	if p.Insert("Song A", "Artist A") {
		t.Fatal("duplicate insert accepted")
	}
	if p.Count() != 1 {
		t.Fatalf("count %d after duplicate insert", p.Count())
	}
}

func TestRoundTrip(t *testing.T) {
	const n = 200
	p := New()
	fill(p, rand.Perm(n))
	if p.Count() != n {
		t.Fatalf("count %d, want %d", p.Count(), n)
	}
	for i := 0; i < n; i++ {
		s := song(i)
		if !p.Search(s.Title, s.Artist) {
			t.Fatalf("%v not found", s)
		}
	}
	for _, s := range []SongEntry{song(n), song(-1), {"Song 001", "Artist 002"}} {
		if p.Search(s.Title, s.Artist) {
			t.Fatalf("%v found but never inserted", s)
		}
	}
	assertAscending(t, p.InorderTraverse())
}

func TestRemove(t *testing.T) {
	p := New()
	fill(p, rand.Perm(50))
	before := p.InorderTraverse()

	if p.Remove("Song 100", "Artist 100") {
		t.Fatal("removed a missing song")
	}
	if !reflect.DeepEqual(p.InorderTraverse(), before) {
		t.Fatal("failed removal changed the playlist")
	}

	s := song(25)
	if !p.Remove(s.Title, s.Artist) {
		t.Fatalf("could not remove %v", s)
	}
	if p.Remove(s.Title, s.Artist) {
		t.Fatalf("removed %v twice", s)
	}
	if p.Count() != 49 || p.Search(s.Title, s.Artist) {
		t.Fatalf("count %d, still present %v", p.Count(), p.Search(s.Title, s.Artist))
	}
}

func TestRemoveInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	p := New()
	fill(p, r.Perm(300))
	for _, i := range r.Perm(300) {
		s := song(i)
		if !p.Remove(s.Title, s.Artist) {
			t.Fatalf("%v missing", s)
		}
		assertAscending(t, p.InorderTraverse())
		if err := p.Check(); err != nil {
			t.Fatal(err)
		}
	}
	if !p.IsEmpty() {
		t.Fatal("playlist not empty")
	}
}

func TestRemoveTwoChildren(t *testing.T) {
	p := New()
	// Song 050 becomes the root with both subtrees populated.
	fill(p, []int{50, 30, 70, 20, 40, 60, 80, 65})
	before := p.InorderTraverse()
	root := p.PreorderTraverse()[0]
	if root != song(50) {
		t.Fatalf("unexpected root %v", root)
	}
	if !p.Remove(root.Title, root.Artist) {
		t.Fatal("remove failed")
	}
	var want []SongEntry
	for _, s := range before {
		if s != root {
			want = append(want, s)
		}
	}
	if got := p.InorderTraverse(); !reflect.DeepEqual(got, want) {
		t.Fatalf("inorder:\n got: %v\nwant: %v", got, want)
	}
	if got := p.PreorderTraverse()[0]; got != song(60) {
		t.Fatalf("successor %v was not promoted, root is %v", song(60), got)
	}
	if err := p.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestTraversals(t *testing.T) {
	p := New()
	fill(p, []int{2, 1, 3})
	for _, tc := range []struct {
		order Order
		want  []SongEntry
	}{
		{Preorder, []SongEntry{song(2), song(1), song(3)}},
		{Inorder, []SongEntry{song(1), song(2), song(3)}},
		{Postorder, []SongEntry{song(1), song(3), song(2)}},
	} {
		if got := p.Traverse(tc.order); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%v:\n got: %v\nwant: %v", tc.order, got, tc.want)
		}
	}
	// Every call builds a fresh slice.
	a := p.InorderTraverse()
	a[0] = SongEntry{}
	if p.InorderTraverse()[0] != song(1) {
		t.Fatal("traversal result aliases the tree")
	}
}

func TestHeightBounds(t *testing.T) {
	p := New()
	fill(p, intRange(40, false))
	if p.Height() != 40 {
		t.Fatalf("increasing inserts: height %d, want 40", p.Height())
	}

	p.Clear()
	var order []int
	var split func(lo, hi int)
	split = func(lo, hi int) {
		if lo > hi {
			return
		}
		mid := (lo + hi) / 2
		order = append(order, mid)
		split(lo, mid-1)
		split(mid+1, hi)
	}
	split(0, 254)
	fill(p, order)
	if p.Count() != 255 || p.Height() != 8 {
		t.Fatalf("balanced inserts: count %d height %d, want 255 and 8", p.Count(), p.Height())
	}
}

func TestAscendDescend(t *testing.T) {
	p := New()
	fill(p, rand.Perm(20))
	var up, down []SongEntry
	p.Ascend(func(s SongEntry) bool {
		up = append(up, s)
		return len(up) < 5
	})
	p.Descend(func(s SongEntry) bool {
		down = append(down, s)
		return true
	})
	if want := []SongEntry{song(0), song(1), song(2), song(3), song(4)}; !reflect.DeepEqual(up, want) {
		t.Fatalf("ascend:\n got: %v\nwant: %v", up, want)
	}
	if len(down) != 20 || down[0] != song(19) || down[19] != song(0) {
		t.Fatalf("descend: %v", down)
	}
	if s, ok := p.Min(); !ok || s != song(0) {
		t.Fatalf("min %v %v", s, ok)
	}
	if s, ok := p.Max(); !ok || s != song(19) {
		t.Fatalf("max %v %v", s, ok)
	}
}

func TestCloneAndMove(t *testing.T) {
	p := New()
	fill(p, rand.Perm(30))
	c := p.Clone()
	if !reflect.DeepEqual(p.PreorderTraverse(), c.PreorderTraverse()) {
		t.Fatal("clone differs in shape")
	}
	c.Remove("Song 000", "Artist 000")
	if !p.Search("Song 000", "Artist 000") {
		t.Fatal("removing from the clone affected the original")
	}

	want := p.InorderTraverse()
	m := p.Move()
	if !p.IsEmpty() {
		t.Fatal("source not empty after move")
	}
	if !reflect.DeepEqual(m.InorderTraverse(), want) {
		t.Fatal("moved playlist lost songs")
	}
}

func TestKeyAliasing(t *testing.T) {
	p := New()
	if !p.Insert("AB", "C") {
		t.Fatal("insert failed")
	}
	// Same concatenated key "ABC".
	if p.Insert("A", "BC") {
		t.Fatal("entries with equal derived keys are expected to collide")
	}
	if !p.Search("A", "BC") {
		t.Fatal("search is expected to match on the derived key")
	}
}

func TestCompareKeys(t *testing.T) {
	words := []string{"", "a", "ab", "abc", "b", "ba", "Song", "Song A", "Artist", "é", "z"}
	for _, t1 := range words {
		for _, a1 := range words {
			for _, t2 := range words {
				for _, a2 := range words {
					x, y := SongEntry{t1, a1}, SongEntry{t2, a2}
					if got, want := compareKeys(x, y), strings.Compare(x.Key(), y.Key()); got != want {
						t.Fatalf("compareKeys(%q, %q) = %d, want %d", x.Key(), y.Key(), got, want)
					}
				}
			}
		}
	}
}

func TestParseOrder(t *testing.T) {
	for in, want := range map[string]Order{
		"preorder":  Preorder,
		"InOrder":   Inorder,
		"":          Inorder,
		"post":      Postorder,
		"postorder": Postorder,
	} {
		got, err := ParseOrder(in)
		if err != nil || got != want {
			t.Fatalf("ParseOrder(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseOrder("levelorder"); !errors.Is(err, ErrUnknownOrder) {
		t.Fatalf("unexpected error %v", err)
	}
	if Postorder.String() != "postorder" || Order(9).String() != "Order(9)" {
		t.Fatal("bad Order.String")
	}
}

func TestRender(t *testing.T) {
	p := New()
	if got := p.Render(); !strings.Contains(got, emptyLabel) {
		t.Fatalf("empty render: %q", got)
	}
	fill(p, []int{2, 1, 3, 4})
	got := p.String()
	for _, want := range []string{
		song(2).String(),
		song(1).String(),
		song(3).String(),
		song(4).String(),
		"[L]",
		"[R]",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("render missing %q:\n%s", want, got)
		}
	}
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	p := NewWithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	p.Insert("Song A", "Artist A")
	p.Insert("Song A", "Artist A")
	p.Insert("", "Artist A")
	p.Remove("Song B", "Artist B")
	out := buf.String()
	for _, want := range []string{"rejecting duplicate song", "rejecting song with empty field", "song not found for removal"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	p = NewWithLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))
	p.Insert("", "")
	if buf.Len() != 0 {
		t.Fatalf("debug output at info level: %s", buf.String())
	}
}
