// Package fakesongs generates reproducible song entries for demos,
// benchmarks and tests.
package fakesongs

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/songtree/playlist"
)

// Generator produces song entries from a seeded faker, so the same seed
// always yields the same sequence.
type Generator struct {
	faker *gofakeit.Faker
}

// New returns a Generator seeded with seed.
func New(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Song returns one entry with a non-empty title and artist.
func (g *Generator) Song() playlist.SongEntry {
	title := strings.TrimSuffix(g.faker.Sentence(3), ".")
	if title == "" {
		title = g.faker.Word()
	}
	return playlist.SongEntry{
		Title:  title,
		Artist: g.faker.Name(),
	}
}

// Songs returns n entries whose derived keys are pairwise distinct.
func (g *Generator) Songs(n int) []playlist.SongEntry {
	out := make([]playlist.SongEntry, 0, n)
	seen := make(map[string]struct{}, n)
	for len(out) < n {
		s := g.Song()
		for i := 2; ; i++ {
			if _, dup := seen[s.Key()]; !dup {
				break
			}
			s.Title = fmt.Sprintf("%s (take %d)", strings.TrimSpace(s.Title), i)
		}
		seen[s.Key()] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Fill inserts n distinct generated songs into p and returns how many were
// accepted.  Songs already present in p are skipped, so the result can be
// lower than n.
func (g *Generator) Fill(p *playlist.Playlist, n int) int {
	var added int
	for _, s := range g.Songs(n) {
		if p.Insert(s.Title, s.Artist) {
			added++
		}
	}
	return added
}
