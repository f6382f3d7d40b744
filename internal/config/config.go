// Package config loads playlist seed files.
//
// A playlist file is TOML:
//
//	log-level = "debug"
//	order = "inorder"
//
//	[[song]]
//	title = "Song A"
//	artist = "Artist A"
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/songtree/playlist"
	"github.com/songtree/playlist/internal/applog"
)

var ErrNoSongs = errors.New("no songs")

// Config is the decoded content of a playlist file.
type Config struct {
	LogLevel string               `toml:"log-level,omitempty"`
	Order    string               `toml:"order,omitempty"`
	Songs    []playlist.SongEntry `toml:"song"`
}

// FromTomlFile decodes the playlist file at path.  Keys that do not belong to
// the format are reported as an error.
func FromTomlFile(path string) (*Config, error) {
	_ = os.Setenv("BURNTSUSHI_TOML_110", "1") // allow new lines in toml file

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("decoding %s: unknown key %q", path, undecoded[0].String())
	}
	return &cfg, nil
}

// FromToml decodes a playlist from an in-memory document.
func FromToml(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the scalar settings.  Songs with empty fields or duplicate
// keys are not errors; Build skips them the same way Playlist.Insert would.
func (c *Config) Validate() error {
	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("field %q: %w", "log-level", err)
	}
	if _, err := playlist.ParseOrder(c.Order); err != nil {
		return fmt.Errorf("field %q: %w", "order", err)
	}
	return nil
}

// Level returns the configured log level, info when unset.
func (c *Config) Level() zerolog.Level {
	l, err := applog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

// TraversalOrder returns the configured order, inorder when unset.
func (c *Config) TraversalOrder() playlist.Order {
	o, _ := playlist.ParseOrder(c.Order)
	return o
}

// Build inserts every song into a new playlist, logging the ones that were
// rejected.  It returns ErrNoSongs when the file lists none.
func (c *Config) Build(logger zerolog.Logger) (*playlist.Playlist, error) {
	if len(c.Songs) == 0 {
		return nil, ErrNoSongs
	}
	p := playlist.NewWithLogger(logger)
	for i, s := range c.Songs {
		if !p.Insert(s.Title, s.Artist) {
			logger.Warn().Int("index", i).Str("title", s.Title).Str("artist", s.Artist).Msg("skipping song")
		}
	}
	return p, nil
}

// Encode writes songs as a playlist file.
func Encode(w io.Writer, songs []playlist.SongEntry) error {
	return toml.NewEncoder(w).Encode(Config{Songs: songs})
}
