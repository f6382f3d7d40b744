package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/songtree/playlist"
	"github.com/songtree/playlist/internal/applog"
	"github.com/songtree/playlist/internal/config"
	"github.com/songtree/playlist/internal/fakesongs"
	"github.com/urfave/cli/v3"
)

var errNoFile = errors.New("no playlist file given; use --file or PLAYLIST_FILE")

func createCommand(out, errOut io.Writer) *cli.Command {
	songFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     "title",
			Aliases:  []string{"t"},
			Usage:    "song title",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "artist",
			Aliases:  []string{"a"},
			Usage:    "song artist",
			Required: true,
		},
	}

	return &cli.Command{
		Name:      "playlist",
		Usage:     "inspect a song playlist kept in a binary search tree",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "playlist TOML file",
				Sources: cli.EnvVars("PLAYLIST_FILE"),
			},
			&cli.StringFlag{
				Name:      "log-level",
				Usage:     "log level (trace, debug, info, warn, error); overrides the file's log-level",
				OnlyOnce:  true,
				Validator: validateLogLevel,
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "demo",
				Usage:  "build a five song playlist and exercise it",
				Action: runDemo,
			},
			{
				Name:  "list",
				Usage: "print the songs of the playlist file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:      "order",
						Aliases:   []string{"o"},
						Usage:     "traversal order: preorder, inorder or postorder (default: the file's order, else inorder)",
						Validator: validateOrder,
					},
				},
				Action: runList,
			},
			{
				Name:   "tree",
				Usage:  "draw the tree built from the playlist file",
				Action: runTree,
			},
			{
				Name:   "search",
				Usage:  "look a song up by exact title and artist",
				Flags:  songFlags,
				Action: runSearch,
			},
			{
				Name:   "remove",
				Usage:  "remove a song and list what remains",
				Flags:  songFlags,
				Action: runRemove,
			},
			{
				Name:  "gen",
				Usage: "write a playlist file of generated songs",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "number of songs",
						Value:   10,
						Validator: func(v int) error {
							if v < 1 {
								return fmt.Errorf("must be positive")
							}
							return nil
						},
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "generator seed",
						Value: 1,
					},
				},
				Action: runGen,
			},
		},
	}
}

func validateLogLevel(v string) error {
	_, err := applog.ParseLevel(v)
	return err
}

func validateOrder(v string) error {
	_, err := playlist.ParseOrder(v)
	return err
}

// session carries what every subcommand needs.
type session struct {
	out    io.Writer
	logger zerolog.Logger
	cfg    *config.Config
}

func newSession(cmd *cli.Command) *session {
	root := cmd.Root()
	level, _ := applog.ParseLevel(cmd.String("log-level"))
	return &session{
		out:    root.Writer,
		logger: applog.NewLogger(root.ErrWriter, level),
	}
}

// load reads the playlist file and builds the tree.
func (s *session) load(cmd *cli.Command) (*playlist.Playlist, error) {
	path := cmd.String("file")
	if path == "" {
		return nil, errNoFile
	}
	cfg, err := config.FromTomlFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !cmd.IsSet("log-level") && cfg.LogLevel != "" {
		s.logger = s.logger.Level(cfg.Level())
	}
	s.cfg = cfg

	p, err := cfg.Build(applog.WithScope(s.logger, "PLAYLIST"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.logger.Debug().Str("file", path).Int("songs", p.Count()).Int("height", p.Height()).Msg("playlist loaded")
	return p, nil
}

func runDemo(ctx context.Context, cmd *cli.Command) error {
	s := newSession(cmd)
	p := playlist.NewWithLogger(applog.WithScope(s.logger, "PLAYLIST"))
	for _, c := range []string{"A", "B", "C", "D", "E"} {
		p.Insert("Song "+c, "Artist "+c)
	}

	fmt.Fprintf(s.out, "Number of songs in the playlist: %d\n", p.Count())
	fmt.Fprintf(s.out, "Height of the playlist: %d\n", p.Height())
	fmt.Fprintln(s.out, "Inorder traversal:")
	for _, song := range p.InorderTraverse() {
		fmt.Fprintln(s.out, song)
	}

	searchSong, searchArtist := "Song B", "Artist B"
	if p.Search(searchSong, searchArtist) {
		fmt.Fprintf(s.out, "%s by %s found in the playlist.\n", searchSong, searchArtist)
	} else {
		fmt.Fprintf(s.out, "%s by %s not found in the playlist.\n", searchSong, searchArtist)
	}

	removeSong, removeArtist := "Song C", "Artist C"
	if p.Remove(removeSong, removeArtist) {
		fmt.Fprintf(s.out, "%s by %s removed from the playlist.\n", removeSong, removeArtist)
	} else {
		fmt.Fprintf(s.out, "%s by %s not found in the playlist. Removal failed.\n", removeSong, removeArtist)
	}

	fmt.Fprintf(s.out, "Number of songs in the playlist after removal: %d\n", p.Count())
	return nil
}

func runList(ctx context.Context, cmd *cli.Command) error {
	s := newSession(cmd)
	p, err := s.load(cmd)
	if err != nil {
		return err
	}
	order := s.cfg.TraversalOrder()
	if cmd.IsSet("order") {
		order, _ = playlist.ParseOrder(cmd.String("order"))
	}
	return printSongs(s.out, p, order)
}

func printSongs(w io.Writer, p *playlist.Playlist, order playlist.Order) error {
	data := pterm.TableData{{"#", "Title", "Artist"}}
	for i, song := range p.Traverse(order) {
		data = append(data, []string{strconv.Itoa(i + 1), song.Title, song.Artist})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, table)
	fmt.Fprintf(w, "%d songs, height %d, %s\n", p.Count(), p.Height(), order)
	return nil
}

func runTree(ctx context.Context, cmd *cli.Command) error {
	s := newSession(cmd)
	p, err := s.load(cmd)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, p.Render())
	return nil
}

func runSearch(ctx context.Context, cmd *cli.Command) error {
	s := newSession(cmd)
	p, err := s.load(cmd)
	if err != nil {
		return err
	}
	title, artist := cmd.String("title"), cmd.String("artist")
	if p.Search(title, artist) {
		fmt.Fprintf(s.out, "%s by %s found in the playlist.\n", title, artist)
	} else {
		fmt.Fprintf(s.out, "%s by %s not found in the playlist.\n", title, artist)
	}
	return nil
}

func runRemove(ctx context.Context, cmd *cli.Command) error {
	s := newSession(cmd)
	p, err := s.load(cmd)
	if err != nil {
		return err
	}
	title, artist := cmd.String("title"), cmd.String("artist")
	if !p.Remove(title, artist) {
		return fmt.Errorf("%s by %s not found in the playlist", title, artist)
	}
	fmt.Fprintf(s.out, "%s by %s removed from the playlist.\n", title, artist)
	return printSongs(s.out, p, playlist.Inorder)
}

func runGen(ctx context.Context, cmd *cli.Command) error {
	s := newSession(cmd)
	songs := fakesongs.New(cmd.Int64("seed")).Songs(cmd.Int("count"))
	s.logger.Debug().Int("songs", len(songs)).Msg("generated")
	return config.Encode(s.out, songs)
}
