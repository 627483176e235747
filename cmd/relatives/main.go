// Command relatives builds a Spotify playlist out of an artist's
// related-artists neighborhood: it walks the related relation to a bounded
// depth, collects every album track of every discovered artist and publishes
// them as a new playlist.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"relatives/internal/auth"
	"relatives/internal/collector"
	"relatives/internal/config"
	"relatives/internal/dedupe"
	"relatives/internal/publisher"
	"relatives/internal/walker"
	"relatives/spotify"
)

const defaultNameFormat = "<artist> - Related Artists"

// Spotify rejects playlist names longer than this.
const maxPlaylistNameLen = 100

type options struct {
	artist       string
	maxDepth     int
	country      string
	excludeSeed  bool
	nameFormat   string
	public       bool
	dedupeTitles bool
	verbose      bool
}

func main() {
	app := &cli.App{
		Name:      "relatives",
		Usage:     "create a Spotify playlist from an artist's related-artists graph",
		ArgsUsage: "<artist name | spotify:artist:ID>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "max-depth",
				Aliases: []string{"d"},
				Value:   1,
				Usage:   "levels of related artists to traverse; 0 means just the seed artist. Values above 3 produce very large (and unrelated) playlists",
			},
			&cli.StringFlag{
				Name:    "country",
				Aliases: []string{"c"},
				Usage:   "two-letter country code; only albums available in this market are collected",
			},
			&cli.BoolFlag{
				Name:  "exclude-seed",
				Usage: "leave the seed artist's own tracks out of the playlist",
			},
			&cli.StringFlag{
				Name:    "playlist-name",
				Aliases: []string{"n"},
				Value:   defaultNameFormat,
				Usage:   "playlist name; <artist> is replaced with the seed artist's name",
			},
			&cli.BoolFlag{
				Name:  "public",
				Usage: "create a public playlist instead of a private one",
			},
			&cli.BoolFlag{
				Name:  "dedupe-titles",
				Usage: "drop tracks whose titles look like variants of one already collected",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log artist expansions and album fetches",
			},
		},
		Action: action,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func action(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one artist name or spotify:artist: URI is required")
	}
	ctx := c.Context

	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	authn := auth.New(cfg)
	httpClient, err := authn.Client(ctx)
	if errors.Is(err, auth.ErrNoToken) {
		if err := authn.Authorize(ctx); err != nil {
			return fmt.Errorf("spotify authorization: %w", err)
		}
		httpClient, err = authn.Client(ctx)
	}
	if err != nil {
		return err
	}

	opts := options{
		artist:       c.Args().First(),
		maxDepth:     c.Int("max-depth"),
		country:      c.String("country"),
		excludeSeed:  c.Bool("exclude-seed"),
		nameFormat:   c.String("playlist-name"),
		public:       c.Bool("public"),
		dedupeTitles: c.Bool("dedupe-titles"),
		verbose:      c.Bool("verbose"),
	}

	url, err := run(ctx, spotify.NewClient(httpClient), opts)
	if err != nil {
		return err
	}

	fmt.Println("Your new playlist can be listened to here:")
	fmt.Println(url)
	return nil
}

// run executes the three phases in order: walk the artist graph, collect
// tracks, publish the playlist. Each phase finishes completely before the
// next begins.
func run(ctx context.Context, sc *spotify.Client, opts options) (string, error) {
	if opts.maxDepth < 0 {
		return "", fmt.Errorf("max depth must be non-negative, got %d", opts.maxDepth)
	}
	if opts.nameFormat == "" {
		opts.nameFormat = defaultNameFormat
	}

	var seed spotify.Artist
	var err error
	if spotify.IsArtistURI(opts.artist) {
		seed, err = sc.GetArtist(ctx, spotify.ArtistIDFromURI(opts.artist))
	} else {
		seed, err = sc.SearchArtist(ctx, opts.artist)
	}
	if err != nil {
		return "", err
	}

	fmt.Println("Gathering artists...")
	artists, err := walker.Walk(ctx, sc, seed, opts.maxDepth, opts.verbose)
	if err != nil {
		return "", err
	}
	if opts.excludeSeed {
		// Discovery order puts the seed first.
		artists = artists[1:]
	}

	fmt.Println("Collecting tracks from each artist...")
	tracks := collector.Collect(ctx, sc, artists, opts.country, opts.verbose)
	if opts.dedupeTitles {
		before := len(tracks)
		tracks = dedupe.Tracks(tracks, dedupe.DefaultThreshold)
		if opts.verbose {
			log.Printf("[dedupe] %d tracks -> %d after title dedupe", before, len(tracks))
		}
	}
	if len(tracks) == 0 {
		return "", fmt.Errorf("no tracks collected for %q; nothing to publish", seed.Name)
	}

	fmt.Printf("Found %d tracks across %d artists at most %d steps removed from %q.\n",
		len(tracks), len(artists), opts.maxDepth, seed.Name)

	name := strings.ReplaceAll(opts.nameFormat, "<artist>", seed.Name)
	if len(name) > maxPlaylistNameLen {
		name = name[:maxPlaylistNameLen]
	}

	fmt.Println("Creating the playlist...")
	playlist, err := publisher.Publish(ctx, sc, name, collector.TrackIDs(tracks), opts.public)
	if err != nil {
		return "", err
	}
	return playlist.URL(), nil
}
