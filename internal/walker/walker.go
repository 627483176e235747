// Package walker discovers the related-artists neighborhood of a seed artist.
package walker

import (
	"context"
	"fmt"
	"log"

	"relatives/spotify"
)

// RelatedSource yields the artists the service considers similar to id.
type RelatedSource interface {
	RelatedArtists(ctx context.Context, id string) ([]spotify.Artist, error)
}

type frontierItem struct {
	artist spotify.Artist
	depth  int
}

// Walk performs a breadth-first, depth-bounded traversal of the related
// artist relation starting at seed. It returns every discovered artist in
// discovery order, seed first. Each artist is expanded at most once no matter
// how many others point at it; cycles are handled by the visited set, not by
// the depth bound.
//
// maxDepth 0 yields just the seed. A failure expanding the seed aborts the
// walk; failures deeper in the graph are logged and treated as isolated
// nodes.
func Walk(ctx context.Context, src RelatedSource, seed spotify.Artist, maxDepth int, verbose bool) ([]spotify.Artist, error) {
	if maxDepth < 0 {
		return nil, fmt.Errorf("max depth must be non-negative, got %d", maxDepth)
	}

	visited := map[string]bool{}
	var discovered []spotify.Artist

	queue := []frontierItem{{artist: seed, depth: 0}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		// Re-enqueued artists are skipped on dequeue.
		if visited[item.artist.ID] {
			continue
		}
		visited[item.artist.ID] = true
		discovered = append(discovered, item.artist)

		if item.depth >= maxDepth {
			continue
		}

		if verbose {
			log.Printf("[walk] expanding %s at depth %d", item.artist.Name, item.depth)
		}
		related, err := src.RelatedArtists(ctx, item.artist.ID)
		if err != nil {
			if item.artist.ID == seed.ID {
				return nil, fmt.Errorf("expand seed artist %q: %w", seed.Name, err)
			}
			log.Printf("[walk] related artists for %q: %v (skipping)", item.artist.Name, err)
			continue
		}

		for _, r := range related {
			if r.ID == "" || visited[r.ID] {
				continue
			}
			queue = append(queue, frontierItem{artist: r, depth: item.depth + 1})
		}
	}

	return discovered, nil
}
