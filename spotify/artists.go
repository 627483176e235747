package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrArtistNotFound means a seed artist could not be resolved.
var ErrArtistNotFound = errors.New("artist not found")

// Artist is the subset of artist metadata the traversal needs.
type Artist struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Popularity int    `json:"popularity"`
}

const artistURIPrefix = "spotify:artist:"

// IsArtistURI reports whether s looks like spotify:artist:<id>.
func IsArtistURI(s string) bool {
	return strings.HasPrefix(s, artistURIPrefix) && len(s) > len(artistURIPrefix)
}

// ArtistIDFromURI extracts the bare ID from spotify:artist:<id>.
func ArtistIDFromURI(s string) string {
	return strings.TrimPrefix(s, artistURIPrefix)
}

type artistPage struct {
	Items []Artist `json:"items"`
	Next  *string  `json:"next"`
}

// SearchArtist resolves an artist name to the artist whose name matches it
// exactly. With several exact matches the most popular one wins. The search
// stops at the first page that yields any exact match.
func (c *Client) SearchArtist(ctx context.Context, name string) (Artist, error) {
	pager := NewPager(func(ctx context.Context, limit, offset int) ([]Artist, bool, error) {
		q := url.Values{
			"q":      {name},
			"type":   {"artist"},
			"limit":  {strconv.Itoa(limit)},
			"offset": {strconv.Itoa(offset)},
		}
		var out struct {
			Artists artistPage `json:"artists"`
		}
		if err := c.get(ctx, "/search", q, &out); err != nil {
			return nil, false, err
		}
		return out.Artists.Items, out.Artists.Next != nil && *out.Artists.Next != "", nil
	})

	var matches []Artist
	for {
		items, more, err := pager.Next(ctx)
		if err != nil {
			return Artist{}, fmt.Errorf("search artist %q: %w", name, err)
		}
		for _, a := range items {
			if a.Name == name {
				matches = append(matches, a)
			}
		}
		if len(matches) > 0 || !more {
			break
		}
	}

	if len(matches) == 0 {
		return Artist{}, fmt.Errorf("%w: no exact match for %q", ErrArtistNotFound, name)
	}
	best := matches[0]
	for _, m := range matches[1:] {
		if m.Popularity > best.Popularity {
			best = m
		}
	}
	return best, nil
}

// GetArtist fetches a single artist by ID.
func (c *Client) GetArtist(ctx context.Context, id string) (Artist, error) {
	var a Artist
	if err := c.get(ctx, "/artists/"+id, nil, &a); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Status == 404 {
			return Artist{}, fmt.Errorf("%w: %s", ErrArtistNotFound, id)
		}
		return Artist{}, fmt.Errorf("get artist %s: %w", id, err)
	}
	return a, nil
}

// RelatedArtists returns the artists the service considers similar to id,
// in the order the service reports them. The list is not paginated.
func (c *Client) RelatedArtists(ctx context.Context, id string) ([]Artist, error) {
	var out struct {
		Artists []Artist `json:"artists"`
	}
	if err := c.get(ctx, "/artists/"+id+"/related-artists", nil, &out); err != nil {
		return nil, fmt.Errorf("related artists for %s: %w", id, err)
	}
	return out.Artists, nil
}
