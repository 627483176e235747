package spotify

import (
	"context"
	"net/url"
	"strconv"
)

// Album is one entry of an artist's album listing.
type Album struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	AlbumType string   `json:"album_type"`
	Artists   []Artist `json:"artists"`
}

// Track is one entry of an album's track listing.
type Track struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Artists []Artist `json:"artists"`
}

type albumPage struct {
	Items []Album `json:"items"`
	Next  *string `json:"next"`
}

type trackPage struct {
	Items []Track `json:"items"`
	Next  *string `json:"next"`
}

// ArtistAlbums lists the artist's albums (full albums only, no singles or
// compilations). A non-empty market restricts the listing to albums the
// service reports available in that country.
func (c *Client) ArtistAlbums(artistID, market string) *Pager[Album] {
	return NewPager(func(ctx context.Context, limit, offset int) ([]Album, bool, error) {
		q := url.Values{
			"include_groups": {"album"},
			"limit":          {strconv.Itoa(limit)},
			"offset":         {strconv.Itoa(offset)},
		}
		if market != "" {
			q.Set("market", market)
		}
		var page albumPage
		if err := c.get(ctx, "/artists/"+artistID+"/albums", q, &page); err != nil {
			return nil, false, err
		}
		return page.Items, page.Next != nil && *page.Next != "", nil
	})
}

// AlbumTracks lists every track of an album.
func (c *Client) AlbumTracks(albumID string) *Pager[Track] {
	return NewPager(func(ctx context.Context, limit, offset int) ([]Track, bool, error) {
		q := url.Values{
			"limit":  {strconv.Itoa(limit)},
			"offset": {strconv.Itoa(offset)},
		}
		var page trackPage
		if err := c.get(ctx, "/albums/"+albumID+"/tracks", q, &page); err != nil {
			return nil, false, err
		}
		return page.Items, page.Next != nil && *page.Next != "", nil
	})
}
