// Package dedupe collapses near-identical track title variants so a playlist
// built from many albums does not carry five editions of the same recording.
// Track ID identity is handled upstream; this pass is purely title-based and
// optional.
package dedupe

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
	"golang.org/x/text/unicode/norm"

	"relatives/spotify"
)

// DefaultThreshold is the levenshtein similarity above which two normalized
// titles count as the same recording.
const DefaultThreshold = 0.72

// versionNoise are suffix qualifiers that distinguish editions, not songs.
var versionNoise = []string{
	"album version",
	"single version",
	"radio edit",
	"clean edit",
	"clean version",
	"explicit version",
	"explicit",
	"instrumental",
	"remastered",
	"remaster",
	"original mix",
	"live at",
	"live in",
	"live",
	"demo",
	"a cappella",
	"acapella",
}

var reStripPunctuation = regexp.MustCompile(`[.,:;(){}\[\]'"!?&/-]`)

func stripDiacritics(s string) string {
	t := norm.NFD.String(s)
	out := make([]rune, 0, len(t))
	for _, r := range t {
		if unicode.IsMark(r) {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

func normalizeTitle(s string) string {
	s = strings.ToLower(s)
	s = stripDiacritics(s)
	s = strings.ReplaceAll(s, "featuring", " feat ")
	s = strings.ReplaceAll(s, "feat.", " feat ")
	s = reStripPunctuation.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

func stripVersionTags(s string) string {
	for _, tag := range versionNoise {
		s = strings.ReplaceAll(s, tag, " ")
	}
	return strings.Join(strings.Fields(s), " ")
}

type canon struct {
	artist     string
	core       string
	sortedCore string
}

func canonize(t spotify.Track) canon {
	core := stripVersionTags(normalizeTitle(t.Name))
	toks := strings.Fields(core)
	sort.Strings(toks)
	c := canon{core: core, sortedCore: strings.Join(toks, " ")}
	if len(t.Artists) > 0 {
		c.artist = t.Artists[0].ID
	}
	return c
}

// sameTitle only ever merges tracks sharing a primary artist; two bands can
// legitimately release songs with the same name.
func sameTitle(a, b canon, threshold float64) bool {
	if a.artist != b.artist {
		return false
	}
	if a.core == "" || b.core == "" {
		return false
	}
	if a.core == b.core {
		return true
	}
	if strings.Contains(a.core, b.core) || strings.Contains(b.core, a.core) {
		return true
	}
	if a.sortedCore == b.sortedCore {
		return true
	}
	return levenshtein.Similarity(a.core, b.core, nil) >= threshold
}

// Tracks removes later tracks whose title normalizes to one already kept.
// The first occurrence wins, preserving collection order.
func Tracks(in []spotify.Track, threshold float64) []spotify.Track {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	kept := make([]canon, 0, len(in))
	out := make([]spotify.Track, 0, len(in))

	for _, t := range in {
		c := canonize(t)
		dup := false
		for _, k := range kept {
			if sameTitle(k, c, threshold) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		kept = append(kept, c)
		out = append(out, t)
	}
	return out
}
