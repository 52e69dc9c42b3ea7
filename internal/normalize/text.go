// Package normalize holds the text, URL, and date clean-up shared by every
// source parser. All functions are pure.
package normalize

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	nonKeyRegex     = regexp.MustCompile(`[^\w\s-]`)
)

// Key folds s into a comparison key: lowercased, trimmed, whitespace runs
// collapsed, and anything other than word characters, whitespace, and
// hyphens removed. Keys are only used for matching, never for display.
func Key(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return nonKeyRegex.ReplaceAllString(s, "")
}

// emojiRanges lists the symbol and pictograph blocks removed from company
// names. The astral range covers the code points reached by the
// U+D83C..U+D83E surrogate pairs.
var emojiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00a9, Hi: 0x00a9, Stride: 1},
		{Lo: 0x00ae, Hi: 0x00ae, Stride: 1},
		{Lo: 0x2000, Hi: 0x3300, Stride: 1},
	},
	LatinOffset: 2,
	R32: []unicode.Range32{
		{Lo: 0x1f000, Hi: 0x1fbff, Stride: 1},
	},
}

// StripEmoji removes characters in emojiRanges and trims the result.
func StripEmoji(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(emojiRanges, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Absolutize re-serializes a well-formed absolute URL in canonical form
// (lowercase scheme and host, "/" for an empty path). Anything else is
// returned unchanged; relative references are not resolved against a base.
func Absolutize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" && u.Opaque == "" {
		u.Path = "/"
	}
	return u.String()
}

// PlaceholderDomain is used for links that do not parse as absolute URLs.
const PlaceholderDomain = "example.com"

// Domain returns the link's hostname without a leading "www.", or
// PlaceholderDomain when the link has no parseable host.
func Domain(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Hostname() == "" {
		return PlaceholderDomain
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
