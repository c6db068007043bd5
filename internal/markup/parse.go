package markup

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Segment is a run of text rendered with a single style. Link segments
// carry the dictionary key used for popup lookup and mouse hit-testing.
type Segment struct {
	Text      string
	Key       string // non-empty inside a link
	Underline bool
	Color     string // renderer color value; empty for the default style
}

// tagKind identifies one structural tag at the head of a string.
type tagKind int

const (
	tagNone tagKind = iota
	tagLinkOpen
	tagLinkClose
	tagUnderlineOpen
	tagUnderlineClose
	tagColorOpen
	tagColorClose
	tagSpanOpen
	tagSpanClose
)

// matchTag recognizes a structural tag at the start of s. attr carries the
// link key or color value for the open variants. Anything that is not a
// well-formed known tag is plain text, so a stray '<' never breaks a line.
func matchTag(s string) (kind tagKind, attr string, length int) {
	switch {
	case strings.HasPrefix(s, linkClose):
		return tagLinkClose, "", len(linkClose)
	case strings.HasPrefix(s, underlineOpen):
		return tagUnderlineOpen, "", len(underlineOpen)
	case strings.HasPrefix(s, underlineClose):
		return tagUnderlineClose, "", len(underlineClose)
	case strings.HasPrefix(s, colorClose):
		return tagColorClose, "", len(colorClose)
	case strings.HasPrefix(s, SpanOpen):
		return tagSpanOpen, "", len(SpanOpen)
	case strings.HasPrefix(s, SpanClose):
		return tagSpanClose, "", len(SpanClose)
	case strings.HasPrefix(s, linkOpenPrefix):
		if end := strings.IndexByte(s, '>'); end > len(linkOpenPrefix) {
			return tagLinkOpen, s[len(linkOpenPrefix):end], end + 1
		}
	case strings.HasPrefix(s, colorPrefix):
		if end := strings.IndexByte(s, '>'); end > len(colorPrefix) {
			return tagColorOpen, s[len(colorPrefix):end], end + 1
		}
	}
	return tagNone, "", 0
}

// Parse splits annotated markup into styled segments. It tolerates
// unclosed tags so a half-revealed typewriter line still renders; span
// markers, which should never reach rendering, are silently dropped.
func Parse(s string) []Segment {
	var segs []Segment
	var cur Segment
	flush := func() {
		if cur.Text != "" {
			segs = append(segs, cur)
		}
		cur.Text = ""
	}

	for s != "" {
		if s[0] == '<' {
			kind, attr, n := matchTag(s)
			if kind != tagNone {
				flush()
				switch kind {
				case tagLinkOpen:
					cur.Key = attr
				case tagLinkClose:
					cur.Key = ""
				case tagUnderlineOpen:
					cur.Underline = true
				case tagUnderlineClose:
					cur.Underline = false
				case tagColorOpen:
					cur.Color = attr
				case tagColorClose:
					cur.Color = ""
				}
				s = s[n:]
				continue
			}
		}
		cur.Text += s[:1]
		s = s[1:]
	}
	flush()
	return segs
}

// VisibleLen counts the user-visible grapheme clusters in annotated markup,
// ignoring all tags. This is the unit the typewriter reveals in.
func VisibleLen(s string) int {
	total := 0
	for s != "" {
		if s[0] == '<' {
			if kind, _, n := matchTag(s); kind != tagNone {
				s = s[n:]
				continue
			}
		}
		_, rest, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
		total++
		s = rest
	}
	return total
}

// RevealPrefix returns the markup prefix containing the first n visible
// grapheme clusters. Tags are always emitted whole, never split, so link
// and underline regions stay well-formed mid-reveal. When n covers the
// whole line the input is returned unchanged, byte-for-byte.
func RevealPrefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	var out strings.Builder
	shown := 0
	rest := s
	for rest != "" {
		if rest[0] == '<' {
			if kind, _, length := matchTag(rest); kind != tagNone {
				out.WriteString(rest[:length])
				rest = rest[length:]
				continue
			}
		}
		if shown == n {
			return out.String()
		}
		cluster, tail, _, _ := uniseg.FirstGraphemeClusterInString(rest, -1)
		out.WriteString(cluster)
		shown++
		rest = tail
	}
	return s
}
