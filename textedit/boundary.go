package textedit

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// isWordBoundary reports whether r separates words: whitespace or punctuation.
func isWordBoundary(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

// graphemeBoundaries returns the rune offsets at which grapheme clusters
// start, plus len(buf). Combining marks and emoji sequences stay glued to
// their base rune so the caret never lands inside one.
func graphemeBoundaries(buf []rune) []int {
	out := []int{0}
	if len(buf) == 0 {
		return out
	}
	g := uniseg.NewGraphemes(string(buf))
	pos := 0
	for g.Next() {
		pos += len(g.Runes())
		out = append(out, pos)
	}
	return out
}

// prevGrapheme returns the cluster boundary before offset.
func prevGrapheme(buf []rune, offset int) int {
	if offset <= 0 {
		return 0
	}
	prev := 0
	for _, b := range graphemeBoundaries(buf) {
		if b >= offset {
			break
		}
		prev = b
	}
	return prev
}

// nextGrapheme returns the cluster boundary after offset.
func nextGrapheme(buf []rune, offset int) int {
	if offset >= len(buf) {
		return len(buf)
	}
	for _, b := range graphemeBoundaries(buf) {
		if b > offset {
			return b
		}
	}
	return len(buf)
}
