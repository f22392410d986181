package chunking

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Segmenter splits raw text into sentence units no longer than 80% of the
// configured chunk size, so downstream packing never receives an indivisible
// oversized unit.
type Segmenter struct {
	maxChunkSize int
}

func NewSegmenter(maxChunkSize int) *Segmenter {
	if maxChunkSize <= 0 {
		maxChunkSize = 512
	}
	return &Segmenter{maxChunkSize: maxChunkSize}
}

// Longer abbreviations first so "Arts." is not half-masked by "Art.".
var legalAbbreviations = []string{
	"Arts.", "arts.", "Art.", "art.",
	"Fracc.", "fracc.", "Frac.", "frac.",
	"Incs.", "incs.", "Inc.", "inc.",
	"Núm.", "núm.", "No.",
	"Párr.", "párr.",
	"Cap.", "cap.", "Tít.", "tít.", "Sec.", "sec.",
	"Exp.", "exp.", "Lic.", "Dr.", "Dra.",
}

// maskedDot temporarily replaces abbreviation periods; legal text never
// contains NUL, so unmasking is unambiguous.
const maskedDot = "\x00"

var sentenceBoundary = regexp.MustCompile(`[.!?]\s+[\p{Lu}¿¡]`)

// Segment returns a non-empty ordered sequence of sentence strings for any
// non-blank input; when no boundary is found the whole input is one unit.
func (s *Segmenter) Segment(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	masked := maskAbbreviations(trimmed)
	var units []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(masked, -1) {
		// The match spans "terminator, whitespace, capital"; the capital
		// opens the next sentence.
		end := loc[0] + 1
		if unit := strings.TrimSpace(masked[start:end]); unit != "" {
			units = append(units, unit)
		}
		_, capLen := utf8.DecodeLastRuneInString(masked[loc[0]:loc[1]])
		start = loc[1] - capLen
	}
	if tail := strings.TrimSpace(masked[start:]); tail != "" {
		units = append(units, tail)
	}
	if len(units) == 0 {
		units = []string{masked}
	}

	limit := s.maxChunkSize * 8 / 10
	out := make([]string, 0, len(units))
	for _, unit := range units {
		out = append(out, splitOversized(unmaskAbbreviations(unit), limit)...)
	}
	return out
}

func maskAbbreviations(text string) string {
	for _, abbr := range legalAbbreviations {
		if !strings.Contains(text, abbr) {
			continue
		}
		text = strings.ReplaceAll(text, abbr, strings.TrimSuffix(abbr, ".")+maskedDot)
	}
	return text
}

func unmaskAbbreviations(text string) string {
	return strings.ReplaceAll(text, maskedDot, ".")
}

// splitOversized re-splits a unit longer than limit at word boundaries, and
// a single word longer than limit at the rune level.
func splitOversized(unit string, limit int) []string {
	if limit <= 0 || utf8.RuneCountInString(unit) <= limit {
		return []string{unit}
	}

	var parts []string
	var b strings.Builder
	length := 0
	flush := func() {
		if b.Len() > 0 {
			parts = append(parts, b.String())
			b.Reset()
			length = 0
		}
	}

	for _, word := range strings.Fields(unit) {
		wordLen := utf8.RuneCountInString(word)
		if wordLen > limit {
			flush()
			parts = append(parts, splitWordRunes(word, limit)...)
			continue
		}
		if length > 0 && length+1+wordLen > limit {
			flush()
		}
		if length > 0 {
			b.WriteByte(' ')
			length++
		}
		b.WriteString(word)
		length += wordLen
	}
	flush()

	if len(parts) == 0 {
		return []string{unit}
	}
	return parts
}

func splitWordRunes(word string, limit int) []string {
	runes := []rune(word)
	parts := make([]string, 0, len(runes)/limit+1)
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		parts = append(parts, string(runes[start:end]))
	}
	return parts
}
