// Package parser detects the hierarchical structure of Mexican legal texts:
// títulos, capítulos and artículos. Documents without recognizable headings
// yield an empty arena and are chunked as flat text downstream.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

var (
	titlePattern   = regexp.MustCompile(`(?i)^t[íi]tulo\s+([a-záéíóúñ]+|[IVXLCDM]+|\d+)\b[.\-:]?\s*(.*)$`)
	chapterPattern = regexp.MustCompile(`(?i)^cap[íi]tulo\s+([a-záéíóúñ]+|[IVXLCDM]+|\d+)\b[.\-:]?\s*(.*)$`)
	articlePattern = regexp.MustCompile(`(?i)^art[íi]culo\s+(\d+[o°]?(?:\s*(?:bis|ter|qu[áa]ter|quinquies))?)\s*[.\-:]?\s*(.*)$`)
)

type LegalParser struct{}

func NewLegalParser() *LegalParser {
	return &LegalParser{}
}

// Parse scans the text line by line and builds a flat section arena. The
// hierarchy nests artículo under the nearest capítulo, capítulo under the
// nearest título. Body lines attach to the innermost open section.
func (p *LegalParser) Parse(text string) []domain.Section {
	lines := strings.Split(text, "\n")

	arena := make([]domain.Section, 0, 32)
	var bodies []strings.Builder
	// Index into the arena of the innermost open section per level; -1 when
	// no section of that level is open.
	titleIdx, chapterIdx, articleIdx := -1, -1, -1
	sawArticle := false

	open := func(secType domain.SectionType, number, heading string, level int, parentIdx int) int {
		idx := len(arena)
		section := domain.Section{
			ID:     fmt.Sprintf("sec-%d", idx),
			Type:   secType,
			Number: normalizeNumber(number),
			Title:  strings.TrimSpace(heading),
			Level:  level,
		}
		if parentIdx >= 0 {
			section.ParentID = arena[parentIdx].ID
			arena[parentIdx].ChildIDs = append(arena[parentIdx].ChildIDs, section.ID)
		}
		arena = append(arena, section)
		bodies = append(bodies, strings.Builder{})
		return idx
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			if idx := innermost(titleIdx, chapterIdx, articleIdx); idx >= 0 && bodies[idx].Len() > 0 {
				bodies[idx].WriteString("\n")
			}
			continue
		}

		if m := titlePattern.FindStringSubmatch(line); m != nil {
			titleIdx = open(domain.SectionTitle, m[1], m[2], 1, -1)
			chapterIdx, articleIdx = -1, -1
			continue
		}
		if m := chapterPattern.FindStringSubmatch(line); m != nil {
			chapterIdx = open(domain.SectionChapter, m[1], m[2], 2, titleIdx)
			articleIdx = -1
			continue
		}
		if m := articlePattern.FindStringSubmatch(line); m != nil {
			parentIdx := chapterIdx
			if parentIdx < 0 {
				parentIdx = titleIdx
			}
			articleIdx = open(domain.SectionArticle, m[1], "", 3, parentIdx)
			sawArticle = true
			if rest := strings.TrimSpace(m[2]); rest != "" {
				bodies[articleIdx].WriteString(rest)
			}
			continue
		}

		idx := innermost(titleIdx, chapterIdx, articleIdx)
		if idx < 0 {
			// Preamble before any heading is handled by flow chunking.
			continue
		}
		if bodies[idx].Len() > 0 && !strings.HasSuffix(bodies[idx].String(), "\n") {
			bodies[idx].WriteString(" ")
		}
		bodies[idx].WriteString(line)
	}

	// A document whose only headings are títulos/capítulos has no retrievable
	// units; treat it as unstructured.
	if !sawArticle {
		return nil
	}

	for i := range arena {
		arena[i].Content = strings.TrimSpace(bodies[i].String())
	}
	return arena
}

func innermost(titleIdx, chapterIdx, articleIdx int) int {
	if articleIdx >= 0 {
		return articleIdx
	}
	if chapterIdx >= 0 {
		return chapterIdx
	}
	return titleIdx
}

// normalizeNumber strips ordinal suffixes ("1o", "1°") and uppercases roman
// numerals so section numbers compare cleanly.
func normalizeNumber(number string) string {
	n := strings.TrimSpace(number)
	if trimmed := strings.TrimRight(n, "o°"); trimmed != n && allDigits(trimmed) {
		n = trimmed
	}
	if isRoman(n) {
		return strings.ToUpper(n)
	}
	return strings.Join(strings.Fields(strings.ToLower(n)), " ")
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isRoman(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range strings.ToUpper(s) {
		switch r {
		case 'I', 'V', 'X', 'L', 'C', 'D', 'M':
		default:
			return false
		}
	}
	return true
}
