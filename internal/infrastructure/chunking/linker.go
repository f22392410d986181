package chunking

import (
	"regexp"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

var citationPattern = regexp.MustCompile(`(?i)art(?:ículo|iculo|\.)\s*(\d+)`)

// LinkCrossReferences scans each chunk for article citations and adds a
// directed link to every other chunk of the SAME set whose metadata carries
// that article number. Links are directional and not guaranteed symmetric.
//
// The nested scan is quadratic in the chunk count; fine at single-document
// scale. Scope stays per-document: feeding a merged multi-document set here
// would fabricate cross-document links.
func LinkCrossReferences(chunks []domain.Chunk) {
	for i := range chunks {
		matches := citationPattern.FindAllStringSubmatch(chunks[i].Content, -1)
		if len(matches) == 0 {
			continue
		}

		seen := make(map[string]struct{}, len(chunks[i].RelatedChunks))
		for _, id := range chunks[i].RelatedChunks {
			seen[id] = struct{}{}
		}
		for _, match := range matches {
			number := match[1]
			for j := range chunks {
				if j == i || chunks[j].Metadata.Article != number {
					continue
				}
				if _, dup := seen[chunks[j].ID]; dup {
					continue
				}
				chunks[i].RelatedChunks = append(chunks[i].RelatedChunks, chunks[j].ID)
				seen[chunks[j].ID] = struct{}{}
			}
		}
	}
}
