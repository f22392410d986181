package parser

import (
	"strings"
	"testing"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

const sampleLaw = `TÍTULO PRIMERO Disposiciones Generales

CAPÍTULO I Del Objeto

Artículo 1. La presente ley es de orden público.
Sus disposiciones son de observancia general.

Artículo 2o. Para los efectos de esta ley se entiende por autoridad
la que dicta el acto reclamado.

CAPÍTULO II De las Partes

Artículo 3 Bis. Son partes el quejoso y la autoridad responsable.
`

func TestParseBuildsArena(t *testing.T) {
	sections := NewLegalParser().Parse(sampleLaw)
	if len(sections) != 6 {
		t.Fatalf("expected 6 sections, got %d", len(sections))
	}

	byType := map[domain.SectionType]int{}
	for _, s := range sections {
		byType[s.Type]++
	}
	if byType[domain.SectionTitle] != 1 || byType[domain.SectionChapter] != 2 || byType[domain.SectionArticle] != 3 {
		t.Fatalf("unexpected section mix: %+v", byType)
	}
}

func TestParseArticleNumbersNormalized(t *testing.T) {
	sections := NewLegalParser().Parse(sampleLaw)

	var numbers []string
	for _, s := range sections {
		if s.Type == domain.SectionArticle {
			numbers = append(numbers, s.Number)
		}
	}
	want := []string{"1", "2", "3 bis"}
	if len(numbers) != len(want) {
		t.Fatalf("expected %d articles, got %v", len(want), numbers)
	}
	for i, n := range numbers {
		if n != want[i] {
			t.Fatalf("article %d: expected number %q, got %q", i, want[i], n)
		}
	}
}

func TestParseNestsArticlesUnderChapters(t *testing.T) {
	sections := NewLegalParser().Parse(sampleLaw)

	doc := &domain.LegalDocument{Sections: sections}
	for _, s := range sections {
		if s.Type != domain.SectionArticle {
			continue
		}
		parent, ok := doc.SectionByID(s.ParentID)
		if !ok {
			t.Fatalf("article %s has dangling parent %q", s.Number, s.ParentID)
		}
		if parent.Type != domain.SectionChapter {
			t.Fatalf("article %s nested under %s, expected chapter", s.Number, parent.Type)
		}
		found := false
		for _, childID := range parent.ChildIDs {
			if childID == s.ID {
				found = true
			}
		}
		if !found {
			t.Fatalf("parent %s does not list child %s", parent.ID, s.ID)
		}
	}
}

func TestParseJoinsContinuationLines(t *testing.T) {
	sections := NewLegalParser().Parse(sampleLaw)

	var first domain.Section
	for _, s := range sections {
		if s.Type == domain.SectionArticle && s.Number == "1" {
			first = s
		}
	}
	if !strings.Contains(first.Content, "orden público. Sus disposiciones") {
		t.Fatalf("continuation line not joined: %q", first.Content)
	}
}

func TestParseRomanChapterNumbers(t *testing.T) {
	sections := NewLegalParser().Parse(sampleLaw)
	for _, s := range sections {
		if s.Type == domain.SectionChapter && s.Number != "I" && s.Number != "II" {
			t.Fatalf("unexpected chapter number %q", s.Number)
		}
	}
}

func TestParseUnstructuredTextReturnsNil(t *testing.T) {
	text := "Este convenio se celebra entre las partes.\n\nAmbas aceptan las condiciones."
	if sections := NewLegalParser().Parse(text); sections != nil {
		t.Fatalf("expected nil arena for unstructured text, got %d sections", len(sections))
	}
}

func TestParseHeadingsWithoutArticlesReturnsNil(t *testing.T) {
	text := "TÍTULO PRIMERO\n\nCAPÍTULO I\n\nTexto sin artículos."
	if sections := NewLegalParser().Parse(text); sections != nil {
		t.Fatalf("expected nil arena without articles, got %d sections", len(sections))
	}
}
