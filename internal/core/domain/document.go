package domain

import "time"

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusFailed     DocumentStatus = "failed"
)

type DocumentType string

const (
	TypeConstitution  DocumentType = "constitucion"
	TypeCode          DocumentType = "codigo"
	TypeLaw           DocumentType = "ley"
	TypeRegulation    DocumentType = "reglamento"
	TypeNorm          DocumentType = "norma"
	TypeJurisprudence DocumentType = "jurisprudencia"
)

func (t DocumentType) Valid() bool {
	switch t {
	case TypeConstitution, TypeCode, TypeLaw, TypeRegulation, TypeNorm, TypeJurisprudence:
		return true
	}
	return false
}

// Hierarchy ranks legal authority: 1 is constitutional, larger values are
// lower-authority instruments down to 7 (administrative).
const (
	HierarchyConstitutional = 1
	HierarchyLowest         = 7
)

type SectionType string

const (
	SectionTitle     SectionType = "titulo"
	SectionChapter   SectionType = "capitulo"
	SectionArticle   SectionType = "articulo"
	SectionParagraph SectionType = "parrafo"
	SectionFraction  SectionType = "fraccion"
)

// Section is one node of a document's structure. The tree is stored as a
// flat arena: sections reference parents and children by id only.
type Section struct {
	ID       string      `json:"id"`
	Type     SectionType `json:"type"`
	Number   string      `json:"number,omitempty"`
	Title    string      `json:"title,omitempty"`
	Content  string      `json:"content"`
	Level    int         `json:"level"`
	ParentID string      `json:"parent_id,omitempty"`
	ChildIDs []string    `json:"child_ids,omitempty"`
}

// LegalDocument carries either a structured Section arena or flat FullText.
// The parser produces it once; nothing downstream mutates it.
type LegalDocument struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Type        DocumentType   `json:"type"`
	Hierarchy   int            `json:"hierarchy"`
	PrimaryArea string         `json:"primary_area,omitempty"`
	Sections    []Section      `json:"sections,omitempty"`
	FullText    string         `json:"full_text,omitempty"`
	Filename    string         `json:"filename,omitempty"`
	MimeType    string         `json:"mime_type,omitempty"`
	StoragePath string         `json:"storage_path,omitempty"`
	Status      DocumentStatus `json:"status"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// SectionByID resolves a weak section reference within the arena.
func (d *LegalDocument) SectionByID(id string) (Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

func (d *LegalDocument) HasStructure() bool {
	return len(d.Sections) > 0
}
