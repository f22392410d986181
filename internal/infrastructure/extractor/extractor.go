// Package extractor turns stored source documents into plain text. The
// format is chosen by MIME type first, file extension as fallback; anything
// unrecognized is treated as UTF-8 plain text.
package extractor

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/lexmx/legal-assistant/internal/core/domain"
	"github.com/lexmx/legal-assistant/internal/core/ports"
)

type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

func (e *Extractor) Extract(ctx context.Context, doc *domain.LegalDocument) (string, error) {
	reader, err := e.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return "", fmt.Errorf("open source document: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read source document: %w", err)
	}

	switch format(doc) {
	case formatPDF:
		return extractPDF(raw)
	case formatHTML:
		return extractHTML(raw)
	case formatXLSX:
		return extractXLSX(raw)
	default:
		return extractPlaintext(raw, doc.Filename)
	}
}

type sourceFormat int

const (
	formatPlaintext sourceFormat = iota
	formatPDF
	formatHTML
	formatXLSX
)

func format(doc *domain.LegalDocument) sourceFormat {
	switch strings.ToLower(doc.MimeType) {
	case "application/pdf":
		return formatPDF
	case "text/html", "application/xhtml+xml":
		return formatHTML
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return formatXLSX
	}
	switch strings.ToLower(filepath.Ext(doc.Filename)) {
	case ".pdf":
		return formatPDF
	case ".html", ".htm":
		return formatHTML
	case ".xlsx":
		return formatXLSX
	}
	return formatPlaintext
}
