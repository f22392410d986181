package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lexmx/legal-assistant/internal/core/domain"
	"github.com/lexmx/legal-assistant/internal/core/ports"
)

type IngestDocumentUseCase struct {
	repo    ports.DocumentRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue
}

func NewIngestDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
) *IngestDocumentUseCase {
	return &IngestDocumentUseCase{
		repo:    repo,
		storage: storage,
		queue:   queue,
	}
}

// Upload stores the raw document, records its metadata and publishes the
// ingestion event that triggers asynchronous processing.
func (uc *IngestDocumentUseCase) Upload(
	ctx context.Context,
	filename, mimeType string,
	meta ports.UploadMeta,
	body io.Reader,
) (*domain.LegalDocument, error) {
	if err := validateUploadMeta(meta); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	doc := &domain.LegalDocument{
		ID:          id,
		Title:       meta.Title,
		Type:        meta.Type,
		Hierarchy:   meta.Hierarchy,
		PrimaryArea: meta.LegalArea,
		Filename:    filename,
		MimeType:    mimeType,
		StoragePath: storageKey,
		Status:      domain.StatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document metadata: %w", err)
	}

	if err := uc.queue.PublishDocumentIngested(ctx, doc.ID); err != nil {
		return nil, fmt.Errorf("publish ingestion event: %w", err)
	}

	return doc, nil
}

func validateUploadMeta(meta ports.UploadMeta) error {
	if meta.Title == "" {
		return domain.WrapError(domain.ErrInvalidInput, "validate upload", errors.New("missing document title"))
	}
	if !meta.Type.Valid() {
		return domain.WrapError(domain.ErrInvalidInput, "validate upload", fmt.Errorf("unknown document type %q", meta.Type))
	}
	if meta.Hierarchy < domain.HierarchyConstitutional || meta.Hierarchy > domain.HierarchyLowest {
		return domain.WrapError(domain.ErrInvalidInput, "validate upload", fmt.Errorf("hierarchy %d out of range", meta.Hierarchy))
	}
	return nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
