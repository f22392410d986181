package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

func newRepoWithMock(t *testing.T) (*DocumentRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &DocumentRepository{db: db}, mock, func() { _ = db.Close() }
}

func documentColumns() []string {
	return []string{
		"id", "title", "doc_type", "hierarchy", "legal_area", "filename",
		"mime_type", "storage_path", "status", "error_message", "created_at", "updated_at",
	}
}

func TestCreateInsertsLegalMetadata(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	doc := &domain.LegalDocument{
		ID:          "doc-1",
		Title:       "Ley Federal del Trabajo",
		Type:        domain.TypeLaw,
		Hierarchy:   3,
		PrimaryArea: "laboral",
		Filename:    "lft.pdf",
		MimeType:    "application/pdf",
		StoragePath: "doc-1_lft.pdf",
		Status:      domain.StatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mock.ExpectExec("INSERT INTO legal_documents").
		WithArgs("doc-1", "Ley Federal del Trabajo", "ley", 3, "laboral", "lft.pdf",
			"application/pdf", "doc-1_lft.pdf", "uploaded", "", now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetByIDScansDocument(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, title, doc_type, hierarchy").
		WithArgs("doc-1").
		WillReturnRows(sqlmock.NewRows(documentColumns()).AddRow(
			"doc-1", "Constitución Política", "constitucion", 1, "constitucional",
			"cpeum.pdf", "application/pdf", "doc-1_cpeum.pdf", "ready", "", now, now,
		))

	doc, err := repo.GetByID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if doc.Type != domain.TypeConstitution || doc.Hierarchy != 1 || doc.Status != domain.StatusReady {
		t.Fatalf("unexpected document %+v", doc)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetByIDReturnsDomainNotFound(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, title, doc_type, hierarchy").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdateStatusReturnsDomainNotFoundWhenNoRowsAffected(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE legal_documents").
		WithArgs("missing", string(domain.StatusProcessing), "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", domain.StatusProcessing, "")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListByStatusScansRows(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, title, doc_type, hierarchy").
		WithArgs("failed", 50).
		WillReturnRows(sqlmock.NewRows(documentColumns()).AddRow(
			"doc-2", "Reglamento X", "reglamento", 4, "administrativo",
			"reg.pdf", "application/pdf", "doc-2_reg.pdf", "failed", "extract text: boom", now, now,
		))

	docs, err := repo.ListByStatus(context.Background(), domain.StatusFailed, 0)
	if err != nil {
		t.Fatalf("ListByStatus() error = %v", err)
	}
	if len(docs) != 1 || docs[0].Error != "extract text: boom" {
		t.Fatalf("unexpected rows %+v", docs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
