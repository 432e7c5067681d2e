package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/procurelens/ProcureLens/internal/application/documents"
	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
	"github.com/procurelens/ProcureLens/pkg/errors"
	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

// querier is the subset of pgxpool.Pool the repository needs; tests supply a
// fake implementation.
type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// DocumentRepository persists document metadata and extracted text in
// PostgreSQL. It implements documents.Repository.
type DocumentRepository struct {
	db     querier
	logger logging.Logger
}

// NewDocumentRepository builds a repository on the given pool.
func NewDocumentRepository(pool *pgxpool.Pool, log logging.Logger) *DocumentRepository {
	return newDocumentRepository(pool, log)
}

func newDocumentRepository(db querier, log logging.Logger) *DocumentRepository {
	return &DocumentRepository{db: db, logger: log}
}

const insertDocumentSQL = `
INSERT INTO documents (id, name, doc_type, vendor_id, object_key, content_text, content_hash, size_bytes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const selectDocumentSQL = `
SELECT id, name, doc_type, vendor_id, object_key, content_text, content_hash, size_bytes, created_at
FROM documents
WHERE id = $1`

// Save inserts a new document row.
func (r *DocumentRepository) Save(ctx context.Context, doc *documents.Document) error {
	_, err := r.db.Exec(ctx, insertDocumentSQL,
		doc.ID, doc.Name, string(doc.Type), doc.VendorID, doc.ObjectKey,
		doc.Text, doc.ContentHash, doc.SizeBytes, doc.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDocumentStoreFailed, "insert document").WithDetail(doc.ID)
	}
	r.logger.Debug("document saved",
		logging.String("document_id", doc.ID),
		logging.Int("size_bytes", int(doc.SizeBytes)),
	)
	return nil
}

// GetByID loads a document by its identifier.
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*documents.Document, error) {
	var doc documents.Document
	var docType string
	err := r.db.QueryRow(ctx, selectDocumentSQL, id).Scan(
		&doc.ID, &doc.Name, &docType, &doc.VendorID, &doc.ObjectKey,
		&doc.Text, &doc.ContentHash, &doc.SizeBytes, &doc.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, errors.New(errors.ErrCodeDocumentNotFound, "document not found").WithDetail(id)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "load document").WithDetail(id)
	}
	doc.Type = risk.DocumentType(docType)
	return &doc, nil
}
