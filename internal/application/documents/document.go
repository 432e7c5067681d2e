// Package documents implements procurement document ingestion: raw bytes go
// to object storage, extracted text and metadata go to PostgreSQL, and the
// analysis service reads the text back when a stored document is analyzed.
package documents

import (
	"context"
	"time"

	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

// Document is a stored procurement document. Text carries the extracted
// plain-text content the analysis engine consumes; ObjectKey locates the raw
// upload in object storage.
type Document struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Type        risk.DocumentType `json:"type"`
	VendorID    string            `json:"vendor_id,omitempty"`
	ObjectKey   string            `json:"object_key"`
	Text        string            `json:"-"`
	ContentHash string            `json:"content_hash"`
	SizeBytes   int64             `json:"size_bytes"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Repository persists document metadata and extracted text.
type Repository interface {
	Save(ctx context.Context, doc *Document) error
	GetByID(ctx context.Context, id string) (*Document, error)
}

// ObjectStore holds raw document content.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
}
