package documents

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
	"github.com/procurelens/ProcureLens/pkg/errors"
	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

// MaxDocumentSize bounds an upload. Procurement documents are text; anything
// larger than this is not a contract.
const MaxDocumentSize = 10 << 20

const defaultContentType = "text/plain; charset=utf-8"

// IngestInput describes one document upload.
type IngestInput struct {
	Name        string
	Type        risk.DocumentType
	VendorID    string
	Content     []byte
	ContentType string
}

// Service implements document ingestion and retrieval.
type Service struct {
	repo   Repository
	store  ObjectStore
	logger logging.Logger
	now    func() time.Time
	newID  func() string
}

// NewService builds a document service on the given repository and object
// store.
func NewService(repo Repository, store ObjectStore, log logging.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  store,
		logger: log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Ingest validates and stores one uploaded document: raw bytes to object
// storage, metadata and extracted text to the repository.
func (s *Service) Ingest(ctx context.Context, in IngestInput) (*Document, error) {
	if len(strings.TrimSpace(string(in.Content))) == 0 {
		return nil, errors.New(errors.ErrCodeDocumentEmpty, "document content is empty")
	}
	if len(in.Content) > MaxDocumentSize {
		return nil, errors.Newf(errors.ErrCodeDocumentTooLarge,
			"document exceeds %d bytes", MaxDocumentSize)
	}
	if !in.Type.Valid() {
		return nil, errors.Newf(errors.ErrCodeDocumentTypeInvalid,
			"unsupported document type %q", in.Type)
	}

	id := s.newID()
	sum := sha256.Sum256(in.Content)
	doc := &Document{
		ID:          id,
		Name:        in.Name,
		Type:        in.Type,
		VendorID:    in.VendorID,
		ObjectKey:   "documents/" + id,
		Text:        string(in.Content),
		ContentHash: hex.EncodeToString(sum[:]),
		SizeBytes:   int64(len(in.Content)),
		CreatedAt:   s.now(),
	}
	if doc.Name == "" {
		doc.Name = "untitled"
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}
	if err := s.store.Put(ctx, doc.ObjectKey, in.Content, contentType); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document ingested",
		logging.String("document_id", doc.ID),
		logging.String("doc_type", string(doc.Type)),
		logging.Any("size_bytes", doc.SizeBytes),
	)
	return doc, nil
}

// Get returns a stored document with its extracted text.
func (s *Service) Get(ctx context.Context, id string) (*Document, error) {
	return s.repo.GetByID(ctx, id)
}
