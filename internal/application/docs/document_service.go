package docs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/application/validation"
	"github.com/handwerkos/backend/internal/domain/docs"
	"github.com/handwerkos/backend/internal/domain/shared"
)

// DocumentService handles document metadata operations. The binaries
// themselves live in the external object store; the service only manages
// the references and the retention rules on them.
type DocumentService struct {
	documents      docs.DocumentRepository
	eventPublisher shared.EventPublisher
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(documents docs.DocumentRepository) *DocumentService {
	return &DocumentService{documents: documents}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *DocumentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Register stores uploaded document metadata. Categories under retention
// duty get their retention lock stamped here.
func (s *DocumentService) Register(ctx context.Context, companyID uuid.UUID, req RegisterDocumentRequest) (*DocumentResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	doc, err := docs.NewDocument(companyID, req.FileName, req.ContentType, req.SizeBytes,
		req.Checksum, req.StorageKey, docs.DocumentCategory(req.Category), req.UploadedBy)
	if err != nil {
		return nil, err
	}

	if err := s.documents.Save(ctx, doc); err != nil {
		return nil, err
	}

	s.publish(ctx, docs.NewDocumentUploadedEvent(doc))

	response := ToDocumentResponse(doc)
	return &response, nil
}

// Get retrieves document metadata by ID
func (s *DocumentService) Get(ctx context.Context, companyID, documentID uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.documents.FindByIDForCompany(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}
	response := ToDocumentResponse(doc)
	return &response, nil
}

// List retrieves a page of the company's documents
func (s *DocumentService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]DocumentResponse, int64, error) {
	filter.Normalize()

	documents, err := s.documents.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.documents.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]DocumentResponse, len(documents))
	for i := range documents {
		responses[i] = ToDocumentResponse(&documents[i])
	}
	return responses, total, nil
}

// ListByEntity returns the documents attached to one business record
func (s *DocumentService) ListByEntity(ctx context.Context, companyID uuid.UUID, entityType string, entityID uuid.UUID) ([]DocumentResponse, error) {
	documents, err := s.documents.FindByEntity(ctx, companyID, entityType, entityID)
	if err != nil {
		return nil, err
	}

	responses := make([]DocumentResponse, len(documents))
	for i := range documents {
		responses[i] = ToDocumentResponse(&documents[i])
	}
	return responses, nil
}

// ListByCategory retrieves a page of documents in one category
func (s *DocumentService) ListByCategory(ctx context.Context, companyID uuid.UUID, category string, filter shared.Filter) ([]DocumentResponse, int64, error) {
	filter.Normalize()

	cat := docs.DocumentCategory(category)
	if !cat.IsValid() {
		return nil, 0, shared.NewDomainError("INVALID_CATEGORY", "Unknown document category")
	}

	page, err := s.documents.FindByCategory(ctx, companyID, cat, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]DocumentResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToDocumentResponse(&page.Items[i])
	}
	return responses, page.Total, nil
}

// AttachTo links a document to a business record
func (s *DocumentService) AttachTo(ctx context.Context, companyID, documentID uuid.UUID, req AttachDocumentRequest) (*DocumentResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	doc, err := s.documents.FindByIDForCompany(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}

	if err := doc.AttachTo(req.EntityType, req.EntityID); err != nil {
		return nil, err
	}

	if err := s.documents.Save(ctx, doc); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(doc)
	return &response, nil
}

// Delete removes document metadata after the retention check passed
func (s *DocumentService) Delete(ctx context.Context, companyID, documentID, deletedBy uuid.UUID) error {
	doc, err := s.documents.FindByIDForCompany(ctx, companyID, documentID)
	if err != nil {
		return err
	}

	if err := doc.CanDelete(time.Now()); err != nil {
		return err
	}

	if err := s.documents.DeleteForCompany(ctx, companyID, documentID); err != nil {
		return err
	}

	s.publish(ctx, docs.NewDocumentDeletedEvent(doc, deletedBy))

	return nil
}

func (s *DocumentService) publish(ctx context.Context, event shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, event)
}
