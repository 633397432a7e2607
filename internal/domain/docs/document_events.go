package docs

import (
	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
)

const (
	EventTypeDocumentUploaded = "DocumentUploaded"
	EventTypeDocumentDeleted  = "DocumentDeleted"
)

// DocumentUploadedEvent is emitted when document metadata is registered
type DocumentUploadedEvent struct {
	shared.BaseDomainEvent
	FileName   string           `json:"file_name"`
	Category   DocumentCategory `json:"category"`
	SizeBytes  int64            `json:"size_bytes"`
	UploadedBy uuid.UUID        `json:"uploaded_by"`
}

func NewDocumentUploadedEvent(doc *Document) *DocumentUploadedEvent {
	return &DocumentUploadedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentUploaded, "Document", doc.ID, doc.CompanyID),
		FileName:        doc.FileName,
		Category:        doc.Category,
		SizeBytes:       doc.SizeBytes,
		UploadedBy:      doc.UploadedBy,
	}
}

// DocumentDeletedEvent is emitted after a document passed its retention
// check and was removed
type DocumentDeletedEvent struct {
	shared.BaseDomainEvent
	FileName   string           `json:"file_name"`
	Category   DocumentCategory `json:"category"`
	StorageKey string           `json:"storage_key"`
	DeletedBy  uuid.UUID        `json:"deleted_by"`
}

func NewDocumentDeletedEvent(doc *Document, deletedBy uuid.UUID) *DocumentDeletedEvent {
	return &DocumentDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentDeleted, "Document", doc.ID, doc.CompanyID),
		FileName:        doc.FileName,
		Category:        doc.Category,
		StorageKey:      doc.StorageKey,
		DeletedBy:       deletedBy,
	}
}
