package docs

import (
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/docs"
)

// RegisterDocumentRequest registers uploaded document metadata
type RegisterDocumentRequest struct {
	FileName    string    `json:"file_name" validate:"required,min=1,max=255"`
	ContentType string    `json:"content_type" validate:"max=100"`
	SizeBytes   int64     `json:"size_bytes" validate:"required,gt=0"`
	Checksum    string    `json:"checksum" validate:"max=128"`
	StorageKey  string    `json:"storage_key" validate:"required,min=1,max=500"`
	Category    string    `json:"category" validate:"required,oneof=GENERAL CONTRACT INVOICE LEGAL"`
	UploadedBy  uuid.UUID `json:"uploaded_by" validate:"required"`
}

// AttachDocumentRequest links a document to a business record
type AttachDocumentRequest struct {
	EntityType string    `json:"entity_type" validate:"required,min=1,max=50"`
	EntityID   uuid.UUID `json:"entity_id" validate:"required"`
}

// DocumentResponse is the API shape of document metadata
type DocumentResponse struct {
	ID             uuid.UUID  `json:"id"`
	FileName       string     `json:"file_name"`
	ContentType    string     `json:"content_type"`
	SizeBytes      int64      `json:"size_bytes"`
	Checksum       string     `json:"checksum"`
	StorageKey     string     `json:"storage_key"`
	Category       string     `json:"category"`
	RetentionUntil *time.Time `json:"retention_until,omitempty"`
	EntityType     string     `json:"entity_type,omitempty"`
	EntityID       *uuid.UUID `json:"entity_id,omitempty"`
	UploadedBy     uuid.UUID  `json:"uploaded_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ToDocumentResponse maps document metadata to its API shape
func ToDocumentResponse(doc *docs.Document) DocumentResponse {
	return DocumentResponse{
		ID:             doc.ID,
		FileName:       doc.FileName,
		ContentType:    doc.ContentType,
		SizeBytes:      doc.SizeBytes,
		Checksum:       doc.Checksum,
		StorageKey:     doc.StorageKey,
		Category:       string(doc.Category),
		RetentionUntil: doc.RetentionUntil,
		EntityType:     doc.EntityType,
		EntityID:       doc.EntityID,
		UploadedBy:     doc.UploadedBy,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}
