package docs

import (
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
)

// DocumentCategory classifies stored documents
type DocumentCategory string

const (
	CategoryGeneral  DocumentCategory = "GENERAL"
	CategoryContract DocumentCategory = "CONTRACT"
	CategoryInvoice  DocumentCategory = "INVOICE"
	CategoryLegal    DocumentCategory = "LEGAL"
)

// IsValid returns true if the category is known
func (c DocumentCategory) IsValid() bool {
	switch c {
	case CategoryGeneral, CategoryContract, CategoryInvoice, CategoryLegal:
		return true
	}
	return false
}

// RequiresRetention returns true for categories under a legal retention duty
func (c DocumentCategory) RequiresRetention() bool {
	return c == CategoryLegal || c == CategoryInvoice
}

// Document is immutable binary metadata. The binary itself lives in the
// external object store; the core only tracks the reference, checksum and
// retention rules. Legal-category documents carry a retention lock and
// cannot be deleted before it expires.
type Document struct {
	shared.CompanyAggregateRoot
	FileName       string
	ContentType    string
	SizeBytes      int64
	Checksum       string
	StorageKey     string // key in the external object store
	Category       DocumentCategory
	RetentionUntil *time.Time
	EntityType     string     // related aggregate type, e.g. "Invoice"
	EntityID       *uuid.UUID // related aggregate ID
	UploadedBy     uuid.UUID
}

// NewDocument registers document metadata. For categories under retention
// duty a retention date is mandatory.
func NewDocument(companyID uuid.UUID, fileName, contentType string, sizeBytes int64, checksum, storageKey string, category DocumentCategory, uploadedBy uuid.UUID) (*Document, error) {
	if fileName == "" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if sizeBytes <= 0 {
		return nil, shared.NewDomainError("INVALID_SIZE", "Document size must be positive")
	}
	if storageKey == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown document category")
	}

	doc := &Document{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		FileName:             fileName,
		ContentType:          contentType,
		SizeBytes:            sizeBytes,
		Checksum:             checksum,
		StorageKey:           storageKey,
		Category:             category,
		UploadedBy:           uploadedBy,
	}

	if category.RequiresRetention() {
		// 10 years, the German retention period for business records
		until := time.Now().AddDate(10, 0, 0)
		doc.RetentionUntil = &until
	}

	return doc, nil
}

// AttachTo links the document to a business record
func (d *Document) AttachTo(entityType string, entityID uuid.UUID) error {
	if entityType == "" || entityID == uuid.Nil {
		return shared.NewDomainError("INVALID_REFERENCE", "Entity reference cannot be empty")
	}
	d.EntityType = entityType
	d.EntityID = &entityID
	d.Touch()
	return nil
}

// CanDelete checks the retention lock
func (d *Document) CanDelete(now time.Time) error {
	if d.RetentionUntil != nil && now.Before(*d.RetentionUntil) {
		return shared.NewBusinessRuleViolation("document_retention",
			"Document is under retention and cannot be deleted yet",
			map[string]interface{}{
				"retention_until": d.RetentionUntil.Format(time.RFC3339),
				"category":        string(d.Category),
			})
	}
	return nil
}
