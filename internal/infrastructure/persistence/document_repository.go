package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/docs"
	"github.com/handwerkos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDocumentRepository implements docs.DocumentRepository using GORM
type GormDocumentRepository struct {
	gormCompanyRepository[docs.Document]
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{gormCompanyRepository[docs.Document]{gormRepository[docs.Document]{db: db}}}
}

// FindByEntity returns the documents attached to a business record
func (r *GormDocumentRepository) FindByEntity(ctx context.Context, companyID uuid.UUID, entityType string, entityID uuid.UUID) ([]docs.Document, error) {
	var documents []docs.Document
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND entity_type = ? AND entity_id = ?", companyID, entityType, entityID).
		Order("created_at DESC").
		Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

// FindByCategory returns a page of documents in one category
func (r *GormDocumentRepository) FindByCategory(ctx context.Context, companyID uuid.UUID, category docs.DocumentCategory, filter shared.Filter) (shared.Paginated[docs.Document], error) {
	filter.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&docs.Document{}).
		Where("company_id = ? AND category = ?", companyID, category).
		Count(&total).Error; err != nil {
		return shared.Paginated[docs.Document]{}, err
	}

	var documents []docs.Document
	query := applyFilter(
		r.db.WithContext(ctx).Model(&docs.Document{}).
			Where("company_id = ? AND category = ?", companyID, category),
		filter,
	)
	if err := query.Find(&documents).Error; err != nil {
		return shared.Paginated[docs.Document]{}, err
	}

	return shared.NewPaginated(documents, total, filter.Page, filter.PageSize), nil
}

// DeleteForCompany removes a document's metadata within the company scope.
// The retention guard runs in the service layer before this is called.
func (r *GormDocumentRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	return r.deleteForCompany(ctx, companyID, id)
}

var _ docs.DocumentRepository = (*GormDocumentRepository)(nil)
