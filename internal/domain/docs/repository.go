package docs

import (
	"context"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
)

// DocumentRepository defines persistence operations for document metadata
type DocumentRepository interface {
	shared.CompanyRepository[Document]
	FindByEntity(ctx context.Context, companyID uuid.UUID, entityType string, entityID uuid.UUID) ([]Document, error)
	FindByCategory(ctx context.Context, companyID uuid.UUID, category DocumentCategory, filter shared.Filter) (shared.Paginated[Document], error)
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error
}
