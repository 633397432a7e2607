package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCompanyProvider enumerates the companies present in the store, for
// the periodic workers that sweep every company in turn.
type GormCompanyProvider struct {
	db *gorm.DB
}

// NewGormCompanyProvider creates a new GormCompanyProvider
func NewGormCompanyProvider(db *gorm.DB) *GormCompanyProvider {
	return &GormCompanyProvider{db: db}
}

// ActiveCompanyIDs returns the distinct company IDs that have quotes,
// invoices or projects, deduplicated.
func (p *GormCompanyProvider) ActiveCompanyIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := p.db.WithContext(ctx).Raw(`
		SELECT company_id FROM quotes
		UNION
		SELECT company_id FROM invoices
		UNION
		SELECT company_id FROM projects
	`).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
