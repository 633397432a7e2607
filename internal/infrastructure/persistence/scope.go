package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyFilter adds pagination, ordering and equality filters to a query
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	filter.Normalize()

	for field, value := range filter.Filters {
		query = query.Where(fmt.Sprintf("%s = ?", field), value)
	}

	query = query.Order(fmt.Sprintf("%s %s", filter.OrderBy, filter.OrderDir))
	offset := (filter.Page - 1) * filter.PageSize
	return query.Offset(offset).Limit(filter.PageSize)
}

// applyFilterNoPaging adds only the equality filters, for Count queries
func applyFilterNoPaging(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for field, value := range filter.Filters {
		query = query.Where(fmt.Sprintf("%s = ?", field), value)
	}
	return query
}

// saveWithLock updates the aggregate row guarded by its version column.
// The version is bumped on success; a stale version yields a concurrency
// conflict instead of silently overwriting a parallel transition.
func saveWithLock(ctx context.Context, db *gorm.DB, agg shared.AggregateRoot, model interface{}) error {
	current := agg.GetVersion()
	agg.IncrementVersion()

	result := db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", agg.GetID(), current).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		agg.SetVersion(current)
		return result.Error
	}
	if result.RowsAffected == 0 {
		agg.SetVersion(current)
		return shared.NewConcurrencyConflict(fmt.Sprintf("%T", model))
	}
	return nil
}

// gormRepository provides the base Repository operations for one model
type gormRepository[T any] struct {
	db *gorm.DB
}

func (r *gormRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *gormRepository[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	var entities []T
	query := applyFilter(r.db.WithContext(ctx).Model(new(T)), filter)
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *gormRepository[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *gormRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *gormRepository[T]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterNoPaging(r.db.WithContext(ctx).Model(new(T)), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// gormCompanyRepository adds the company-scoped operations
type gormCompanyRepository[T any] struct {
	gormRepository[T]
}

func (r *gormCompanyRepository[T]) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *gormCompanyRepository[T]) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]T, error) {
	var entities []T
	query := applyFilter(
		r.db.WithContext(ctx).Model(new(T)).Where("company_id = ?", companyID),
		filter,
	)
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *gormCompanyRepository[T]) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterNoPaging(
		r.db.WithContext(ctx).Model(new(T)).Where("company_id = ?", companyID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *gormCompanyRepository[T]) deleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(new(T), "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
