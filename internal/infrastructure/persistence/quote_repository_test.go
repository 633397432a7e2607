package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/sales"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSalesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&sales.Quote{}, &sales.QuoteItem{})
	require.NoError(t, err)

	return db
}

func createTestQuote(t *testing.T, companyID uuid.UUID) *sales.Quote {
	t.Helper()

	quote, err := sales.NewQuote(companyID, "A-2026-0001", uuid.New(), "Meier GmbH", "Badsanierung")
	require.NoError(t, err)

	_, err = quote.AddItem("Fliesen verlegen", decimal.NewFromInt(20), valueobject.NewMoneyEURFromFloat(45))
	require.NoError(t, err)
	_, err = quote.AddItem("Material", decimal.NewFromInt(1), valueobject.NewMoneyEURFromFloat(350))
	require.NoError(t, err)

	return quote
}

func TestGormQuoteRepository_SaveAndFind(t *testing.T) {
	db := setupSalesTestDB(t)
	repo := NewGormQuoteRepository(db)
	ctx := context.Background()

	t.Run("round-trips a quote with its items", func(t *testing.T) {
		companyID := uuid.New()
		quote := createTestQuote(t, companyID)

		err := repo.Save(ctx, quote)
		require.NoError(t, err)

		found, err := repo.FindByIDForCompany(ctx, companyID, quote.ID)
		require.NoError(t, err)
		assert.Equal(t, quote.ID, found.ID)
		assert.Equal(t, "A-2026-0001", found.QuoteNumber)
		assert.Equal(t, sales.QuoteStatusDraft, found.Status)
		require.Len(t, found.Items, 2)
		assert.Equal(t, 1, found.Items[0].Position)
		assert.Equal(t, 2, found.Items[1].Position)
		assert.True(t, found.TotalNet.Equal(decimal.NewFromInt(1250)),
			"expected 1250, got %s", found.TotalNet)
		assert.True(t, found.TotalGross.Equal(decimal.NewFromFloat(1487.5)),
			"expected 1487.50, got %s", found.TotalGross)
	})

	t.Run("does not leak quotes across companies", func(t *testing.T) {
		companyID := uuid.New()
		quote := createTestQuote(t, companyID)
		require.NoError(t, repo.Save(ctx, quote))

		found, err := repo.FindByIDForCompany(ctx, uuid.New(), quote.ID)
		assert.Nil(t, found)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("returns not found for missing quote", func(t *testing.T) {
		found, err := repo.FindByIDForCompany(ctx, uuid.New(), uuid.New())
		assert.Nil(t, found)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormQuoteRepository_FindByQuoteNumber(t *testing.T) {
	db := setupSalesTestDB(t)
	repo := NewGormQuoteRepository(db)
	ctx := context.Background()

	companyID := uuid.New()
	quote := createTestQuote(t, companyID)
	require.NoError(t, repo.Save(ctx, quote))

	found, err := repo.FindByQuoteNumber(ctx, companyID, "A-2026-0001")
	require.NoError(t, err)
	assert.Equal(t, quote.ID, found.ID)

	_, err = repo.FindByQuoteNumber(ctx, companyID, "A-2026-9999")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormQuoteRepository_GenerateQuoteNumber(t *testing.T) {
	db := setupSalesTestDB(t)
	repo := NewGormQuoteRepository(db)
	ctx := context.Background()

	companyID := uuid.New()
	year := time.Now().Year()

	number, err := repo.GenerateQuoteNumber(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("A-%d-0001", year), number)

	quote, err := sales.NewQuote(companyID, number, uuid.New(), "Meier GmbH", "Badsanierung")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, quote))

	number, err = repo.GenerateQuoteNumber(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("A-%d-0002", year), number)

	// the sequence is per company
	number, err = repo.GenerateQuoteNumber(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("A-%d-0001", year), number)
}

func TestGormQuoteRepository_SaveWithLock(t *testing.T) {
	db := setupSalesTestDB(t)
	repo := NewGormQuoteRepository(db)
	ctx := context.Background()

	t.Run("bumps the version on success", func(t *testing.T) {
		companyID := uuid.New()
		quote := createTestQuote(t, companyID)
		require.NoError(t, repo.Save(ctx, quote))

		require.NoError(t, quote.Send())
		err := repo.SaveWithLock(ctx, quote)
		require.NoError(t, err)
		assert.Equal(t, 2, quote.GetVersion())

		found, err := repo.FindByIDForCompany(ctx, companyID, quote.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, found.GetVersion())
		assert.Equal(t, sales.QuoteStatusSent, found.Status)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		companyID := uuid.New()
		quote := createTestQuote(t, companyID)
		require.NoError(t, repo.Save(ctx, quote))

		stale, err := repo.FindByIDForCompany(ctx, companyID, quote.ID)
		require.NoError(t, err)

		require.NoError(t, quote.Send())
		require.NoError(t, repo.SaveWithLock(ctx, quote))

		require.NoError(t, stale.Send())
		err = repo.SaveWithLock(ctx, stale)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeConcurrencyConflict))
		// the in-memory version is rolled back so the caller can reload and retry
		assert.Equal(t, 1, stale.GetVersion())
	})
}

func TestGormQuoteRepository_FindExpirable(t *testing.T) {
	db := setupSalesTestDB(t)
	repo := NewGormQuoteRepository(db)
	ctx := context.Background()

	companyID := uuid.New()
	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	expired := createTestQuote(t, companyID)
	expired.Status = sales.QuoteStatusSent
	expired.ValidUntil = &past
	require.NoError(t, repo.Save(ctx, expired))

	stillValid := createTestQuote(t, companyID)
	stillValid.QuoteNumber = "A-2026-0002"
	stillValid.Status = sales.QuoteStatusSent
	stillValid.ValidUntil = &future
	require.NoError(t, repo.Save(ctx, stillValid))

	draft := createTestQuote(t, companyID)
	draft.QuoteNumber = "A-2026-0003"
	draft.ValidUntil = &past
	require.NoError(t, repo.Save(ctx, draft))

	expirable, err := repo.FindExpirable(ctx, companyID)
	require.NoError(t, err)
	require.Len(t, expirable, 1)
	assert.Equal(t, expired.ID, expirable[0].ID)
}

func TestGormQuoteRepository_CountByStatus(t *testing.T) {
	db := setupSalesTestDB(t)
	repo := NewGormQuoteRepository(db)
	ctx := context.Background()

	companyID := uuid.New()
	for i := 0; i < 3; i++ {
		quote := createTestQuote(t, companyID)
		quote.QuoteNumber = fmt.Sprintf("A-2026-%04d", i+1)
		require.NoError(t, repo.Save(ctx, quote))
	}

	count, err := repo.CountByStatus(ctx, companyID, sales.QuoteStatusDraft)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.CountByStatus(ctx, companyID, sales.QuoteStatusSent)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
