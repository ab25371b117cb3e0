package repository

import (
	"context"
	"testing"

	"github.com/funstay/leadsync/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLead(leadDate, phone, cc string) *model.Lead {
	return &model.Lead{
		LeadDate:        leadDate,
		AdCopy:          "Summer Ad",
		AdSet:           "Adset 12",
		LeadType:        "Dubai Getaway",
		Sources:         "fb",
		Name:            "priya sharma",
		Email:           "priya@example.com",
		PhoneNumber:     phone,
		CountryCode:     cc,
		OriginCity:      "Mumbai",
		Destination:     "Dubai Getaway",
		PrimarySource:   "Meta",
		SecondarySource: "Facebook (Paid)",
		CustomerID:      1,
		CustomerStatus:  model.CustomerStatusNew,
		Description:     "Are you interested in this trip?:\nYes",
		LeadStatus:      "open",
	}
}

func TestLeadRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewLeadRepository(db)
	ctx := context.Background()

	t.Run("create persists all attributes", func(t *testing.T) {
		created, err := repo.Create(ctx, newTestLead("2025-03-05", "9876543210", "+91"))
		require.NoError(t, err)
		require.NotZero(t, created.ID)

		got, err := repo.FindByDedupKey(ctx, "2025-03-05", "9876543210", "+91")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Summer Ad", got.AdCopy)
		assert.Equal(t, "Meta", got.PrimarySource)
		assert.Equal(t, "Facebook (Paid)", got.SecondarySource)
		assert.Equal(t, model.CustomerStatusNew, got.CustomerStatus)
	})

	t.Run("missing dedup key", func(t *testing.T) {
		_, err := repo.FindByDedupKey(ctx, "2025-01-01", "000", "")
		assert.ErrorIs(t, err, ErrLeadNotFound)
	})
}

func TestLeadRepository_UpdateCustomerStatus(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewLeadRepository(db)
	ctx := context.Background()

	t.Run("updates only the status", func(t *testing.T) {
		created, err := repo.Create(ctx, newTestLead("2025-04-01", "5550001", "+1"))
		require.NoError(t, err)

		err = repo.UpdateCustomerStatus(ctx, created.ID, model.CustomerStatusExisting)
		require.NoError(t, err)

		got, err := repo.FindByDedupKey(ctx, "2025-04-01", "5550001", "+1")
		require.NoError(t, err)
		assert.Equal(t, model.CustomerStatusExisting, got.CustomerStatus)
		assert.Equal(t, "Summer Ad", got.AdCopy)
		assert.Equal(t, "priya sharma", got.Name)
	})

	t.Run("unknown lead id", func(t *testing.T) {
		err := repo.UpdateCustomerStatus(ctx, 987654, model.CustomerStatusExisting)
		assert.ErrorIs(t, err, ErrLeadNotFound)
	})
}

func TestLeadRepository_List(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewLeadRepository(db)
	ctx := context.Background()

	leads := []*model.Lead{
		newTestLead("2025-03-05", "111", "+91"),
		newTestLead("2025-03-06", "222", "+91"),
		newTestLead("2025-03-07", "333", "+1"),
	}
	for _, l := range leads {
		_, err := repo.Create(ctx, l)
		require.NoError(t, err)
	}

	t.Run("returns everything with total", func(t *testing.T) {
		got, total, err := repo.List(ctx, model.LeadFilter{Desc: true})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, got, 3)
	})

	t.Run("filters by phone", func(t *testing.T) {
		phone := "222"
		got, total, err := repo.List(ctx, model.LeadFilter{PhoneNumber: &phone})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, got, 1)
		assert.Equal(t, "2025-03-06", got[0].LeadDate)
	})

	t.Run("pagination caps the page size", func(t *testing.T) {
		got, total, err := repo.List(ctx, model.LeadFilter{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, got, 2)
	})
}
