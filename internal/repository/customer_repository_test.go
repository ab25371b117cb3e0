package repository

import (
	"context"
	"testing"

	"github.com/funstay/leadsync/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_GetOrCreate(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("creates on first encounter", func(t *testing.T) {
		created, err := repo.GetOrCreate(ctx, &model.Customer{
			Name:        "Priya Sharma",
			Email:       "priya@example.com",
			PhoneNumber: "9876543210",
			CountryCode: "+91",
			Status:      model.CustomerStatusNew,
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, model.CustomerStatusNew, created.Status)
	})

	t.Run("returns existing row on second encounter", func(t *testing.T) {
		first, err := repo.GetOrCreate(ctx, &model.Customer{
			Name:        "Arun",
			PhoneNumber: "5551234",
			CountryCode: "+1",
			Status:      model.CustomerStatusNew,
		})
		require.NoError(t, err)

		second, err := repo.GetOrCreate(ctx, &model.Customer{
			Name:        "Arun Again",
			PhoneNumber: "5551234",
			CountryCode: "+1",
			Status:      model.CustomerStatusNew,
		})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		// First write wins: the stored name is untouched.
		assert.Equal(t, "Arun", second.Name)

		var count int64
		err = db.Read(ctx).Model(&CustomerEntity{}).
			Where("phone_number = ? AND country_code = ?", "5551234", "+1").
			Count(&count).Error
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("reports stored status, never resets it", func(t *testing.T) {
		created, err := repo.GetOrCreate(ctx, &model.Customer{
			PhoneNumber: "7770001",
			CountryCode: "+44",
			Status:      model.CustomerStatusNew,
		})
		require.NoError(t, err)

		// An external process promotes the customer.
		err = db.Write(ctx).Model(&CustomerEntity{}).
			Where("id = ?", created.ID).
			Update("customer_status", string(model.CustomerStatusExisting)).Error
		require.NoError(t, err)

		again, err := repo.GetOrCreate(ctx, &model.Customer{
			PhoneNumber: "7770001",
			CountryCode: "+44",
			Status:      model.CustomerStatusNew,
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, again.ID)
		assert.Equal(t, model.CustomerStatusExisting, again.Status)
	})

	t.Run("empty country code is a distinct identity", func(t *testing.T) {
		withCC, err := repo.GetOrCreate(ctx, &model.Customer{
			PhoneNumber: "123123123",
			CountryCode: "+91",
			Status:      model.CustomerStatusNew,
		})
		require.NoError(t, err)

		withoutCC, err := repo.GetOrCreate(ctx, &model.Customer{
			PhoneNumber: "123123123",
			CountryCode: "",
			Status:      model.CustomerStatusNew,
		})
		require.NoError(t, err)

		assert.NotEqual(t, withCC.ID, withoutCC.ID)
	})
}

func TestCustomerRepository_GetByIdentity(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		created, err := repo.GetOrCreate(ctx, &model.Customer{
			PhoneNumber: "42424242",
			CountryCode: "+49",
			Status:      model.CustomerStatusNew,
		})
		require.NoError(t, err)

		got, err := repo.GetByIdentity(ctx, "42424242", "+49")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByIdentity(ctx, "00000000", "+0")
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})
}
