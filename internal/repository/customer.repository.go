package repository

import (
	"context"
	"errors"

	"github.com/funstay/leadsync/internal/model"
	"github.com/funstay/leadsync/pkg/pg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
)

type CustomerRepository struct {
	*pg.DB
}

func NewCustomerRepository(db *pg.DB) *CustomerRepository {
	return &CustomerRepository{
		db,
	}
}

// GetByIdentity looks a customer up by the exact (phone_number,
// country_code) pair. An empty country code is a legitimate key
// component for numbers that never parsed.
func (r *CustomerRepository) GetByIdentity(ctx context.Context, phoneNumber, countryCode string) (*model.Customer, error) {
	var entity CustomerEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("phone_number = ? AND country_code = ?", phoneNumber, countryCode).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	return toCustomerModel(&entity), nil
}

// GetOrCreate inserts the customer if its identity key is absent and
// returns the stored row either way. The insert rides on the unique
// index over (phone_number, country_code), so two overlapping calls for
// the same key cannot both insert; the loser of the conflict falls
// through to the fetch.
func (r *CustomerRepository) GetOrCreate(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	entity := toCustomerEntity(c)

	result := r.Write(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone_number"}, {Name: "country_code"}},
			DoNothing: true,
		}).
		Create(entity)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected > 0 {
		return toCustomerModel(entity), nil
	}

	// Conflict: the identity already exists, return it with its stored
	// status untouched.
	existing, err := r.getByIdentityForWrite(ctx, c.PhoneNumber, c.CountryCode)
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// getByIdentityForWrite reads through the write handle so a fetch right
// after a conflicting insert sees the committed row even with a lagging
// read replica.
func (r *CustomerRepository) getByIdentityForWrite(ctx context.Context, phoneNumber, countryCode string) (*model.Customer, error) {
	var entity CustomerEntity

	err := r.Write(ctx).WithContext(ctx).
		Where("phone_number = ? AND country_code = ?", phoneNumber, countryCode).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	return toCustomerModel(&entity), nil
}
