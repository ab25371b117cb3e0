package repository

import (
	"context"
	"errors"

	"github.com/funstay/leadsync/internal/model"
	"github.com/funstay/leadsync/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrLeadNotFound = errors.New("lead not found")
)

type LeadRepository struct {
	*pg.DB
}

func NewLeadRepository(db *pg.DB) *LeadRepository {
	return &LeadRepository{
		db,
	}
}

// FindByDedupKey returns the lead matching the composite dedup key
// (lead_date, phone_number, country_code), or ErrLeadNotFound.
func (r *LeadRepository) FindByDedupKey(ctx context.Context, leadDate, phoneNumber, countryCode string) (*model.Lead, error) {
	var entity LeadEntity

	err := r.Write(ctx).WithContext(ctx).
		Where("lead_date = ? AND phone_number = ? AND country_code = ?", leadDate, phoneNumber, countryCode).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}

	return toLeadModel(&entity), nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *model.Lead) (*model.Lead, error) {
	entity := toLeadEntity(lead)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toLeadModel(entity), nil
}

// UpdateCustomerStatus refreshes the status snapshot on one stored
// lead. All other columns stay as first written.
func (r *LeadRepository) UpdateCustomerStatus(ctx context.Context, leadID int64, status model.CustomerStatus) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&LeadEntity{}).
		Where("leadid = ?", leadID).
		Update("customer_status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// List serves the query surface: stored leads, newest first by default.
func (r *LeadRepository) List(ctx context.Context, f model.LeadFilter) ([]*model.Lead, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&LeadEntity{})

	if f.PhoneNumber != nil && *f.PhoneNumber != "" {
		q = q.Where("phone_number = ?", *f.PhoneNumber)
	}
	if f.CountryCode != nil {
		q = q.Where("country_code = ?", *f.CountryCode)
	}
	if f.LeadDate != nil && *f.LeadDate != "" {
		q = q.Where("lead_date = ?", *f.LeadDate)
	}

	// Count before pagination
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at"
	if f.Desc {
		order += " DESC"
	} else {
		order += " ASC"
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var entities []*LeadEntity
	if err := q.Order(order).Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return toLeadModels(entities), total, nil
}
