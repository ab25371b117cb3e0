package repository

import (
	"time"

	"github.com/funstay/leadsync/internal/model"
)

type LeadEntity struct {
	ID                  int64     `db:"leadid"                gorm:"primaryKey;autoIncrement;column:leadid"`
	LeadDate            string    `db:"lead_date"             gorm:"column:lead_date;not null;uniqueIndex:idx_lead_dedup"`
	AdCopy              string    `db:"ad_copy"               gorm:"column:ad_copy"`
	AdSet               string    `db:"ad_set"                gorm:"column:ad_set"`
	LeadType            string    `db:"lead_type"             gorm:"column:lead_type"`
	Sources             string    `db:"sources"               gorm:"column:sources"`
	Name                string    `db:"name"                  gorm:"column:name"`
	Email               string    `db:"email"                 gorm:"column:email"`
	PhoneNumber         string    `db:"phone_number"          gorm:"column:phone_number;not null;uniqueIndex:idx_lead_dedup"`
	CountryCode         string    `db:"country_code"          gorm:"column:country_code;not null;uniqueIndex:idx_lead_dedup"`
	OriginCity          string    `db:"origincity"            gorm:"column:origincity"`
	Destination         string    `db:"destination"           gorm:"column:destination"`
	PrimarySource       string    `db:"primarySource"         gorm:"column:primarySource"`
	SecondarySource     string    `db:"secondarysource"       gorm:"column:secondarysource"`
	CustomerID          int64     `db:"customerid"            gorm:"column:customerid;not null;index"`
	CustomerStatus      string    `db:"customer_status"       gorm:"column:customer_status;not null"`
	Description         string    `db:"description"           gorm:"column:description"`
	PhoneNumberVerified string    `db:"phone_number_verified" gorm:"column:phone_number_verified"`
	LeadStatus          string    `db:"lead_status"           gorm:"column:lead_status"`
	CreatedAt           time.Time `db:"created_at"            gorm:"column:created_at;autoCreateTime"`
}

func (LeadEntity) TableName() string {
	return "addleads"
}

func toLeadEntity(m *model.Lead) *LeadEntity {
	if m == nil {
		return nil
	}
	return &LeadEntity{
		ID:                  m.ID,
		LeadDate:            m.LeadDate,
		AdCopy:              m.AdCopy,
		AdSet:               m.AdSet,
		LeadType:            m.LeadType,
		Sources:             m.Sources,
		Name:                m.Name,
		Email:               m.Email,
		PhoneNumber:         m.PhoneNumber,
		CountryCode:         m.CountryCode,
		OriginCity:          m.OriginCity,
		Destination:         m.Destination,
		PrimarySource:       m.PrimarySource,
		SecondarySource:     m.SecondarySource,
		CustomerID:          m.CustomerID,
		CustomerStatus:      string(m.CustomerStatus),
		Description:         m.Description,
		PhoneNumberVerified: m.PhoneNumberVerified,
		LeadStatus:          m.LeadStatus,
		CreatedAt:           m.CreatedAt,
	}
}

func toLeadModel(e *LeadEntity) *model.Lead {
	if e == nil {
		return nil
	}
	return &model.Lead{
		ID:                  e.ID,
		LeadDate:            e.LeadDate,
		AdCopy:              e.AdCopy,
		AdSet:               e.AdSet,
		LeadType:            e.LeadType,
		Sources:             e.Sources,
		Name:                e.Name,
		Email:               e.Email,
		PhoneNumber:         e.PhoneNumber,
		CountryCode:         e.CountryCode,
		OriginCity:          e.OriginCity,
		Destination:         e.Destination,
		PrimarySource:       e.PrimarySource,
		SecondarySource:     e.SecondarySource,
		CustomerID:          e.CustomerID,
		CustomerStatus:      model.CustomerStatus(e.CustomerStatus),
		Description:         e.Description,
		PhoneNumberVerified: e.PhoneNumberVerified,
		LeadStatus:          e.LeadStatus,
		CreatedAt:           e.CreatedAt,
	}
}

func toLeadModels(entities []*LeadEntity) []*model.Lead {
	if entities == nil {
		return nil
	}
	models := make([]*model.Lead, len(entities))
	for i, e := range entities {
		models[i] = toLeadModel(e)
	}
	return models
}
