package repository

import (
	"github.com/funstay/leadsync/internal/model"
)

type CustomerEntity struct {
	ID          int64  `db:"id"              gorm:"primaryKey;autoIncrement;column:id"`
	Name        string `db:"name"            gorm:"column:name"`
	Email       string `db:"email"           gorm:"column:email"`
	PhoneNumber string `db:"phone_number"    gorm:"column:phone_number;not null;uniqueIndex:idx_customer_identity"`
	CountryCode string `db:"country_code"    gorm:"column:country_code;not null;uniqueIndex:idx_customer_identity"`
	Status      string `db:"customer_status" gorm:"column:customer_status;not null;default:new"`
}

func (CustomerEntity) TableName() string {
	return "customers"
}

func toCustomerEntity(m *model.Customer) *CustomerEntity {
	if m == nil {
		return nil
	}
	return &CustomerEntity{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		CountryCode: m.CountryCode,
		Status:      string(m.Status),
	}
}

func toCustomerModel(e *CustomerEntity) *model.Customer {
	if e == nil {
		return nil
	}
	return &model.Customer{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		PhoneNumber: e.PhoneNumber,
		CountryCode: e.CountryCode,
		Status:      model.CustomerStatus(e.Status),
	}
}
