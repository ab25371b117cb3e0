package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/funstay/leadsync/internal/model"
	"github.com/funstay/leadsync/internal/repository"
	"github.com/funstay/leadsync/pkg/logger"
)

type UpserterLeadRepository interface {
	FindByDedupKey(ctx context.Context, leadDate, phoneNumber, countryCode string) (*model.Lead, error)
	Create(ctx context.Context, lead *model.Lead) (*model.Lead, error)
	UpdateCustomerStatus(ctx context.Context, leadID int64, status model.CustomerStatus) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type LeadEventPublisher interface {
	LeadCreated(ctx context.Context, lead *model.Lead) error
	LeadStatusUpdated(ctx context.Context, leadID int64, status model.CustomerStatus) error
}

// LeadUpserter decides insert-vs-update for one normalized row. The
// dedup check and the write run inside a single transaction, so
// overlapping runs cannot both miss the lookup and double-insert.
type LeadUpserter struct {
	leadRepo UpserterLeadRepository
	events   LeadEventPublisher
}

func NewLeadUpserter(leadRepo UpserterLeadRepository, events LeadEventPublisher) *LeadUpserter {
	return &LeadUpserter{
		leadRepo: leadRepo,
		events:   events,
	}
}

// Upsert persists the row under the resolved customer. An empty lead
// date skips the row entirely: no lookup, no write. A dedup hit
// refreshes customer_status only; every other stored field keeps its
// first-written value.
func (s *LeadUpserter) Upsert(ctx context.Context, lead *model.Lead, customerID int64, status model.CustomerStatus) (model.UpsertResult, error) {
	if lead.LeadDate == "" {
		return model.ResultSkipped, nil
	}

	lead.CustomerID = customerID
	lead.CustomerStatus = status

	result := model.ResultSkipped
	var written *model.Lead
	var updatedID int64

	err := s.leadRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.leadRepo.FindByDedupKey(ctx, lead.LeadDate, lead.PhoneNumber, lead.CountryCode)
		if err != nil {
			if !errors.Is(err, repository.ErrLeadNotFound) {
				return fmt.Errorf("dedup lookup: %w", err)
			}

			created, err := s.leadRepo.Create(ctx, lead)
			if err != nil {
				return fmt.Errorf("insert lead: %w", err)
			}
			written = created
			result = model.ResultInserted
			return nil
		}

		if err := s.leadRepo.UpdateCustomerStatus(ctx, existing.ID, status); err != nil {
			return fmt.Errorf("refresh status: %w", err)
		}
		updatedID = existing.ID
		result = model.ResultStatusUpdated
		return nil
	})
	if err != nil {
		return model.ResultSkipped, err
	}

	s.publish(ctx, result, written, updatedID, status)
	return result, nil
}

// publish pushes the notification after commit; the channel is
// best-effort and must never fail the upsert.
func (s *LeadUpserter) publish(ctx context.Context, result model.UpsertResult, written *model.Lead, updatedID int64, status model.CustomerStatus) {
	if s.events == nil {
		return
	}

	var err error
	switch result {
	case model.ResultInserted:
		err = s.events.LeadCreated(ctx, written)
	case model.ResultStatusUpdated:
		err = s.events.LeadStatusUpdated(ctx, updatedID, status)
	default:
		return
	}
	if err != nil {
		logger.Warn("lead event publish failed", "result", string(result), "error", err)
	}
}
