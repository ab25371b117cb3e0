package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/funstay/leadsync/internal/model"
	"github.com/funstay/leadsync/pkg/redis"
	"github.com/pkg/errors"
)

const (
	EventLeadCreated       = "lead.created"
	EventLeadStatusUpdated = "lead.status_updated"
)

type Config struct {
	EventStream      string
	DeadLetterStream string
	MaxLen           int64
}

// Publisher pushes pipeline notifications onto Redis streams so
// downstream consumers (dashboards, CRM hooks) see new leads without
// polling the database. Both streams are capped with approximate
// trimming.
type Publisher struct {
	redis redis.RedisAdapter
	cfg   Config
}

func NewPublisher(r redis.RedisAdapter, cfg Config) *Publisher {
	return &Publisher{redis: r, cfg: cfg}
}

func (p *Publisher) LeadCreated(ctx context.Context, lead *model.Lead) error {
	payload, err := json.Marshal(lead)
	if err != nil {
		return errors.Wrap(err, "marshal lead")
	}
	return p.add(p.cfg.EventStream, map[string]interface{}{
		"event":   EventLeadCreated,
		"lead_id": lead.ID,
		"payload": string(payload),
		"at":      time.Now().UTC().Format(time.RFC3339),
	})
}

func (p *Publisher) LeadStatusUpdated(ctx context.Context, leadID int64, status model.CustomerStatus) error {
	return p.add(p.cfg.EventStream, map[string]interface{}{
		"event":   EventLeadStatusUpdated,
		"lead_id": leadID,
		"status":  string(status),
		"at":      time.Now().UTC().Format(time.RFC3339),
	})
}

// DeadLetter records a row the pipeline gave up on, with enough of the
// raw cells to replay it by hand.
func (p *Publisher) DeadLetter(ctx context.Context, source string, row []string, cause error) error {
	reason := ""
	if cause != nil {
		reason = cause.Error()
	}
	return p.add(p.cfg.DeadLetterStream, map[string]interface{}{
		"source": source,
		"row":    strings.Join(row, "\t"),
		"reason": reason,
		"at":     time.Now().UTC().Format(time.RFC3339),
	})
}

func (p *Publisher) add(stream string, values map[string]interface{}) error {
	if _, err := p.redis.XAdd(stream, values); err != nil {
		return errors.Wrapf(err, "xadd %s", stream)
	}
	if p.cfg.MaxLen > 0 {
		if err := p.redis.XTrimApprox(stream, p.cfg.MaxLen); err != nil {
			return errors.Wrapf(err, "xtrim %s", stream)
		}
	}
	return nil
}
