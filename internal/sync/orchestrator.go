package sync

import (
	"context"
	"strings"
	"time"

	"github.com/funstay/leadsync/internal/model"
	"github.com/funstay/leadsync/internal/normalize"
	"github.com/funstay/leadsync/internal/sheets"
	"github.com/funstay/leadsync/pkg/logger"
	"github.com/funstay/leadsync/pkg/prom"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// primarySource is fixed for this pipeline; every configured sheet is a
// Meta lead-ads export.
const primarySource = "Meta"

const retryBaseDelay = 500 * time.Millisecond

type Fetcher interface {
	FetchRows(ctx context.Context, source string) ([][]string, error)
}

type Resolver interface {
	Resolve(ctx context.Context, name, email, phone, countryCode string) (int64, model.CustomerStatus, error)
}

type Upserter interface {
	Upsert(ctx context.Context, lead *model.Lead, customerID int64, status model.CustomerStatus) (model.UpsertResult, error)
}

type DeadLetterer interface {
	DeadLetter(ctx context.Context, source string, row []string, cause error) error
}

type Config struct {
	Sources       []string
	RunTimeout    time.Duration
	RowMaxRetries int
}

// Orchestrator drives one sync pass over every configured sheet. Rows
// are processed strictly in sheet order, one at a time, so a later
// duplicate always loses to the row that came first.
type Orchestrator struct {
	fetcher    Fetcher
	resolver   Resolver
	upserter   Upserter
	deadLetter DeadLetterer
	cfg        Config
}

func NewOrchestrator(fetcher Fetcher, resolver Resolver, upserter Upserter, deadLetter DeadLetterer, cfg Config) *Orchestrator {
	if cfg.RowMaxRetries < 1 {
		cfg.RowMaxRetries = 1
	}
	return &Orchestrator{
		fetcher:    fetcher,
		resolver:   resolver,
		upserter:   upserter,
		deadLetter: deadLetter,
		cfg:        cfg,
	}
}

// Report summarizes one run across all sources.
type Report struct {
	RunID    string
	Fetched  int
	Inserted int
	Updated  int
	Skipped  int
	Failed   int
}

// Run executes a full pass. A failing source or row never aborts the
// run; the failure is counted, dead-lettered where applicable, and the
// pass moves on.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	if o.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.RunTimeout)
		defer cancel()
	}

	report := &Report{RunID: uuid.NewString()}
	started := time.Now()

	logger.Info("sync run started", "run_id", report.RunID, "sources", len(o.cfg.Sources))
	prom.IncCounter(prom.SystemSync, prom.MetricRunsTotal)

	for _, source := range o.cfg.Sources {
		if err := ctx.Err(); err != nil {
			logger.Warn("sync run cut short", "run_id", report.RunID, "source", source, "error", err)
			return report, errors.Wrap(err, "run deadline")
		}
		o.processSource(ctx, source, report)
	}

	elapsed := time.Since(started)
	prom.AddHistogram(prom.SystemSync, prom.MetricRunDuration, elapsed.Seconds())
	logger.Info("sync run finished",
		"run_id", report.RunID,
		"fetched", report.Fetched,
		"inserted", report.Inserted,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"elapsed", elapsed.String(),
	)
	return report, nil
}

func (o *Orchestrator) processSource(ctx context.Context, source string, report *Report) {
	rows, err := o.fetcher.FetchRows(ctx, source)
	if err != nil {
		prom.IncCounterVec(prom.SystemSync, prom.MetricFetchErrors, source)
		logger.Error("source fetch failed", "source", source, "error", err)
		return
	}
	if len(rows) <= 1 {
		logger.Info("source has no data rows", "source", source)
		return
	}

	// Row 0 is the header.
	for _, cells := range rows[1:] {
		report.Fetched++

		if blankRow(cells) {
			report.Skipped++
			prom.IncCounterVec(prom.SystemSync, prom.MetricRowsProcessed, source, string(model.ResultSkipped))
			continue
		}

		result, err := o.processRow(ctx, source, cells)
		if err != nil {
			report.Failed++
			prom.IncCounterVec(prom.SystemSync, prom.MetricRowFailures, source)
			logger.Error("row failed", "source", source, "error", err)
			o.sendToDeadLetter(ctx, source, cells, err)
			continue
		}

		switch result {
		case model.ResultInserted:
			report.Inserted++
		case model.ResultStatusUpdated:
			report.Updated++
		default:
			report.Skipped++
		}
		prom.IncCounterVec(prom.SystemSync, prom.MetricRowsProcessed, source, string(result))
	}
}

// processRow takes one raw row through parse, normalize, resolve and
// upsert. The resolve+upsert pair is retried on transient failure; a
// malformed row fails immediately.
func (o *Orchestrator) processRow(ctx context.Context, source string, cells []string) (model.UpsertResult, error) {
	row, err := sheets.ParseRow(cells)
	if err != nil {
		return model.ResultSkipped, err
	}

	lead := buildLead(row)

	var lastErr error
	for attempt := 0; attempt < o.cfg.RowMaxRetries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return model.ResultSkipped, ctx.Err()
			}
		}

		customerID, status, err := o.resolver.Resolve(ctx, row.Name, row.Email, lead.PhoneNumber, lead.CountryCode)
		if err != nil {
			lastErr = errors.Wrap(err, "resolve customer")
			continue
		}

		result, err := o.upserter.Upsert(ctx, lead, customerID, status)
		if err != nil {
			lastErr = errors.Wrap(err, "upsert lead")
			continue
		}
		return result, nil
	}
	return model.ResultSkipped, lastErr
}

func (o *Orchestrator) sendToDeadLetter(ctx context.Context, source string, cells []string, cause error) {
	if o.deadLetter == nil {
		return
	}
	prom.IncCounterVec(prom.SystemSync, prom.MetricDeadLetterTotal, source)
	if err := o.deadLetter.DeadLetter(ctx, source, cells, cause); err != nil {
		logger.Warn("dead letter publish failed", "source", source, "error", err)
	}
}

// blankRow reports whether the row carries no lead. The export pads the
// sheet with empty rows below the data; a missing created time marks
// them.
func blankRow(cells []string) bool {
	if len(cells) == 0 {
		return true
	}
	if len(cells) < 2 {
		return strings.TrimSpace(cells[0]) == ""
	}
	return strings.TrimSpace(cells[1]) == ""
}

// buildLead maps a parsed sheet row onto the stored lead record. Name
// and email are lowercased; the campaign fills both lead_type and
// destination. sources carries the short platform code,
// secondarysource its display label.
func buildLead(row *sheets.LeadRow) *model.Lead {
	countryCode, phone := normalize.Phone(row.Phone)

	code, label := normalize.TrafficSource(row.Platform)

	return &model.Lead{
		LeadDate:            normalize.Date(row.CreatedTime),
		AdCopy:              row.AdCopy,
		AdSet:               row.AdSet,
		LeadType:            row.Campaign,
		Sources:             code,
		Name:                strings.ToLower(strings.TrimSpace(row.Name)),
		Email:               strings.ToLower(strings.TrimSpace(row.Email)),
		PhoneNumber:         phone,
		CountryCode:         countryCode,
		OriginCity:          row.City,
		Destination:         row.Campaign,
		PrimarySource:       primarySource,
		SecondarySource:     label,
		Description:         normalize.Description(row.SurveyAnswers),
		PhoneNumberVerified: row.PhoneVerified,
		LeadStatus:          row.LeadStatus,
	}
}
