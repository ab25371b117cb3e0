package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/funstay/leadsync/internal/events"
	"github.com/funstay/leadsync/internal/model"
	"github.com/funstay/leadsync/internal/repository"
	"github.com/funstay/leadsync/internal/services"
	syncer "github.com/funstay/leadsync/internal/sync"
	"github.com/funstay/leadsync/pkg/pg"
	"github.com/funstay/leadsync/pkg/redis"
	"github.com/funstay/leadsync/test/fixtures"
	"github.com/funstay/leadsync/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	rows map[string][][]string
}

func (f *stubFetcher) FetchRows(ctx context.Context, source string) ([][]string, error) {
	return f.rows[source], nil
}

type TestEnvironment struct {
	DB           *pg.DB
	Redis        *miniredis.Miniredis
	RedisAdapter redis.RedisAdapter
	CustomerRepo *repository.CustomerRepository
	LeadRepo     *repository.LeadRepository
	Publisher    *events.Publisher
	Fetcher      *stubFetcher
	Orchestrator *syncer.Orchestrator
}

func setupE2EEnvironment(t *testing.T, sources ...string) *TestEnvironment {
	db := helpers.SetupTestDB(t)
	mr, redisAdapter := helpers.SetupTestRedis(t)

	publisher := events.NewPublisher(redisAdapter, events.Config{
		EventStream:      "leadsync:events",
		DeadLetterStream: "leadsync:deadletter",
		MaxLen:           1000,
	})

	customerRepo := repository.NewCustomerRepository(db)
	leadRepo := repository.NewLeadRepository(db)

	resolver := services.NewCustomerResolver(customerRepo)
	upserter := services.NewLeadUpserter(leadRepo, publisher)

	fetcher := &stubFetcher{rows: make(map[string][][]string)}
	orch := syncer.NewOrchestrator(fetcher, resolver, upserter, publisher, syncer.Config{
		Sources:       sources,
		RunTimeout:    time.Minute,
		RowMaxRetries: 2,
	})

	return &TestEnvironment{
		DB:           db,
		Redis:        mr,
		RedisAdapter: redisAdapter,
		CustomerRepo: customerRepo,
		LeadRepo:     leadRepo,
		Publisher:    publisher,
		Fetcher:      fetcher,
		Orchestrator: orch,
	}
}

func (env *TestEnvironment) Cleanup() {
	if env.Redis != nil {
		env.Redis.Close()
	}
}

func TestE2E_FullPipelineInsertsLeadAndCustomer(t *testing.T) {
	env := setupE2EEnvironment(t, "Sheet1")
	defer env.Cleanup()

	env.Fetcher.rows["Sheet1"] = [][]string{
		fixtures.SheetHeader,
		fixtures.SheetRow("5_march_2025", "Asha Rao", "p:+91 98765 43210", "fb"),
	}

	report, err := env.Orchestrator.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Inserted)

	assert.Equal(t, int64(1), helpers.CountCustomers(t, env.DB))
	assert.Equal(t, int64(1), helpers.CountLeads(t, env.DB))

	lead, err := env.LeadRepo.FindByDedupKey(context.Background(), "2025-03-05", "9876543210", "+91")
	require.NoError(t, err)
	assert.Equal(t, "asha rao", lead.Name)
	assert.Equal(t, "fb", lead.Sources)
	assert.Equal(t, "Facebook (Paid)", lead.SecondarySource)
	assert.Equal(t, "Meta", lead.PrimarySource)
	assert.Equal(t, "Bali Summer", lead.LeadType)
	assert.Equal(t, "Bali Summer", lead.Destination)
	assert.Equal(t, model.CustomerStatusNew, lead.CustomerStatus)
	assert.NotZero(t, lead.CustomerID)

	// The insert lands on the event stream.
	count, err := env.RedisAdapter.XLen("leadsync:events")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestE2E_SecondRunIsIdempotent(t *testing.T) {
	env := setupE2EEnvironment(t, "Sheet1")
	defer env.Cleanup()

	env.Fetcher.rows["Sheet1"] = [][]string{
		fixtures.SheetHeader,
		fixtures.SheetRow("5_march_2025", "Asha Rao", "p:+91 98765 43210", "fb"),
		fixtures.SheetRow("6_march_2025", "Asha Rao", "p:+91 98765 43210", "ig"),
	}

	report, err := env.Orchestrator.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Inserted)

	report, err = env.Orchestrator.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Inserted)
	assert.Equal(t, 2, report.Updated)

	// Same identity on both rows, so a single customer.
	assert.Equal(t, int64(1), helpers.CountCustomers(t, env.DB))
	assert.Equal(t, int64(2), helpers.CountLeads(t, env.DB))
}

func TestE2E_DuplicateRefreshesStatusFromStore(t *testing.T) {
	env := setupE2EEnvironment(t, "Sheet1")
	defer env.Cleanup()

	env.Fetcher.rows["Sheet1"] = [][]string{
		fixtures.SheetHeader,
		fixtures.SheetRow("5_march_2025", "Asha Rao", "p:+91 98765 43210", "fb"),
	}

	_, err := env.Orchestrator.Run(context.Background())
	require.NoError(t, err)

	// An external process promotes the customer between runs.
	ctx := context.Background()
	err = env.DB.Write(ctx).Model(&repository.CustomerEntity{}).
		Where("phone_number = ?", "9876543210").
		Update("customer_status", "existing").Error
	require.NoError(t, err)

	report, err := env.Orchestrator.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)

	lead, err := env.LeadRepo.FindByDedupKey(ctx, "2025-03-05", "9876543210", "+91")
	require.NoError(t, err)
	assert.Equal(t, model.CustomerStatusExisting, lead.CustomerStatus)
	assert.Equal(t, "asha rao", lead.Name)
}

func TestE2E_BlankAndMalformedRowsDoNotStopTheRun(t *testing.T) {
	env := setupE2EEnvironment(t, "Sheet1")
	defer env.Cleanup()

	env.Fetcher.rows["Sheet1"] = [][]string{
		fixtures.SheetHeader,
		fixtures.BlankRow(),
		{"id-only", "5_march_2025", "too", "short"},
		fixtures.SheetRow("6_march_2025", "Rohan Mehta", "p:+91 91234 56789", "ig"),
	}

	report, err := env.Orchestrator.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Inserted)

	// The malformed row lands on the dead-letter stream.
	count, err := env.RedisAdapter.XLen("leadsync:deadletter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestE2E_UnparseableDateSkipsWithoutWrite(t *testing.T) {
	env := setupE2EEnvironment(t, "Sheet1")
	defer env.Cleanup()

	env.Fetcher.rows["Sheet1"] = [][]string{
		fixtures.SheetHeader,
		fixtures.SheetRow("march 2025", "Asha Rao", "p:+91 98765 43210", "fb"),
	}

	report, err := env.Orchestrator.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)

	// The customer is still resolved; only the lead write is skipped.
	assert.Equal(t, int64(1), helpers.CountCustomers(t, env.DB))
	assert.Equal(t, int64(0), helpers.CountLeads(t, env.DB))
}

func TestE2E_MultipleSourcesShareCustomerIdentity(t *testing.T) {
	env := setupE2EEnvironment(t, "Sheet1", "Sheet2")
	defer env.Cleanup()

	env.Fetcher.rows["Sheet1"] = [][]string{
		fixtures.SheetHeader,
		fixtures.SheetRow("5_march_2025", "Asha Rao", "p:+91 98765 43210", "fb"),
	}
	env.Fetcher.rows["Sheet2"] = [][]string{
		fixtures.SheetHeader,
		fixtures.SheetRow("7_april_2025", "asha r", "p:+91 98765 43210", "ig"),
	}

	report, err := env.Orchestrator.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Inserted)
	assert.Equal(t, int64(1), helpers.CountCustomers(t, env.DB))

	// First-write-wins on the customer profile.
	customer, err := env.CustomerRepo.GetByIdentity(context.Background(), "9876543210", "+91")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", customer.Name)
}
