package services

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/funstay/leadsync/internal/model"
)

type ResolverCustomerRepository interface {
	GetOrCreate(ctx context.Context, c *model.Customer) (*model.Customer, error)
}

// CustomerResolver finds or creates the customer identity behind a
// normalized (phone, country code) pair. Resolution for the same key is
// serialized through a sharded lock, so overlapping sync runs cannot
// race the lookup-or-insert; the unique index in the store backs this
// up at the database level.
type CustomerResolver struct {
	repo  ResolverCustomerRepository
	locks identityLocks
}

func NewCustomerResolver(repo ResolverCustomerRepository) *CustomerResolver {
	return &CustomerResolver{repo: repo}
}

// Resolve returns the customer id and the stored status for the
// identity. On first encounter the customer is created with status
// "new"; afterwards the stored status is echoed back, never mutated.
func (r *CustomerResolver) Resolve(ctx context.Context, name, email, phone, countryCode string) (int64, model.CustomerStatus, error) {
	phone = strings.TrimSpace(phone)
	countryCode = strings.TrimSpace(countryCode)

	unlock := r.locks.lock(phone + "|" + countryCode)
	defer unlock()

	stored, err := r.repo.GetOrCreate(ctx, &model.Customer{
		Name:        strings.TrimSpace(name),
		Email:       strings.TrimSpace(email),
		PhoneNumber: phone,
		CountryCode: countryCode,
		Status:      model.CustomerStatusNew,
	})
	if err != nil {
		return 0, "", err
	}

	return stored.ID, stored.Status, nil
}

const identityLockShards = 64

// identityLocks is a fixed pool of mutexes keyed by identity hash.
// Distinct keys may share a shard; that only costs a little extra
// serialization, never correctness.
type identityLocks struct {
	shards [identityLockShards]sync.Mutex
}

func (l *identityLocks) lock(key string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	m := &l.shards[h.Sum32()%identityLockShards]
	m.Lock()
	return m.Unlock
}
