package testhelpers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/domain"
)

// MemoryDonationRepository keeps donations in a map and applies Settle as a
// compare-and-swap under one mutex, like the conditional UPDATE in Postgres.
// Any *Fn hook replaces the default behaviour of its method.
type MemoryDonationRepository struct {
	mu         sync.Mutex
	byRef      map[string]*domain.Donation
	refByOrder map[string]string

	settleCalls int

	CreateFn       func(ctx context.Context, donation *domain.Donation) error
	FindByRefFn    func(ctx context.Context, donationRef string) (*domain.Donation, error)
	AttachLinkFn   func(ctx context.Context, donationRef string, link domain.PaymentLink) error
	SettleFn       func(ctx context.Context, donationRef string, s domain.Settlement) (*domain.Donation, bool, error)
	BeforeSettleFn func(donationRef string)
}

func NewMemoryDonationRepository() *MemoryDonationRepository {
	return &MemoryDonationRepository{
		byRef:      make(map[string]*domain.Donation),
		refByOrder: make(map[string]string),
	}
}

func (m *MemoryDonationRepository) Create(ctx context.Context, donation *domain.Donation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, donation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byRef[donation.DonationRef]; ok {
		return domain.NewDuplicateReferenceError(donation.DonationRef, nil)
	}
	if _, ok := m.refByOrder[donation.OrderID]; ok {
		return domain.NewDuplicateReferenceError(donation.OrderID, nil)
	}
	m.byRef[donation.DonationRef] = clone(donation)
	m.refByOrder[donation.OrderID] = donation.DonationRef
	return nil
}

func (m *MemoryDonationRepository) FindByRef(ctx context.Context, donationRef string) (*domain.Donation, error) {
	if m.FindByRefFn != nil {
		return m.FindByRefFn(ctx, donationRef)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.byRef[donationRef]
	if !ok {
		return nil, domain.NewDonationNotFoundError(donationRef)
	}
	return clone(d), nil
}

func (m *MemoryDonationRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.Donation, error) {
	m.mu.Lock()
	ref, ok := m.refByOrder[orderID]
	m.mu.Unlock()
	if !ok {
		return nil, domain.NewDonationNotFoundError(orderID)
	}
	return m.FindByRef(ctx, ref)
}

func (m *MemoryDonationRepository) AttachPaymentLink(ctx context.Context, donationRef string, link domain.PaymentLink) error {
	if m.AttachLinkFn != nil {
		return m.AttachLinkFn(ctx, donationRef, link)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.byRef[donationRef]
	if !ok {
		return domain.NewDonationNotFoundError(donationRef)
	}
	updated := clone(d)
	if err := updated.AttachPaymentLink(link); err != nil {
		return err
	}
	m.byRef[donationRef] = updated
	return nil
}

func (m *MemoryDonationRepository) Settle(ctx context.Context, donationRef string, s domain.Settlement) (*domain.Donation, bool, error) {
	if m.SettleFn != nil {
		return m.SettleFn(ctx, donationRef, s)
	}
	if m.BeforeSettleFn != nil {
		m.BeforeSettleFn(donationRef)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settleCalls++

	d, ok := m.byRef[donationRef]
	if !ok {
		return nil, false, domain.NewDonationNotFoundError(donationRef)
	}
	if !d.IsPending() {
		return clone(d), false, nil
	}

	updated := clone(d)
	if err := updated.Settle(s); err != nil {
		return nil, false, err
	}
	m.byRef[donationRef] = updated
	return clone(updated), true, nil
}

func (m *MemoryDonationRepository) FindStalePending(ctx context.Context, f domain.StalePendingFilter) ([]*domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*domain.Donation
	for _, d := range m.byRef {
		if f.Matches(d) {
			out = append(out, clone(d))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.NextPollAt == nil && b.NextPollAt != nil:
			return true
		case a.NextPollAt != nil && b.NextPollAt == nil:
			return false
		case a.NextPollAt != nil && !a.NextPollAt.Equal(*b.NextPollAt):
			return a.NextPollAt.Before(*b.NextPollAt)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *MemoryDonationRepository) SchedulePoll(ctx context.Context, donationRef string, next time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.byRef[donationRef]
	if !ok {
		return domain.NewDonationNotFoundError(donationRef)
	}
	if !d.IsPending() {
		return nil
	}
	updated := clone(d)
	if err := updated.SchedulePoll(next); err != nil {
		return err
	}
	m.byRef[donationRef] = updated
	return nil
}

// Put stores d as-is, bypassing Create's checks.
func (m *MemoryDonationRepository) Put(d *domain.Donation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byRef[d.DonationRef] = clone(d)
	m.refByOrder[d.OrderID] = d.DonationRef
}

// SettleCalls counts Settle invocations that reached the store.
func (m *MemoryDonationRepository) SettleCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settleCalls
}

func (m *MemoryDonationRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byRef)
}

func clone(d *domain.Donation) *domain.Donation {
	c := *d
	if d.RawResponse != nil {
		c.RawResponse = append([]byte(nil), d.RawResponse...)
	}
	if d.NextPollAt != nil {
		next := *d.NextPollAt
		c.NextPollAt = &next
	}
	return &c
}
