package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/veltri/propledger/internal/domain"
	"github.com/veltri/propledger/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc  func(ctx context.Context, account *domain.Account) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Account, error)
	ExistsFunc  func(ctx context.Context, id string) (bool, error)
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) Exists(ctx context.Context, id string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	acc, ok := m.accounts[id]
	return ok && acc.Postable, nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// MockJournalRepository is a mock implementation of JournalRepository.
type MockJournalRepository struct {
	mu       sync.RWMutex
	journals map[string]*domain.LedgerJournal

	CreateFunc           func(ctx context.Context, journal *domain.LedgerJournal) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.LedgerJournal, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.LedgerJournal, error)
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id string, status domain.JournalStatus, flagNotes []string, postedAt *time.Time) error
}

func NewMockJournalRepository() *MockJournalRepository {
	return &MockJournalRepository{
		journals: make(map[string]*domain.LedgerJournal),
	}
}

func (m *MockJournalRepository) Create(ctx context.Context, journal *domain.LedgerJournal) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, journal)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.journals[journal.ID] = journal
	return nil
}

func (m *MockJournalRepository) GetByID(ctx context.Context, id string) (*domain.LedgerJournal, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if j, ok := m.journals[id]; ok {
		return j, nil
	}
	return nil, domain.ErrJournalNotFound
}

func (m *MockJournalRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.LedgerJournal, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockJournalRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.JournalStatus, flagNotes []string, postedAt *time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, flagNotes, postedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.journals[id]; ok {
		j.Status = status
		j.FlagNotes = flagNotes
		j.PostedAt = postedAt
	}
	return nil
}

// MockLedgerEntryRepository is a mock implementation of LedgerEntryRepository.
type MockLedgerEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.LedgerEntry

	CreateFunc       func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	GetByJournalFunc func(ctx context.Context, journalID string) ([]*domain.LedgerEntry, error)
	GetByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error)
}

func NewMockLedgerEntryRepository() *MockLedgerEntryRepository {
	return &MockLedgerEntryRepository{
		entries: make(map[string]*domain.LedgerEntry),
	}
}

func (m *MockLedgerEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockLedgerEntryRepository) GetByJournal(ctx context.Context, journalID string) ([]*domain.LedgerEntry, error) {
	if m.GetByJournalFunc != nil {
		return m.GetByJournalFunc(ctx, journalID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.JournalID == journalID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockLedgerEntryRepository) GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	if m.GetByAccountFunc != nil {
		return m.GetByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.AccountID == accountID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// Count returns how many ledger rows the mock holds.
func (m *MockLedgerEntryRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// MockUnitRepository is a mock implementation of UnitRepository.
type MockUnitRepository struct {
	mu    sync.RWMutex
	units map[string]*domain.Unit

	CreateFunc  func(ctx context.Context, unit *domain.Unit) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Unit, error)
	SizeFunc    func(ctx context.Context, unitID string) (decimal.Decimal, bool, error)
}

func NewMockUnitRepository() *MockUnitRepository {
	return &MockUnitRepository{
		units: make(map[string]*domain.Unit),
	}
}

func (m *MockUnitRepository) Create(ctx context.Context, unit *domain.Unit) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, unit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.units[unit.ID] = unit
	return nil
}

func (m *MockUnitRepository) GetByID(ctx context.Context, id string) (*domain.Unit, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.units[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUnitNotFound
}

func (m *MockUnitRepository) Size(ctx context.Context, unitID string) (decimal.Decimal, bool, error) {
	if m.SizeFunc != nil {
		return m.SizeFunc(ctx, unitID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.units[unitID]
	if !ok || !u.Size.IsPositive() {
		return decimal.Zero, false, nil
	}
	return u.Size, true, nil
}

// MockImbalanceHistory is a mock implementation of ImbalanceHistory.
type MockImbalanceHistory struct {
	mu    sync.RWMutex
	flags map[string][]time.Time

	RecordFlagFunc      func(ctx context.Context, submitterID string, at time.Time) error
	RecentFlagCountFunc func(ctx context.Context, submitterID string, window time.Duration) (int, error)
}

func NewMockImbalanceHistory() *MockImbalanceHistory {
	return &MockImbalanceHistory{
		flags: make(map[string][]time.Time),
	}
}

func (m *MockImbalanceHistory) RecordFlag(ctx context.Context, submitterID string, at time.Time) error {
	if m.RecordFlagFunc != nil {
		return m.RecordFlagFunc(ctx, submitterID, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[submitterID] = append(m.flags[submitterID], at)
	return nil
}

func (m *MockImbalanceHistory) RecentFlagCount(ctx context.Context, submitterID string, window time.Duration) (int, error) {
	if m.RecentFlagCountFunc != nil {
		return m.RecentFlagCountFunc(ctx, submitterID, window)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	cutoff := time.Now().UTC().Add(-window)
	count := 0
	for _, at := range m.flags[submitterID] {
		if at.After(cutoff) {
			count++
		}
	}
	return count, nil
}

// MockAuditSink is a capturing AuditRepository for table-driven tests.
type MockAuditSink struct {
	mu      sync.RWMutex
	records []*domain.AuditRecord

	CreateFunc func(ctx context.Context, record *domain.AuditRecord) error
}

func NewMockAuditSink() *MockAuditSink {
	return &MockAuditSink{}
}

func (m *MockAuditSink) Create(ctx context.Context, record *domain.AuditRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *MockAuditSink) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var records []*domain.AuditRecord
	for _, r := range m.records {
		if filter.Action != "" && string(r.Action) != filter.Action {
			continue
		}
		if filter.ResourceID != "" && r.ResourceID != filter.ResourceID {
			continue
		}
		if filter.ActorID != "" && r.ActorID != filter.ActorID {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

func (m *MockAuditSink) GetByResourceID(ctx context.Context, resourceID string) ([]*domain.AuditRecord, error) {
	return m.List(ctx, domain.AuditFilter{ResourceID: resourceID})
}

// Records returns a copy of the captured audit records.
func (m *MockAuditSink) Records() []*domain.AuditRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AuditRecord(nil), m.records...)
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "mock-id-" + string(rune('0'+m.counter))
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
