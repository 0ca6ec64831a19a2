//	mockgen -source=internal/usecase/interfaces.go -destination=internal/usecase/mocks/mock_interfaces.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	domain "github.com/veltri/propledger/internal/domain"
	decimal "github.com/shopspring/decimal"
	gomock "go.uber.org/mock/gomock"
)

// MockScheduleStore is a mock of ScheduleStore interface.
type MockScheduleStore struct {
	ctrl     *gomock.Controller
	recorder *MockScheduleStoreMockRecorder
	isgomock struct{}
}

// MockScheduleStoreMockRecorder is the mock recorder for MockScheduleStore.
type MockScheduleStoreMockRecorder struct {
	mock *MockScheduleStore
}

// NewMockScheduleStore creates a new mock instance.
func NewMockScheduleStore(ctrl *gomock.Controller) *MockScheduleStore {
	mock := &MockScheduleStore{ctrl: ctrl}
	mock.recorder = &MockScheduleStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockScheduleStore) EXPECT() *MockScheduleStoreMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockScheduleStore) Create(ctx context.Context, contextID string, position int, schedule domain.ApportionmentSchedule) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, contextID, position, schedule)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockScheduleStoreMockRecorder) Create(ctx, contextID, position, schedule any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockScheduleStore)(nil).Create), ctx, contextID, position, schedule)
}

// ListByContext mocks base method.
func (m *MockScheduleStore) ListByContext(ctx context.Context, contextID string) ([]domain.ApportionmentSchedule, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByContext", ctx, contextID)
	ret0, _ := ret[0].([]domain.ApportionmentSchedule)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByContext indicates an expected call of ListByContext.
func (mr *MockScheduleStoreMockRecorder) ListByContext(ctx, contextID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByContext", reflect.TypeOf((*MockScheduleStore)(nil).ListByContext), ctx, contextID)
}

// MockUnitDirectory is a mock of UnitDirectory interface.
type MockUnitDirectory struct {
	ctrl     *gomock.Controller
	recorder *MockUnitDirectoryMockRecorder
	isgomock struct{}
}

// MockUnitDirectoryMockRecorder is the mock recorder for MockUnitDirectory.
type MockUnitDirectoryMockRecorder struct {
	mock *MockUnitDirectory
}

// NewMockUnitDirectory creates a new mock instance.
func NewMockUnitDirectory(ctrl *gomock.Controller) *MockUnitDirectory {
	mock := &MockUnitDirectory{ctrl: ctrl}
	mock.recorder = &MockUnitDirectoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockUnitDirectory) EXPECT() *MockUnitDirectoryMockRecorder {
	return m.recorder
}

// Size mocks base method.
func (m *MockUnitDirectory) Size(ctx context.Context, unitID string) (decimal.Decimal, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Size", ctx, unitID)
	ret0, _ := ret[0].(decimal.Decimal)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// Size indicates an expected call of Size.
func (mr *MockUnitDirectoryMockRecorder) Size(ctx, unitID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Size", reflect.TypeOf((*MockUnitDirectory)(nil).Size), ctx, unitID)
}

// MockAuditRepository is a mock of AuditRepository interface.
type MockAuditRepository struct {
	ctrl     *gomock.Controller
	recorder *MockAuditRepositoryMockRecorder
	isgomock struct{}
}

// MockAuditRepositoryMockRecorder is the mock recorder for MockAuditRepository.
type MockAuditRepositoryMockRecorder struct {
	mock *MockAuditRepository
}

// NewMockAuditRepository creates a new mock instance.
func NewMockAuditRepository(ctrl *gomock.Controller) *MockAuditRepository {
	mock := &MockAuditRepository{ctrl: ctrl}
	mock.recorder = &MockAuditRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAuditRepository) EXPECT() *MockAuditRepositoryMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockAuditRepository) Create(ctx context.Context, record *domain.AuditRecord) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, record)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockAuditRepositoryMockRecorder) Create(ctx, record any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockAuditRepository)(nil).Create), ctx, record)
}

// GetByResourceID mocks base method.
func (m *MockAuditRepository) GetByResourceID(ctx context.Context, resourceID string) ([]*domain.AuditRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByResourceID", ctx, resourceID)
	ret0, _ := ret[0].([]*domain.AuditRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByResourceID indicates an expected call of GetByResourceID.
func (mr *MockAuditRepositoryMockRecorder) GetByResourceID(ctx, resourceID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByResourceID", reflect.TypeOf((*MockAuditRepository)(nil).GetByResourceID), ctx, resourceID)
}

// List mocks base method.
func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, filter)
	ret0, _ := ret[0].([]*domain.AuditRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List.
func (mr *MockAuditRepositoryMockRecorder) List(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockAuditRepository)(nil).List), ctx, filter)
}
