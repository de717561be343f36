package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"toolrent-backend/internal/domain"
)

type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) Create(ctx context.Context, c *domain.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepo) GetByRut(ctx context.Context, rut string) (*domain.Client, error) {
	args := m.Called(ctx, rut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepo) GetByUsername(ctx context.Context, username string) (*domain.Client, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepo) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepo) GetByPhoneNumber(ctx context.Context, phone string) (*domain.Client, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepo) Update(ctx context.Context, c *domain.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepo) UpdateStatus(ctx context.Context, id int64, status domain.ClientStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(ctx context.Context, l *domain.Loan) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLoanRepo) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepo) Update(ctx context.Context, l *domain.Loan) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLoanRepo) UpdateOpen(ctx context.Context, l *domain.Loan) (bool, error) {
	args := m.Called(ctx, l)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoanRepo) UpdateFinePaid(ctx context.Context, id int64, paid bool) error {
	args := m.Called(ctx, id, paid)
	return args.Error(0)
}

func (m *MockLoanRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLoanRepo) List(ctx context.Context) ([]domain.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepo) ListActive(ctx context.Context) ([]domain.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepo) ListActiveByDateRange(ctx context.Context, start, end time.Time) ([]domain.Loan, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepo) ListOverdue(ctx context.Context, today time.Time) ([]domain.Loan, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepo) ListOverdueByDateRange(ctx context.Context, today, start, end time.Time) ([]domain.Loan, error) {
	args := m.Called(ctx, today, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepo) ListUnpaid(ctx context.Context) ([]domain.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepo) CountActiveByClient(ctx context.Context, clientID int64) (int64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoanRepo) CountActiveByClientAndToolName(ctx context.Context, clientID int64, toolName string) (int64, error) {
	args := m.Called(ctx, clientID, toolName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoanRepo) CountUnpaidByClient(ctx context.Context, clientID int64) (int64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoanRepo) CountOverdueByClient(ctx context.Context, clientID int64, today time.Time) (int64, error) {
	args := m.Called(ctx, clientID, today)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoanRepo) TopToolsAllTime(ctx context.Context) ([]domain.ToolRanking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ToolRanking), args.Error(1)
}

func (m *MockLoanRepo) TopToolsByDateRange(ctx context.Context, start, end time.Time) ([]domain.ToolRanking, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ToolRanking), args.Error(1)
}
