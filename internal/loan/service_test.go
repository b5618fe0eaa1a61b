package loan_test

import (
	"context"
	"testing"
	"time"

	"libraryapi/internal/loan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ExistsActiveByBook(ctx context.Context, bookID int64) (bool, error) {
	args := m.Called(ctx, bookID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (loan.Loan, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(loan.Loan), args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, l *loan.Loan) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *mockRepo) Update(ctx context.Context, l *loan.Loan) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *mockRepo) List(ctx context.Context, f loan.Filter, limit, offset int) ([]loan.Loan, int, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]loan.Loan), args.Int(1), args.Error(2)
}

func (m *mockRepo) ListByBook(ctx context.Context, bookID int64, limit, offset int) ([]loan.Loan, int, error) {
	args := m.Called(ctx, bookID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]loan.Loan), args.Int(1), args.Error(2)
}

func (m *mockRepo) ListOverdue(ctx context.Context, before time.Time) ([]loan.Loan, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]loan.Loan), args.Error(1)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns identity and defaults the loan date", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("ExistsActiveByBook", mock.Anything, int64(1)).Return(false, nil)
		repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*loan.Loan).ID = 5
		}).Return(nil)

		created, err := loan.NewService(repo).Create(ctx, loan.Loan{
			Customer:      "Fulano",
			CustomerEmail: "customer@email.com",
			BookID:        1,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(5), created.ID)
		assert.WithinDuration(t, time.Now(), created.LoanDate, time.Minute)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a book with an active loan", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("ExistsActiveByBook", mock.Anything, int64(1)).Return(true, nil)

		_, err := loan.NewService(repo).Create(ctx, loan.Loan{
			Customer: "Ciclano",
			BookID:   1,
		})

		require.ErrorIs(t, err, loan.ErrBookAlreadyLoaned)
		assert.Equal(t, "Book already loaned.", err.Error())
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("keeps an explicit loan date", func(t *testing.T) {
		date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		repo := new(mockRepo)
		repo.On("ExistsActiveByBook", mock.Anything, int64(1)).Return(false, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(l *loan.Loan) bool {
			return l.LoanDate.Equal(date)
		})).Return(nil)

		_, err := loan.NewService(repo).Create(ctx, loan.Loan{BookID: 1, Customer: "F", LoanDate: date})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestService_Update_FlipsReturnedFlag(t *testing.T) {
	returned := true
	repo := new(mockRepo)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(l *loan.Loan) bool {
		return l.ID == 5 && l.Returned != nil && *l.Returned
	})).Return(nil)

	updated, err := loan.NewService(repo).Update(context.Background(), loan.Loan{
		ID:       5,
		Customer: "Fulano",
		Returned: &returned,
	})

	require.NoError(t, err)
	assert.False(t, updated.Active())
	repo.AssertExpectations(t)
}

func TestService_Overdue(t *testing.T) {
	threshold := time.Now().AddDate(0, 0, -4)
	overdueLoan := loan.Loan{ID: 9, LoanDate: time.Now().AddDate(0, 0, -5)}

	repo := new(mockRepo)
	repo.On("ListOverdue", mock.Anything, threshold).Return([]loan.Loan{overdueLoan}, nil)

	loans, err := loan.NewService(repo).Overdue(context.Background(), threshold)

	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, int64(9), loans[0].ID)
}

func TestLoan_Active(t *testing.T) {
	f, tr := false, true

	assert.True(t, loan.Loan{}.Active(), "nil returned means active")
	assert.True(t, loan.Loan{Returned: &f}.Active(), "false returned means active")
	assert.False(t, loan.Loan{Returned: &tr}.Active())
}
