package transfer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "orus-accounts/internal/errors"
	"orus-accounts/internal/models"
	"orus-accounts/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyAboutTransfer(ctx context.Context, account models.Account, message string) {
	m.Called(account.AccountID, message)
}

type countingNotifier struct {
	calls atomic.Int64
}

func (c *countingNotifier) NotifyAboutTransfer(context.Context, models.Account, string) {
	c.calls.Add(1)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordTransfer(outcome string, amount decimal.Decimal) {
	m.Called(outcome, amount.String())
}

func (m *MockMetrics) RecordLockWait(d time.Duration) {
	m.Called(d)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seed(t *testing.T, repo repositories.AccountRepository, balances map[string]string) {
	t.Helper()
	for id, balance := range balances {
		require.NoError(t, repo.Create(models.NewAccount(id, dec(balance))))
	}
}

func balanceOf(t *testing.T, repo repositories.AccountRepository, id string) decimal.Decimal {
	t.Helper()
	acc, err := repo.Get(id)
	require.NoError(t, err)
	return acc.Balance
}

func TestTransferService_Scenario(t *testing.T) {
	repo := repositories.NewInMemoryAccountRepository()
	seed(t, repo, map[string]string{"A": "100", "B": "100"})

	notifier := new(MockNotifier)
	notifier.On("NotifyAboutTransfer", "A", "Amount debited 20").Once()
	notifier.On("NotifyAboutTransfer", "B", "Amount Credited 20").Once()

	svc := NewService(repo, notifier, Config{}, nil, nil)

	result, err := svc.Transfer(context.Background(), models.TransferRequest{
		AccountFromID: "A", AccountToID: "B", Amount: dec("20"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.TransferID)
	assert.True(t, result.FromBalance.Equal(dec("80")))
	assert.True(t, result.ToBalance.Equal(dec("120")))
	assert.True(t, balanceOf(t, repo, "A").Equal(dec("80")))
	assert.True(t, balanceOf(t, repo, "B").Equal(dec("120")))

	_, err = svc.Transfer(context.Background(), models.TransferRequest{
		AccountFromID: "A", AccountToID: "B", Amount: dec("200"),
	})
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.Equal(t, "Insufficient funds:: transfer amount 200 is greater than available balance 80", err.Error())
	assert.True(t, balanceOf(t, repo, "A").Equal(dec("80")))
	assert.True(t, balanceOf(t, repo, "B").Equal(dec("120")))

	notifier.AssertExpectations(t)
}

func TestTransferService_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     models.TransferRequest
		wantErr error
		outcome string
	}{
		{
			name:    "unknown source",
			req:     models.TransferRequest{AccountFromID: "nope", AccountToID: "B", Amount: dec("1")},
			wantErr: apperrors.ErrAccountNotFound,
			outcome: OutcomeNotFound,
		},
		{
			name:    "unknown destination",
			req:     models.TransferRequest{AccountFromID: "A", AccountToID: "nope", Amount: dec("1")},
			wantErr: apperrors.ErrAccountNotFound,
			outcome: OutcomeNotFound,
		},
		{
			name:    "zero amount",
			req:     models.TransferRequest{AccountFromID: "A", AccountToID: "B", Amount: dec("0")},
			wantErr: apperrors.ErrInvalidAmount,
			outcome: OutcomeInvalidAmount,
		},
		{
			name:    "negative amount",
			req:     models.TransferRequest{AccountFromID: "A", AccountToID: "B", Amount: dec("-25")},
			wantErr: apperrors.ErrInvalidAmount,
			outcome: OutcomeInvalidAmount,
		},
		{
			name:    "same account",
			req:     models.TransferRequest{AccountFromID: "A", AccountToID: "A", Amount: dec("5")},
			wantErr: apperrors.ErrSameAccount,
			outcome: OutcomeSameAccount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repositories.NewInMemoryAccountRepository()
			seed(t, repo, map[string]string{"A": "40.45", "B": "20.45"})

			// Hold both locks: validation failures must not need them.
			lockA, _ := repo.Lock("A")
			lockB, _ := repo.Lock("B")
			releaseA, err := lockA.TryAcquire(context.Background(), time.Second)
			require.NoError(t, err)
			defer releaseA()
			releaseB, err := lockB.TryAcquire(context.Background(), time.Second)
			require.NoError(t, err)
			defer releaseB()

			notifier := new(MockNotifier)
			metrics := new(MockMetrics)
			metrics.On("RecordTransfer", tt.outcome, tt.req.Amount.String()).Once()

			svc := NewService(repo, notifier, Config{LockTimeout: 10 * time.Millisecond}, metrics, nil)
			_, err = svc.Transfer(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, errors.Is(err, apperrors.ErrServerBusy))
			assert.True(t, balanceOf(t, repo, "A").Equal(dec("40.45")))
			assert.True(t, balanceOf(t, repo, "B").Equal(dec("20.45")))
			notifier.AssertNotCalled(t, "NotifyAboutTransfer", mock.Anything, mock.Anything)
			metrics.AssertExpectations(t)
		})
	}
}

func TestTransferService_ServerBusyWhenLockHeld(t *testing.T) {
	for _, ordering := range []string{OrderByAccountID, OrderFromTo} {
		t.Run(ordering, func(t *testing.T) {
			repo := repositories.NewInMemoryAccountRepository()
			seed(t, repo, map[string]string{"A": "100", "B": "100"})

			lockB, err := repo.Lock("B")
			require.NoError(t, err)
			release, err := lockB.TryAcquire(context.Background(), time.Second)
			require.NoError(t, err)
			defer release()

			notifier := new(MockNotifier)
			svc := NewService(repo, notifier, Config{LockTimeout: 30 * time.Millisecond, LockOrdering: ordering}, nil, nil)

			_, err = svc.Transfer(context.Background(), models.TransferRequest{
				AccountFromID: "A", AccountToID: "B", Amount: dec("10"),
			})
			require.ErrorIs(t, err, apperrors.ErrServerBusy)
			assert.Equal(t, apperrors.ServerBusyMessage, err.Error())

			assert.True(t, balanceOf(t, repo, "A").Equal(dec("100")))
			assert.True(t, balanceOf(t, repo, "B").Equal(dec("100")))
			notifier.AssertNotCalled(t, "NotifyAboutTransfer", mock.Anything, mock.Anything)

			// The source lock taken before the timeout must have been released.
			lockA, _ := repo.Lock("A")
			releaseA, err := lockA.TryAcquire(context.Background(), 0)
			require.NoError(t, err)
			releaseA()
		})
	}
}

func TestTransferService_CancelledContextIsServerBusy(t *testing.T) {
	repo := repositories.NewInMemoryAccountRepository()
	seed(t, repo, map[string]string{"A": "100", "B": "100"})

	lockA, _ := repo.Lock("A")
	release, err := lockA.TryAcquire(context.Background(), time.Second)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(repo, new(MockNotifier), Config{LockTimeout: time.Second}, nil, nil)
	_, err = svc.Transfer(ctx, models.TransferRequest{AccountFromID: "A", AccountToID: "B", Amount: dec("1")})

	assert.ErrorIs(t, err, apperrors.ErrServerBusy)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTransferService_LocksReleasedAfterInsufficientFunds(t *testing.T) {
	repo := repositories.NewInMemoryAccountRepository()
	seed(t, repo, map[string]string{"A": "20.45", "B": "40.45"})
	svc := NewService(repo, new(MockNotifier), Config{LockTimeout: 50 * time.Millisecond}, nil, nil)

	_, err := svc.Transfer(context.Background(), models.TransferRequest{AccountFromID: "A", AccountToID: "B", Amount: dec("25")})
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	for _, id := range []string{"A", "B"} {
		l, _ := repo.Lock(id)
		release, err := l.TryAcquire(context.Background(), 0)
		require.NoError(t, err, id)
		release()
	}
}

func TestTransferService_ConcurrentSameDirectionNoLostUpdates(t *testing.T) {
	repo := repositories.NewInMemoryAccountRepository()
	seed(t, repo, map[string]string{"X": "1000", "Y": "0"})
	notifier := &countingNotifier{}
	svc := NewService(repo, notifier, Config{LockTimeout: 5 * time.Second}, nil, nil)

	const n = 200
	var wg sync.WaitGroup
	var failures atomic.Int64
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Transfer(context.Background(), models.TransferRequest{
				AccountFromID: "X", AccountToID: "Y", Amount: dec("2.5"),
			})
			if err != nil {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Zero(t, failures.Load())
	assert.True(t, balanceOf(t, repo, "X").Equal(dec("500")), balanceOf(t, repo, "X").String())
	assert.True(t, balanceOf(t, repo, "Y").Equal(dec("500")), balanceOf(t, repo, "Y").String())
	assert.Equal(t, int64(2*n), notifier.calls.Load())
}

func TestTransferService_ConcurrentChainedTransfers(t *testing.T) {
	repo := repositories.NewInMemoryAccountRepository()
	seed(t, repo, map[string]string{"1": "100", "2": "100", "3": "100"})
	svc := NewService(repo, &countingNotifier{}, Config{LockTimeout: 5 * time.Second}, nil, nil)

	var wg sync.WaitGroup
	run := func(from, to string, amount string) {
		defer wg.Done()
		for i := 0; i < 5; i++ {
			_, err := svc.Transfer(context.Background(), models.TransferRequest{
				AccountFromID: from, AccountToID: to, Amount: dec(amount),
			})
			assert.NoError(t, err)
		}
	}
	wg.Add(2)
	go run("1", "2", "20")
	go run("2", "3", "10")
	wg.Wait()

	assert.True(t, balanceOf(t, repo, "1").Equal(dec("0")))
	assert.True(t, balanceOf(t, repo, "2").Equal(dec("150")))
	assert.True(t, balanceOf(t, repo, "3").Equal(dec("150")))
}

// runOpposing fires A->B and B->A transfers concurrently and returns the
// successful count per direction and the number of ServerBusy failures.
func runOpposing(t *testing.T, svc Service, rounds int) (okAB, okBA, busy int64) {
	t.Helper()

	var ab, ba, b atomic.Int64
	var wg sync.WaitGroup
	transfer := func(from, to string, ok *atomic.Int64) {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, err := svc.Transfer(context.Background(), models.TransferRequest{
				AccountFromID: from, AccountToID: to, Amount: dec("1"),
			})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, apperrors.ErrServerBusy):
				b.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}
	}

	for w := 0; w < 4; w++ {
		wg.Add(2)
		go transfer("A", "B", &ab)
		go transfer("B", "A", &ba)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("opposite-direction transfers deadlocked")
	}

	return ab.Load(), ba.Load(), b.Load()
}

func TestTransferService_OppositeDirectionsOrdered(t *testing.T) {
	repo := repositories.NewInMemoryAccountRepository()
	seed(t, repo, map[string]string{"A": "1000", "B": "1000"})
	svc := NewService(repo, &countingNotifier{}, Config{LockTimeout: 5 * time.Second, LockOrdering: OrderByAccountID}, nil, nil)

	okAB, okBA, busy := runOpposing(t, svc, 25)

	assert.Zero(t, busy)
	assert.Equal(t, int64(100), okAB)
	assert.Equal(t, int64(100), okBA)
	assert.True(t, balanceOf(t, repo, "A").Equal(dec("1000")))
	assert.True(t, balanceOf(t, repo, "B").Equal(dec("1000")))
}

func TestTransferService_OppositeDirectionsFromTo(t *testing.T) {
	repo := repositories.NewInMemoryAccountRepository()
	seed(t, repo, map[string]string{"A": "1000", "B": "1000"})
	svc := NewService(repo, &countingNotifier{}, Config{LockTimeout: 20 * time.Millisecond, LockOrdering: OrderFromTo}, nil, nil)

	okAB, okBA, busy := runOpposing(t, svc, 10)

	assert.Equal(t, int64(80), okAB+okBA+busy)

	// Every successful transfer moved exactly one unit; nothing was lost.
	wantA := dec("1000").Sub(decimal.NewFromInt(okAB)).Add(decimal.NewFromInt(okBA))
	wantB := dec("1000").Add(decimal.NewFromInt(okAB)).Sub(decimal.NewFromInt(okBA))
	assert.True(t, balanceOf(t, repo, "A").Equal(wantA))
	assert.True(t, balanceOf(t, repo, "B").Equal(wantB))
	assert.True(t, balanceOf(t, repo, "A").Add(balanceOf(t, repo, "B")).Equal(dec("2000")))
}

func TestNewService_Defaults(t *testing.T) {
	repo := repositories.NewInMemoryAccountRepository()

	svc := NewService(repo, new(MockNotifier), Config{LockOrdering: "sideways"}, nil, nil).(*service)
	assert.Equal(t, DefaultLockTimeout, svc.config.LockTimeout)
	assert.Equal(t, OrderByAccountID, svc.config.LockOrdering)

	assert.Panics(t, func() { NewService(nil, new(MockNotifier), Config{}, nil, nil) })
	assert.Panics(t, func() { NewService(repo, nil, Config{}, nil, nil) })
}

func TestLockTargets_Ordering(t *testing.T) {
	repo := repositories.NewInMemoryAccountRepository()
	seed(t, repo, map[string]string{"alpha": "1", "beta": "1"})

	ordered := NewService(repo, new(MockNotifier), Config{LockOrdering: OrderByAccountID}, nil, nil).(*service)
	first, second, err := ordered.lockTargets("beta", "alpha")
	require.NoError(t, err)
	assert.Equal(t, "alpha", first.accountID)
	assert.Equal(t, "beta", second.accountID)

	fromTo := NewService(repo, new(MockNotifier), Config{LockOrdering: OrderFromTo}, nil, nil).(*service)
	first, second, err = fromTo.lockTargets("beta", "alpha")
	require.NoError(t, err)
	assert.Equal(t, "beta", first.accountID)
	assert.Equal(t, "alpha", second.accountID)
}
