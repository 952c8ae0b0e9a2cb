package domain

import (
	"sort"
	"sync"
	"testing"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/skinrally/backend/internal/entity"
	"github.com/skinrally/backend/internal/model"
	"github.com/skinrally/backend/internal/repository"
	"github.com/skinrally/backend/pkg/errorx"
	"github.com/skinrally/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newTestUserDomain() *userDomain {
	return NewUserDomain(
		repository.NewUserRepository(),
		repository.NewBalanceTransactionRepository(),
	)
}

func Test_userDomain_Get(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestUserDomain()

	resp, err := d.Get(ctx, &model.GetUserRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.Name, resp.Name)
	require.Equal(t, "1000", resp.Balance)

	_, err = d.Get(ctx, &model.GetUserRequest{UserID: "ghost"})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found user"), err)
}

func Test_userDomain_Deposit(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestUserDomain()

	resp, err := d.Deposit(ctx, &model.DepositRequest{
		UserID:  testutil.User3.ID,
		Amount:  decimal.RequireFromString("12.5"),
		Gateway: "stripe",
	})
	require.NoError(t, err)
	require.Equal(t, "12.5", resp.Balance)

	user, err := d.userRepo.GetByID(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.True(t, user.Balance.Equal(decimal.RequireFromString("12.5")))

	transactions, err := d.balanceTxRepo.GetByUserID(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	require.Equal(t, entity.BalanceDeposit, transactions[0].Type)
	require.True(t, transactions[0].Amount.Equal(decimal.RequireFromString("12.5")))

	var metadata model.DepositMetadata
	require.NoError(t, mapstructure.Decode(map[string]any(transactions[0].Metadata), &metadata))
	require.Equal(t, "stripe", metadata.Gateway)
	require.NotEmpty(t, metadata.Reference)
}

func Test_userDomain_Deposit_concurrent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestUserDomain()

	// Five racing deposits of 10 each. Every response must report the
	// balance its own transaction produced, not the stale pre-transaction
	// read, so the reported balances form the exact ladder 10..50.
	var mu sync.Mutex
	var balances []string

	var group errgroup.Group
	for i := 0; i < 5; i++ {
		group.Go(func() error {
			resp, err := d.Deposit(ctx, &model.DepositRequest{
				UserID: testutil.User3.ID,
				Amount: decimal.NewFromInt(10),
			})
			if err != nil {
				return err
			}

			mu.Lock()
			balances = append(balances, resp.Balance)
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, group.Wait())

	sort.Strings(balances)
	require.Equal(t, []string{"10", "20", "30", "40", "50"}, balances)

	user, err := d.userRepo.GetByID(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.True(t, user.Balance.Equal(decimal.NewFromInt(50)))
}

func Test_userDomain_Deposit_rejections(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestUserDomain()

	_, err := d.Deposit(ctx, &model.DepositRequest{
		UserID: testutil.User3.ID, Amount: decimal.Zero,
	})
	require.ErrorContains(t, err, "Amount must be positive")

	_, err = d.Deposit(ctx, &model.DepositRequest{
		UserID: testutil.User3.ID, Amount: decimal.NewFromInt(-10),
	})
	require.ErrorContains(t, err, "Amount must be positive")

	_, err = d.Deposit(ctx, &model.DepositRequest{
		UserID: testutil.User3.ID, Amount: decimal.NewFromInt(1000001),
	})
	require.ErrorContains(t, err, "Amount must be positive and at most")

	_, err = d.Deposit(ctx, &model.DepositRequest{
		UserID: "ghost", Amount: decimal.NewFromInt(10),
	})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found user"), err)
}

func Test_userDomain_GetBalanceTransactions(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestUserDomain()

	_, err := d.Deposit(ctx, &model.DepositRequest{
		UserID: testutil.User2.ID, Amount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	resp, err := d.GetBalanceTransactions(ctx, &model.GetBalanceTransactionsRequest{
		UserID: testutil.User2.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 1)
	require.Equal(t, string(entity.BalanceDeposit), resp.Transactions[0].Type)

	_, err = d.GetBalanceTransactions(ctx, &model.GetBalanceTransactionsRequest{})
	require.Equal(t, errorx.New(errorx.BadRequest, "Require a user id"), err)
}
