package domain

import (
	"context"
	"errors"

	"github.com/fatih/structs"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skinrally/backend/internal/entity"
	"github.com/skinrally/backend/internal/model"
	"github.com/skinrally/backend/internal/repository"
	"github.com/skinrally/backend/pkg/errorx"
	"github.com/skinrally/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// maxDepositAmount bounds a single mock-gateway deposit.
var maxDepositAmount = decimal.NewFromInt(1000000)

type UserDomain interface {
	Get(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
	Deposit(context.Context, *model.DepositRequest) (*model.DepositResponse, error)
	GetBalanceTransactions(context.Context, *model.GetBalanceTransactionsRequest) (*model.GetBalanceTransactionsResponse, error)
}

type userDomain struct {
	userRepo      repository.UserRepository
	balanceTxRepo repository.BalanceTransactionRepository
}

func NewUserDomain(
	userRepo repository.UserRepository,
	balanceTxRepo repository.BalanceTransactionRepository,
) *userDomain {
	return &userDomain{
		userRepo:      userRepo,
		balanceTxRepo: balanceTxRepo,
	}
}

func (d *userDomain) Get(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetUserResponse(model.ConvertUser(user))
	return &resp, nil
}

// Deposit credits the user's balance as if a payment gateway had settled.
// The gateway integration is mocked; the credit and its audit row are still
// applied atomically.
func (d *userDomain) Deposit(
	ctx context.Context, req *model.DepositRequest,
) (*model.DepositResponse, error) {
	if !req.Amount.IsPositive() || req.Amount.GreaterThan(maxDepositAmount) {
		return nil, errorx.New(errorx.BadRequest,
			"Amount must be positive and at most %s", maxDepositAmount)
	}

	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	gateway := req.Gateway
	if gateway == "" {
		gateway = "mock"
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userRepo.IncreaseBalance(ctx, user.ID, req.Amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot credit user: %v", err)
		return nil, errorx.Unknown
	}

	deposit := &entity.BalanceTransaction{
		Base:   entity.Base{ID: uuid.NewString()},
		UserID: user.ID,
		Type:   entity.BalanceDeposit,
		Amount: req.Amount,
		Metadata: structs.Map(model.DepositMetadata{
			Gateway:   gateway,
			Reference: uuid.NewString(),
		}),
	}

	if err := d.balanceTxRepo.Create(ctx, deposit); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record deposit: %v", err)
		return nil, errorx.Unknown
	}

	// The pre-transaction read may be stale under concurrent mutations; the
	// reported balance comes from the transaction itself.
	user, err = d.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user after the credit: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	return &model.DepositResponse{Balance: user.Balance.String()}, nil
}

func (d *userDomain) GetBalanceTransactions(
	ctx context.Context, req *model.GetBalanceTransactionsRequest,
) (*model.GetBalanceTransactionsResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a user id")
	}

	transactions, err := d.balanceTxRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get balance transactions: %v", err)
		return nil, errorx.Unknown
	}

	clientTransactions := []model.BalanceTransaction{}
	for i := range transactions {
		clientTransactions = append(clientTransactions, model.ConvertBalanceTransaction(&transactions[i]))
	}

	return &model.GetBalanceTransactionsResponse{Transactions: clientTransactions}, nil
}
