package repository

import (
	"context"

	"github.com/skinrally/backend/internal/entity"
	"github.com/skinrally/backend/pkg/xcontext"
)

type BalanceTransactionRepository interface {
	Create(ctx context.Context, tx *entity.BalanceTransaction) error
	GetByUserID(ctx context.Context, userID string) ([]entity.BalanceTransaction, error)
}

type balanceTransactionRepository struct{}

func NewBalanceTransactionRepository() *balanceTransactionRepository {
	return &balanceTransactionRepository{}
}

func (r *balanceTransactionRepository) Create(
	ctx context.Context, tx *entity.BalanceTransaction,
) error {
	return xcontext.DB(ctx).Create(tx).Error
}

func (r *balanceTransactionRepository) GetByUserID(
	ctx context.Context, userID string,
) ([]entity.BalanceTransaction, error) {
	var result []entity.BalanceTransaction
	err := xcontext.DB(ctx).Order("created_at DESC").
		Find(&result, "user_id=?", userID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
