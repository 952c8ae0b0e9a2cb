package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/skinrally/backend/internal/entity"
	"github.com/skinrally/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	IncreaseBalance(ctx context.Context, userID string, amount decimal.Decimal) error
	DecreaseBalance(ctx context.Context, userID string, amount decimal.Decimal) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) IncreaseBalance(
	ctx context.Context, userID string, amount decimal.Decimal,
) error {
	tx := xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=?", userID).
		Update("balance", gorm.Expr("balance+?", amount))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DecreaseBalance fails with gorm.ErrRecordNotFound if the balance would go
// negative.
func (r *userRepository) DecreaseBalance(
	ctx context.Context, userID string, amount decimal.Decimal,
) error {
	tx := xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance-?", amount))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
