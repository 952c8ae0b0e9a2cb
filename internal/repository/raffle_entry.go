package repository

import (
	"context"

	"github.com/skinrally/backend/internal/entity"
	"github.com/skinrally/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RaffleEntryRepository interface {
	Create(ctx context.Context, entry *entity.RaffleEntry) error
	GetByRaffleID(ctx context.Context, raffleID string) ([]entity.RaffleEntry, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.RaffleEntry, error)
	SetWinner(ctx context.Context, entryID string) error
}

type raffleEntryRepository struct{}

func NewRaffleEntryRepository() *raffleEntryRepository {
	return &raffleEntryRepository{}
}

func (r *raffleEntryRepository) Create(ctx context.Context, entry *entity.RaffleEntry) error {
	return xcontext.DB(ctx).Create(entry).Error
}

func (r *raffleEntryRepository) GetByRaffleID(
	ctx context.Context, raffleID string,
) ([]entity.RaffleEntry, error) {
	var result []entity.RaffleEntry
	err := xcontext.DB(ctx).Order("created_at ASC").
		Find(&result, "raffle_id=?", raffleID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *raffleEntryRepository) GetByUserID(
	ctx context.Context, userID string,
) ([]entity.RaffleEntry, error) {
	var result []entity.RaffleEntry
	err := xcontext.DB(ctx).Order("created_at DESC").
		Find(&result, "buyer_id=?", userID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *raffleEntryRepository) SetWinner(ctx context.Context, entryID string) error {
	tx := xcontext.DB(ctx).Model(&entity.RaffleEntry{}).
		Where("id=? AND is_winner=?", entryID, false).
		Update("is_winner", true)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
