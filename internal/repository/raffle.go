package repository

import (
	"context"
	"time"

	"github.com/skinrally/backend/internal/entity"
	"github.com/skinrally/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListRaffleFilter struct {
	Status entity.RaffleStatus
	Offset int
	Limit  int
}

type RaffleRepository interface {
	Create(ctx context.Context, raffle *entity.Raffle) error
	GetByID(ctx context.Context, id string) (*entity.Raffle, error)
	GetList(ctx context.Context, filter GetListRaffleFilter) ([]entity.Raffle, error)
	IncreaseSoldTickets(ctx context.Context, raffleID string, count int) error
	TransitionToDrawing(ctx context.Context, raffleID string, drawDate time.Time) error
	Complete(ctx context.Context, raffleID, winnerID string, winnerTicket int, completedAt time.Time) error
}

type raffleRepository struct{}

func NewRaffleRepository() *raffleRepository {
	return &raffleRepository{}
}

func (r *raffleRepository) Create(ctx context.Context, raffle *entity.Raffle) error {
	return xcontext.DB(ctx).Create(raffle).Error
}

func (r *raffleRepository) GetByID(ctx context.Context, id string) (*entity.Raffle, error) {
	var result entity.Raffle
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *raffleRepository) GetList(
	ctx context.Context, filter GetListRaffleFilter,
) ([]entity.Raffle, error) {
	tx := xcontext.DB(ctx).Order("created_at DESC")
	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	var result []entity.Raffle
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// IncreaseSoldTickets reserves count tickets. The condition serializes
// concurrent purchases on the raffle row and rejects over-allocation; a
// zero-row update surfaces as gorm.ErrRecordNotFound.
func (r *raffleRepository) IncreaseSoldTickets(ctx context.Context, raffleID string, count int) error {
	tx := xcontext.DB(ctx).Model(&entity.Raffle{}).
		Where("id=? AND status=? AND sold_tickets + ? <= total_tickets",
			raffleID, entity.RaffleActive, count).
		Update("sold_tickets", gorm.Expr("sold_tickets+?", count))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// TransitionToDrawing is a no-op returning gorm.ErrRecordNotFound if the
// raffle already left the active state or is not fully sold.
func (r *raffleRepository) TransitionToDrawing(
	ctx context.Context, raffleID string, drawDate time.Time,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Raffle{}).
		Where("id=? AND status=? AND sold_tickets >= total_tickets",
			raffleID, entity.RaffleActive).
		Updates(map[string]any{
			"status":    entity.RaffleDrawing,
			"draw_date": drawDate,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *raffleRepository) Complete(
	ctx context.Context, raffleID, winnerID string, winnerTicket int, completedAt time.Time,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Raffle{}).
		Where("id=? AND status=?", raffleID, entity.RaffleDrawing).
		Updates(map[string]any{
			"status":        entity.RaffleCompleted,
			"winner_id":     winnerID,
			"winner_ticket": winnerTicket,
			"completed_at":  completedAt,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
