package migration

import (
	"context"

	"github.com/skinrally/backend/internal/entity"
	"github.com/skinrally/backend/pkg/xcontext"
)

func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Raffle{},
		&entity.RaffleEntry{},
		&entity.BalanceTransaction{},
	)
}
