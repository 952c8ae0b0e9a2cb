package testutil

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skinrally/backend/internal/entity"
	"github.com/skinrally/backend/internal/repository"
)

var (
	User1 = entity.User{
		Base:    entity.Base{ID: "user1"},
		Name:    "creator",
		Balance: decimal.NewFromInt(100),
	}

	User2 = entity.User{
		Base:    entity.Base{ID: "user2"},
		Name:    "buyer",
		Balance: decimal.NewFromInt(1000),
	}

	User3 = entity.User{
		Base:    entity.Base{ID: "user3"},
		Name:    "broke",
		Balance: decimal.Zero,
	}

	Raffle1 = entity.Raffle{
		Base:         entity.Base{ID: "raffle1"},
		CreatorID:    User1.ID,
		ItemName:     "AK-47 | Redline",
		ItemRarity:   "Classified",
		ItemExterior: "Field-Tested",
		ItemFloat:    0.21,
		TotalTickets: 50,
		TicketPrice:  decimal.NewFromInt(10),
		TotalValue:   decimal.NewFromInt(500),
		Status:       entity.RaffleActive,
		EndDate:      time.Now().Add(24 * time.Hour),
	}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertRaffles(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()

	for _, user := range []entity.User{User1, User2, User3} {
		user := user
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func InsertRaffles(ctx context.Context) {
	raffleRepo := repository.NewRaffleRepository()

	raffle := Raffle1
	if err := raffleRepo.Create(ctx, &raffle); err != nil {
		panic(err)
	}
}
