package model

import (
	"time"

	"github.com/skinrally/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertShortUser(user *entity.User) ShortUser {
	if user == nil {
		return ShortUser{}
	}

	return ShortUser{
		ID:        user.ID,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}
}

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:        user.ID,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		Balance:   user.Balance.String(),
		CreatedAt: user.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertRaffle(raffle *entity.Raffle, creator ShortUser) Raffle {
	if raffle == nil {
		return Raffle{}
	}

	if creator.ID == "" {
		creator.ID = raffle.CreatorID
	}

	result := Raffle{
		ID:           raffle.ID,
		Creator:      creator,
		ItemName:     raffle.ItemName,
		ItemImageURL: raffle.ItemImageURL,
		ItemRarity:   raffle.ItemRarity,
		ItemExterior: raffle.ItemExterior,
		ItemFloat:    raffle.ItemFloat,
		IsStatTrak:   raffle.IsStatTrak,
		IsSouvenir:   raffle.IsSouvenir,
		TotalTickets: raffle.TotalTickets,
		TicketPrice:  raffle.TicketPrice.String(),
		TotalValue:   raffle.TotalValue.String(),
		SoldTickets:  raffle.SoldTickets,
		Status:       string(raffle.Status),
		EndDate:      raffle.EndDate.Format(DefaultTimeLayout),
		CreatedAt:    raffle.CreatedAt.Format(DefaultTimeLayout),
	}

	if raffle.DrawDate.Valid {
		result.DrawDate = raffle.DrawDate.Time.Format(DefaultTimeLayout)
	}

	if raffle.WinnerID.Valid {
		result.WinnerID = raffle.WinnerID.String
	}

	if raffle.WinnerTicket.Valid {
		result.WinnerTicket = int(raffle.WinnerTicket.Int64)
	}

	if raffle.CompletedAt.Valid {
		result.CompletedAt = raffle.CompletedAt.Time.Format(DefaultTimeLayout)
	}

	return result
}

func ConvertRaffleEntry(entry *entity.RaffleEntry, buyer ShortUser) RaffleEntry {
	if entry == nil {
		return RaffleEntry{}
	}

	if buyer.ID == "" {
		buyer.ID = entry.BuyerID
	}

	return RaffleEntry{
		ID:          entry.ID,
		RaffleID:    entry.RaffleID,
		Buyer:       buyer,
		Tickets:     entry.Tickets,
		TicketCount: entry.TicketCount,
		Amount:      entry.Amount.String(),
		IsWinner:    entry.IsWinner,
		CreatedAt:   entry.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertBalanceTransaction(tx *entity.BalanceTransaction) BalanceTransaction {
	if tx == nil {
		return BalanceTransaction{}
	}

	result := BalanceTransaction{
		ID:        tx.ID,
		Type:      string(tx.Type),
		Amount:    tx.Amount.String(),
		Metadata:  tx.Metadata,
		CreatedAt: tx.CreatedAt.Format(DefaultTimeLayout),
	}

	if tx.RaffleID.Valid {
		result.RaffleID = tx.RaffleID.String
	}

	return result
}
