package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateRaffleRequest struct {
	UserID string `json:"user_id"`

	ItemName     string  `json:"item_name"`
	ItemImageURL string  `json:"item_image_url"`
	ItemRarity   string  `json:"item_rarity"`
	ItemExterior string  `json:"item_exterior"`
	ItemFloat    float64 `json:"item_float"`
	IsStatTrak   bool    `json:"is_stattrak"`
	IsSouvenir   bool    `json:"is_souvenir"`

	TotalTickets int             `json:"total_tickets"`
	TicketPrice  decimal.Decimal `json:"ticket_price"`
	EndDate      time.Time       `json:"end_date"`
}

type CreateRaffleResponse struct {
	Raffle Raffle `json:"raffle"`
}

type GetRaffleRequest struct {
	RaffleID string `json:"raffle_id"`
}

type GetRaffleResponse struct {
	Raffle  Raffle        `json:"raffle"`
	Entries []RaffleEntry `json:"entries"`
}

type GetRafflesRequest struct {
	Status string `json:"status"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetRafflesResponse struct {
	Raffles []Raffle `json:"raffles"`
}

type BuyRaffleTicketsRequest struct {
	RaffleID    string `json:"raffle_id"`
	UserID      string `json:"user_id"`
	TicketCount int    `json:"ticket_count"`
}

type BuyRaffleTicketsResponse struct {
	Entry   RaffleEntry `json:"entry"`
	Message string      `json:"message"`
}

type DrawRaffleRequest struct {
	RaffleID string `json:"raffle_id"`
}

type DrawRaffleResponse struct {
	WinnerID     string `json:"winner_id"`
	WinnerTicket int    `json:"winner_ticket"`
	Raffle       Raffle `json:"raffle"`
}

type GetMyEntriesRequest struct {
	UserID string `json:"user_id"`
}

type GetMyEntriesResponse struct {
	Entries []RaffleEntry `json:"entries"`
}
