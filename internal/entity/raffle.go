package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skinrally/backend/pkg/enum"
)

type RaffleStatus string

// A raffle only moves forward: active -> drawing -> completed.
var (
	RaffleActive    = enum.New(RaffleStatus("active"))
	RaffleDrawing   = enum.New(RaffleStatus("drawing"))
	RaffleCompleted = enum.New(RaffleStatus("completed"))
)

type Raffle struct {
	Base

	CreatorID string
	Creator   User `gorm:"foreignKey:CreatorID"`

	ItemName     string
	ItemImageURL string
	ItemRarity   string
	ItemExterior string
	ItemFloat    float64
	IsStatTrak   bool
	IsSouvenir   bool

	TotalTickets int
	TicketPrice  decimal.Decimal `gorm:"type:decimal(16,2)"`
	TotalValue   decimal.Decimal `gorm:"type:decimal(16,2)"`
	SoldTickets  int

	Status  RaffleStatus `gorm:"default:active"`
	EndDate time.Time

	// DrawDate is set once on the transition to drawing. Winner fields and
	// CompletedAt are set once on the transition to completed.
	DrawDate     sql.NullTime
	WinnerID     sql.NullString
	WinnerTicket sql.NullInt64
	CompletedAt  sql.NullTime
}

// RaffleEntry records one purchase. Tickets holds the numbers assigned by
// that purchase; a number belongs to at most one entry of a raffle.
type RaffleEntry struct {
	Base

	RaffleID string
	Raffle   Raffle `gorm:"foreignKey:RaffleID"`

	BuyerID string
	Buyer   User `gorm:"foreignKey:BuyerID"`

	Tickets     Array[int]
	TicketCount int
	Amount      decimal.Decimal `gorm:"type:decimal(16,2)"`
	IsWinner    bool
}
