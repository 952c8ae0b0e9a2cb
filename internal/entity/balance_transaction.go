package entity

import (
	"database/sql"

	"github.com/shopspring/decimal"
	"github.com/skinrally/backend/pkg/enum"
)

type BalanceTransactionType string

var (
	BalanceDeposit        = enum.New(BalanceTransactionType("deposit"))
	BalanceTicketPurchase = enum.New(BalanceTransactionType("ticket_purchase"))
	BalanceSaleProceeds   = enum.New(BalanceTransactionType("sale_proceeds"))
)

// BalanceTransaction is the audit trail of balance movements. Amount is
// signed: debits are negative, credits positive.
type BalanceTransaction struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Type     BalanceTransactionType
	Amount   decimal.Decimal `gorm:"type:decimal(16,2)"`
	RaffleID sql.NullString
	Metadata Map
}
