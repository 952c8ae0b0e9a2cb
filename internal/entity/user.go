package entity

import "github.com/shopspring/decimal"

type User struct {
	Base

	Name      string `gorm:"unique"`
	AvatarURL string

	// Balance never goes negative; every mutation happens through a guarded
	// update inside a transaction.
	Balance decimal.Decimal `gorm:"type:decimal(16,2)"`
}
