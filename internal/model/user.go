package model

import "github.com/shopspring/decimal"

type GetUserRequest struct {
	UserID string `json:"user_id"`
}

type GetUserResponse User

type DepositRequest struct {
	UserID  string          `json:"user_id"`
	Amount  decimal.Decimal `json:"amount"`
	Gateway string          `json:"gateway"`
}

type DepositResponse struct {
	Balance string `json:"balance"`
}

type GetBalanceTransactionsRequest struct {
	UserID string `json:"user_id"`
}

type GetBalanceTransactionsResponse struct {
	Transactions []BalanceTransaction `json:"transactions"`
}
