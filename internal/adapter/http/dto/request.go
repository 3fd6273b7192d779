package dto

import "github.com/shopspring/decimal"

// OpenAccountRequest represents a request to open an account. ID is optional;
// the bank generates the next sequential identifier when it is empty.
type OpenAccountRequest struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

// DepositRequest represents a cash deposit.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// TransferRequest represents a transfer between two accounts.
type TransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Memo          string          `json:"memo,omitempty"`
}
