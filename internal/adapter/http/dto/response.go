package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/bank"
	"github.com/iho/gobank/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID           string           `json:"id"`
	Balance      decimal.Decimal  `json:"balance"`
	Active       bool             `json:"active"`
	InterestRate *decimal.Decimal `json:"interest_rate,omitempty"`
}

// AccountFromDomain converts a freshly opened account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	resp := &AccountResponse{
		ID:      a.ID(),
		Balance: a.Balance(),
		Active:  a.IsActive(),
	}
	if terms := a.Interest(); terms != nil {
		rate := terms.Rate
		resp.InterestRate = &rate
	}

	return resp
}

// AccountFromInfo converts an account snapshot to a response.
func AccountFromInfo(info bank.AccountInfo) *AccountResponse {
	return &AccountResponse{
		ID:           info.ID,
		Balance:      info.Balance,
		Active:       info.Active,
		InterestRate: info.InterestRate,
	}
}

// AccountsFromInfo converts account snapshots to responses.
func AccountsFromInfo(infos []bank.AccountInfo) []*AccountResponse {
	result := make([]*AccountResponse, len(infos))
	for i, info := range infos {
		result[i] = AccountFromInfo(info)
	}

	return result
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int                `json:"total"`
}

// EntryResponse represents one per-account history entry.
type EntryResponse struct {
	Timestamp    int64           `json:"timestamp"`
	Counterparty *string         `json:"counterparty,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Memo         string          `json:"memo,omitempty"`
}

// EntriesFromDomain converts history entries to responses.
func EntriesFromDomain(entries []domain.TransactionEntry) []EntryResponse {
	result := make([]EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryResponse{
			Timestamp:    e.Timestamp,
			Counterparty: e.Counterparty,
			Amount:       e.Amount,
			Memo:         e.Memo,
		}
	}

	return result
}

// ListEntriesResponse wraps a per-account history listing.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
	Total   int             `json:"total"`
}

// TransactionResponse represents one global journal record.
type TransactionResponse struct {
	ID            string          `json:"id"`
	Timestamp     int64           `json:"timestamp"`
	FromAccountID *string         `json:"from_account_id,omitempty"`
	ToAccountID   *string         `json:"to_account_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Memo          string          `json:"memo,omitempty"`
}

// TransactionsFromDomain converts journal records to responses.
func TransactionsFromDomain(transactions []domain.Transaction) []TransactionResponse {
	result := make([]TransactionResponse, len(transactions))
	for i, tx := range transactions {
		result[i] = TransactionResponse{
			ID:            tx.ID,
			Timestamp:     tx.Timestamp,
			FromAccountID: tx.From,
			ToAccountID:   tx.To,
			Amount:        tx.Amount,
			Memo:          tx.Memo,
		}
	}

	return result
}

// JournalResponse wraps a journal listing.
type JournalResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

// BalanceResponse reports one account balance.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// StatusResponse reports the outcome of a state-changing operation.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
