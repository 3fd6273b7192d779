package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/domain"
)

// TransactionService defines the ledger operations needed by
// TransactionHandler.
type TransactionService interface {
	DepositCash(accountID string, amount decimal.Decimal) bool
	Transfer(debitID, creditID string, amount decimal.Decimal, memo string) bool
	ApplyInterest(accountID string) bool
	BankTransactions(count int) []domain.Transaction
}

// TransactionHandler handles deposits, transfers, interest accrual and
// journal queries.
type TransactionHandler struct {
	svc TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// Deposit books a cash deposit on an account.
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.DepositRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if !h.svc.DepositCash(id, req.Amount) {
		writeDenied(w, "account unknown or inactive, or amount not positive")
		return
	}

	writeJSON(w, http.StatusCreated, dto.StatusResponse{Status: "booked"})
}

// Transfer moves money between two accounts, fees included.
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if !h.svc.Transfer(req.FromAccountID, req.ToAccountID, req.Amount, req.Memo) {
		writeDenied(w, "transfer denied by account state, amount, or withdrawal policy")
		return
	}

	writeJSON(w, http.StatusCreated, dto.StatusResponse{Status: "booked"})
}

// ApplyInterest accrues one interest period on an interest-bearing account.
func (h *TransactionHandler) ApplyInterest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !h.svc.ApplyInterest(id) {
		writeDenied(w, "account unknown, inactive, not interest-bearing, or nothing to accrue")
		return
	}

	writeJSON(w, http.StatusCreated, dto.StatusResponse{Status: "booked"})
}

// Journal lists the global journal, most-recent-last. The optional "count"
// query parameter limits the result to the most recent N records.
func (h *TransactionHandler) Journal(w http.ResponseWriter, r *http.Request) {
	transactions := h.svc.BankTransactions(parseCountQuery(r))

	writeJSON(w, http.StatusOK, dto.JournalResponse{
		Transactions: dto.TransactionsFromDomain(transactions),
		Total:        len(transactions),
	})
}
