package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/bank"
	"github.com/iho/gobank/internal/domain"
)

// AccountService defines the account operations needed by AccountHandler.
type AccountService interface {
	OpenAccount(accountType, accountID string) (*domain.Account, error)
	Account(accountID string) (bank.AccountInfo, bool)
	ListAccounts() []bank.AccountInfo
	AccountTransactions(accountID string, count int) ([]domain.TransactionEntry, bool)
	CloseAccount(accountID string) bool
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	svc AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc AccountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// Open opens a new account.
func (h *AccountHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.svc.OpenAccount(req.Type, req.ID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to open account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves one account.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	info, ok := h.svc.Account(id)
	if !ok {
		writeError(w, http.StatusNotFound, "account not found", id)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromInfo(info))
}

// Balance reports one account balance.
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	info, ok := h.svc.Account(id)
	if !ok {
		writeError(w, http.StatusNotFound, "account not found", id)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountID: info.ID,
		Balance:   info.Balance,
	})
}

// List lists all accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	infos := h.svc.ListAccounts()

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromInfo(infos),
		Total:    len(infos),
	})
}

// Entries lists an account's history, most-recent-last. The optional "count"
// query parameter limits the result to the most recent N entries.
func (h *AccountHandler) Entries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entries, ok := h.svc.AccountTransactions(id, parseCountQuery(r))
	if !ok {
		writeError(w, http.StatusNotFound, "account not found", id)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   len(entries),
	})
}

// Close closes an account. Closing requires a zero balance.
func (h *AccountHandler) Close(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !h.svc.CloseAccount(id) {
		writeDenied(w, "account unknown, inactive, or carrying a non-zero balance")
		return
	}

	writeJSON(w, http.StatusOK, dto.StatusResponse{Status: "closed"})
}
