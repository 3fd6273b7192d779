package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/domain"
)

type transactionServiceStub struct {
	depositFn  func(accountID string, amount decimal.Decimal) bool
	transferFn func(debitID, creditID string, amount decimal.Decimal, memo string) bool
	interestFn func(accountID string) bool
	journalFn  func(count int) []domain.Transaction
}

func (s *transactionServiceStub) DepositCash(accountID string, amount decimal.Decimal) bool {
	return s.depositFn(accountID, amount)
}

func (s *transactionServiceStub) Transfer(debitID, creditID string, amount decimal.Decimal, memo string) bool {
	return s.transferFn(debitID, creditID, amount, memo)
}

func (s *transactionServiceStub) ApplyInterest(accountID string) bool {
	return s.interestFn(accountID)
}

func (s *transactionServiceStub) BankTransactions(count int) []domain.Transaction {
	return s.journalFn(count)
}

func TestTransactionHandler_Deposit(t *testing.T) {
	var capturedID string
	var capturedAmount decimal.Decimal
	h := NewTransactionHandler(&transactionServiceStub{
		depositFn: func(accountID string, amount decimal.Decimal) bool {
			capturedID, capturedAmount = accountID, amount
			return true
		},
	})

	body, _ := json.Marshal(dto.DepositRequest{Amount: decimal.NewFromInt(100)})
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/accounts/A000001/deposits", bytes.NewReader(body)), "id", "A000001")
	rec := httptest.NewRecorder()

	h.Deposit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if capturedID != "A000001" || !capturedAmount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected forwarded deposit, got id=%q amount=%s", capturedID, capturedAmount)
	}
}

func TestTransactionHandler_Deposit_Denied(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		depositFn: func(accountID string, amount decimal.Decimal) bool { return false },
	})

	body, _ := json.Marshal(dto.DepositRequest{Amount: decimal.NewFromInt(-1)})
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/accounts/A000001/deposits", bytes.NewReader(body)), "id", "A000001")
	rec := httptest.NewRecorder()

	h.Deposit(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestTransactionHandler_Transfer(t *testing.T) {
	var capturedMemo string
	h := NewTransactionHandler(&transactionServiceStub{
		transferFn: func(debitID, creditID string, amount decimal.Decimal, memo string) bool {
			capturedMemo = memo
			return true
		},
	})

	body, _ := json.Marshal(dto.TransferRequest{
		FromAccountID: "A000001",
		ToAccountID:   "A000002",
		Amount:        decimal.NewFromInt(50),
		Memo:          "rent",
	})
	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Transfer(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if capturedMemo != "rent" {
		t.Fatalf("expected memo to be forwarded, got %q", capturedMemo)
	}
}

func TestTransactionHandler_Transfer_Denied(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		transferFn: func(debitID, creditID string, amount decimal.Decimal, memo string) bool {
			return false
		},
	})

	body, _ := json.Marshal(dto.TransferRequest{
		FromAccountID: "A000001",
		ToAccountID:   "A000002",
		Amount:        decimal.NewFromInt(1000000),
	})
	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Transfer(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestTransactionHandler_ApplyInterest(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		interestFn: func(accountID string) bool { return accountID == "A000002" },
	})

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/accounts/A000002/interest", nil), "id", "A000002")
	rec := httptest.NewRecorder()
	h.ApplyInterest(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	req = withURLParam(httptest.NewRequest(http.MethodPost, "/accounts/A000001/interest", nil), "id", "A000001")
	rec = httptest.NewRecorder()
	h.ApplyInterest(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestTransactionHandler_Journal(t *testing.T) {
	from, to := "A000001", "A000002"
	var capturedCount int
	h := NewTransactionHandler(&transactionServiceStub{
		journalFn: func(count int) []domain.Transaction {
			capturedCount = count
			return []domain.Transaction{
				{ID: "01ABC", Timestamp: 1, From: &from, To: &to, Amount: decimal.NewFromInt(50), Memo: "rent"},
			}
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/journal?count=3", nil)
	rec := httptest.NewRecorder()

	h.Journal(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if capturedCount != 3 {
		t.Fatalf("expected count 3 to be forwarded, got %d", capturedCount)
	}

	var resp dto.JournalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 || resp.Transactions[0].Memo != "rent" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
