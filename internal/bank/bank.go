package bank

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/metrics"
)

// FeeAccountID is the bank's internal fee-collection account. It carries the
// NoWithdrawal policy, so no transfer can ever debit it.
const FeeAccountID = "FEE-0001"

// Factory builds an account of one registered type.
type Factory func(id string) *domain.Account

// Bank owns the account registry, the logical clock and the global journal.
// Every instance is fully independent state; two banks never share a registry
// or a clock.
//
// All operations hold one exclusive lock. Transfer is a check-then-mutate
// sequence over account balances and the registry, which is unsafe under
// concurrent callers without it.
type Bank struct {
	mu         sync.Mutex
	logger     zerolog.Logger
	accounts   map[string]*domain.Account
	journal    []domain.Transaction
	clock      int64
	idCounter  int
	factories  map[string]Factory
	feeAccount *domain.Account
}

// AccountInfo is a point-in-time snapshot of one account.
type AccountInfo struct {
	ID           string
	Balance      decimal.Decimal
	Active       bool
	InterestRate *decimal.Decimal
}

// New creates a bank with the built-in account types registered: youth (no
// overdraft, no fee), savings (no overdraft, no fee, 1% interest) and private
// (500 overdraft, 1% fee).
func New(logger zerolog.Logger) *Bank {
	b := &Bank{
		logger:    logger,
		accounts:  make(map[string]*domain.Account),
		factories: make(map[string]Factory),
		idCounter: 1,
	}

	b.RegisterAccountType("youth", func(id string) *domain.Account {
		return domain.NewAccount(id, domain.NoOverdraft{}, domain.NoFee{})
	})
	b.RegisterAccountType("savings", func(id string) *domain.Account {
		return domain.NewSavingsAccount(id, decimal.RequireFromString("0.01"))
	})
	b.RegisterAccountType("private", func(id string) *domain.Account {
		return domain.NewAccount(id,
			domain.Overdraft{Limit: decimal.NewFromInt(500)},
			domain.PercentageFee{Rate: decimal.RequireFromString("0.01")})
	})

	b.feeAccount = domain.NewAccount(FeeAccountID, domain.NoWithdrawal{}, domain.NoFee{})
	b.accounts[FeeAccountID] = b.feeAccount

	return b
}

// RegisterAccountType registers a factory under a case-insensitive type name,
// replacing any previous registration of the same name.
func (b *Bank) RegisterAccountType(name string, factory Factory) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.factories[strings.ToLower(name)] = factory
}

// OpenAccount creates and registers an account of the given type. When
// accountID is empty the next sequential identifier is generated. An
// unregistered type yields ErrUnknownAccountType, an already-registered
// explicit ID yields ErrDuplicateAccountID; neither touches the registry.
func (b *Bank) OpenAccount(accountType, accountID string) (*domain.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	factory, ok := b.factories[strings.ToLower(accountType)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAccountType, accountType)
	}

	if accountID == "" {
		accountID = b.nextAccountID()
	} else if _, exists := b.accounts[accountID]; exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateAccountID, accountID)
	}

	account := factory(accountID)
	b.accounts[accountID] = account

	metrics.AccountsOpened.WithLabelValues(strings.ToLower(accountType)).Inc()
	b.logger.Info().
		Str("account_id", accountID).
		Str("type", accountType).
		Msg("account opened")

	return account, nil
}

// DepositCash credits amount to the account as a cash deposit, journaled with
// no source account. It reports false for unknown or inactive accounts and
// for non-positive amounts; those are expected outcomes and never become
// errors at this boundary.
func (b *Bank) DepositCash(accountID string, amount decimal.Decimal) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	account, ok := b.accounts[accountID]
	if !ok || !account.IsActive() {
		b.deny("deposit", "unknown_or_inactive", accountID, "account unknown or inactive")
		return false
	}

	if err := b.executeTransaction(nil, account, amount, "cash deposit"); err != nil {
		metrics.OperationsDenied.WithLabelValues("deposit", "invalid_amount").Inc()
		b.logger.Warn().Err(err).Str("account_id", accountID).Msg("cash deposit failed")
		return false
	}

	return true
}

// Transfer moves amount from the debit account to the credit account,
// charging the debit account's fee policy on top. All validation happens
// before any mutation, so a denied transfer leaves both balances and the
// journal untouched. The principal and the fee are booked as two separate
// journal transactions; the fee goes to the bank's fee-collection account.
func (b *Bank) Transfer(debitID, creditID string, amount decimal.Decimal, memo string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	debit, debitOK := b.accounts[debitID]
	credit, creditOK := b.accounts[creditID]
	if !debitOK || !creditOK {
		b.deny("transfer", "unknown_account", debitID, "one of the accounts does not exist")
		return false
	}
	if !debit.IsActive() || !credit.IsActive() {
		b.deny("transfer", "inactive_account", debitID, "one of the accounts is not active")
		return false
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		b.deny("transfer", "invalid_amount", debitID, "transfer amount must be positive")
		return false
	}

	fee := debit.Fee(amount)
	total := amount.Add(fee)
	if !debit.CanWithdraw(total) {
		b.deny("transfer", "insufficient_funds", debitID,
			fmt.Sprintf("insufficient cover: balance %s, required %s", debit.Balance(), total))
		return false
	}

	if err := b.executeTransaction(debit, credit, amount, memo); err != nil {
		b.logger.Error().Err(err).
			Str("debit", debitID).
			Str("credit", creditID).
			Msg("transfer failed")
		return false
	}

	if fee.IsPositive() {
		feeMemo := "fee"
		if memo != "" {
			feeMemo = "fee: " + memo
		}
		if err := b.executeTransaction(debit, b.feeAccount, fee, feeMemo); err != nil {
			b.logger.Error().Err(err).Str("debit", debitID).Msg("fee booking failed")
			return false
		}
	}

	metrics.TransferAmount.Observe(amount.InexactFloat64())

	return true
}

// ApplyInterest accrues one interest period on an interest-bearing account,
// crediting balance times rate through the journal so the entry history stays
// the source of truth for the balance. Accrual is triggered externally; the
// bank runs no timers.
func (b *Bank) ApplyInterest(accountID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	account, ok := b.accounts[accountID]
	if !ok || !account.IsActive() {
		b.deny("interest", "unknown_or_inactive", accountID, "account unknown or inactive")
		return false
	}

	terms := account.Interest()
	if terms == nil {
		b.deny("interest", "not_interest_bearing", accountID, "account does not accrue interest")
		return false
	}

	interest := account.Balance().Mul(terms.Rate)
	if !interest.IsPositive() {
		b.deny("interest", "no_accrual", accountID, "no positive interest to accrue")
		return false
	}

	if err := b.executeTransaction(nil, account, interest, "interest"); err != nil {
		b.logger.Error().Err(err).Str("account_id", accountID).Msg("interest accrual failed")
		return false
	}

	return true
}

// CloseAccount deactivates an account. It reports false for unknown or
// already-inactive accounts and for accounts with a non-zero balance.
func (b *Bank) CloseAccount(accountID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	account, ok := b.accounts[accountID]
	if !ok || !account.IsActive() {
		b.deny("close", "unknown_or_inactive", accountID, "account unknown or inactive")
		return false
	}
	if !account.Balance().IsZero() {
		b.deny("close", "nonzero_balance", accountID, "account can only be closed at a zero balance")
		return false
	}

	if !account.Close() {
		return false
	}

	metrics.AccountsClosed.Inc()
	b.logger.Info().Str("account_id", accountID).Msg("account closed")

	return true
}

// Balance reports the balance of one account; ok is false when the account is
// unknown.
func (b *Bank) Balance(accountID string) (decimal.Decimal, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	account, ok := b.accounts[accountID]
	if !ok {
		return decimal.Zero, false
	}

	return account.Balance(), true
}

// Account returns a snapshot of one account; ok is false when the account is
// unknown.
func (b *Bank) Account(accountID string) (AccountInfo, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	account, ok := b.accounts[accountID]
	if !ok {
		return AccountInfo{}, false
	}

	return snapshot(account), true
}

// ListAccounts returns snapshots of every registered account, the fee account
// included, ordered by ID.
func (b *Bank) ListAccounts() []AccountInfo {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]AccountInfo, 0, len(b.accounts))
	for _, account := range b.accounts {
		out = append(out, snapshot(account))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// AccountTransactions returns the most recent count history entries of one
// account, most-recent-last, or the full history when count <= 0. ok is false
// when the account is unknown.
func (b *Bank) AccountTransactions(accountID string, count int) ([]domain.TransactionEntry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	account, ok := b.accounts[accountID]
	if !ok {
		return nil, false
	}

	return account.Entries(count), true
}

// BankTransactions returns the most recent count journal records,
// most-recent-last, or the full journal when count <= 0.
func (b *Bank) BankTransactions(count int) []domain.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(b.journal)
	if count <= 0 || count > n {
		count = n
	}

	out := make([]domain.Transaction, count)
	copy(out, b.journal[n-count:])

	return out
}

// executeTransaction moves amount between two sides under one shared logical
// timestamp and appends exactly one journal record. Either side may be nil
// (cash). Callers validate before calling; the amount check here is defensive
// and unreachable through the public operations.
func (b *Bank) executeTransaction(from, to *domain.Account, amount decimal.Decimal, memo string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidAmount, amount)
	}

	ts := b.nextTimestamp()

	if from != nil {
		from.Debit(amount)
		from.Record(domain.TransactionEntry{
			Timestamp:    ts,
			Counterparty: accountIDPtr(to),
			Amount:       amount.Neg(),
			Memo:         memo,
		})
	}

	if to != nil {
		to.Credit(amount)
		to.Record(domain.TransactionEntry{
			Timestamp:    ts,
			Counterparty: accountIDPtr(from),
			Amount:       amount,
			Memo:         memo,
		})
	}

	b.journal = append(b.journal, domain.Transaction{
		ID:        ulid.Make().String(),
		Timestamp: ts,
		From:      accountIDPtr(from),
		To:        accountIDPtr(to),
		Amount:    amount,
		Memo:      memo,
	})

	metrics.TransactionsExecuted.Inc()

	return nil
}

// nextTimestamp advances the logical clock. Timestamps are strictly
// increasing across the bank's lifetime and never repeat.
func (b *Bank) nextTimestamp() int64 {
	b.clock++
	return b.clock
}

// nextAccountID generates the next free sequential identifier, skipping IDs
// taken by explicitly named accounts.
func (b *Bank) nextAccountID() string {
	for {
		id := fmt.Sprintf("A%06d", b.idCounter)
		b.idCounter++
		if _, exists := b.accounts[id]; !exists {
			return id
		}
	}
}

// deny records one denied business operation on the metrics and logging side
// channels. Callers still report the denial as a boolean result.
func (b *Bank) deny(op, reason, accountID, msg string) {
	metrics.OperationsDenied.WithLabelValues(op, reason).Inc()
	b.logger.Warn().
		Str("op", op).
		Str("account_id", accountID).
		Msg(msg)
}

func snapshot(a *domain.Account) AccountInfo {
	info := AccountInfo{
		ID:      a.ID(),
		Balance: a.Balance(),
		Active:  a.IsActive(),
	}
	if terms := a.Interest(); terms != nil {
		rate := terms.Rate
		info.InterestRate = &rate
	}

	return info
}

func accountIDPtr(a *domain.Account) *string {
	if a == nil {
		return nil
	}
	id := a.ID()

	return &id
}
