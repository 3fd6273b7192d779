package domain

import "github.com/shopspring/decimal"

// Account holds a balance, an append-only entry history and the two policies
// fixed at construction. Policies are not swappable afterwards.
//
// Debit performs no bounds check: deciding whether a withdrawal is allowed
// (CanWithdraw) is deliberately separated from executing it, and the bank
// validates before it mutates. An Account on its own is therefore not safe
// against callers that skip the check.
type Account struct {
	id         string
	withdrawal WithdrawalPolicy
	fees       FeePolicy
	balance    decimal.Decimal
	active     bool
	entries    []TransactionEntry
	interest   *InterestTerms
}

// InterestTerms marks an account as interest-bearing at a fixed rate.
type InterestTerms struct {
	Rate decimal.Decimal
}

// NewAccount creates an active account with a zero balance.
func NewAccount(id string, withdrawal WithdrawalPolicy, fees FeePolicy) *Account {
	return &Account{
		id:         id,
		withdrawal: withdrawal,
		fees:       fees,
		balance:    decimal.Zero,
		active:     true,
	}
}

// NewInterestAccount creates an account that additionally accrues interest at
// rate. Interest is an independent capability layered onto the base account by
// composition; it does not interact with the withdrawal or fee policies.
func NewInterestAccount(id string, withdrawal WithdrawalPolicy, fees FeePolicy, rate decimal.Decimal) *Account {
	a := NewAccount(id, withdrawal, fees)
	a.interest = &InterestTerms{Rate: rate}
	return a
}

// NewSavingsAccount creates an interest-bearing account with the savings
// defaults: no overdraft, no fees.
func NewSavingsAccount(id string, rate decimal.Decimal) *Account {
	return NewInterestAccount(id, NoOverdraft{}, NoFee{}, rate)
}

// ID returns the immutable account identifier.
func (a *Account) ID() string { return a.id }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal { return a.balance }

// IsActive reports whether the account is open for operations.
func (a *Account) IsActive() bool { return a.active }

// Interest returns the account's interest terms, or nil for accounts that do
// not accrue interest.
func (a *Account) Interest() *InterestTerms { return a.interest }

// CanWithdraw delegates to the injected withdrawal policy.
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	return a.withdrawal.CanWithdraw(a.balance, amount)
}

// Fee delegates to the injected fee policy.
func (a *Account) Fee(amount decimal.Decimal) decimal.Decimal {
	return a.fees.Fee(amount)
}

// Credit increases the balance by amount.
func (a *Account) Credit(amount decimal.Decimal) {
	a.balance = a.balance.Add(amount)
}

// Debit decreases the balance by amount. The caller must have validated the
// withdrawal via CanWithdraw first.
func (a *Account) Debit(amount decimal.Decimal) {
	a.balance = a.balance.Sub(amount)
}

// Record appends one entry to the account history. Entries are never removed
// or rewritten.
func (a *Account) Record(entry TransactionEntry) {
	a.entries = append(a.entries, entry)
}

// Entries returns the most recent count entries, most-recent-last, or the
// full history when count <= 0. The returned slice is a copy.
func (a *Account) Entries(count int) []TransactionEntry {
	n := len(a.entries)
	if count <= 0 || count > n {
		count = n
	}
	out := make([]TransactionEntry, count)
	copy(out, a.entries[n-count:])
	return out
}

// Close deactivates the account. It succeeds only at an exactly zero balance.
// Closing is irreversible; there is no reopen.
func (a *Account) Close() bool {
	if !a.balance.IsZero() {
		return false
	}
	a.active = false
	return true
}
