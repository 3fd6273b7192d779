package domain

import "github.com/shopspring/decimal"

// WithdrawalPolicy decides whether an account may be debited. Implementations
// are pure predicates over the current balance and the requested amount; they
// never mutate state.
type WithdrawalPolicy interface {
	CanWithdraw(balance, amount decimal.Decimal) bool
}

// FeePolicy computes the fee charged on top of a withdrawal amount. The
// result is non-negative and in the same currency unit as the amount.
type FeePolicy interface {
	Fee(amount decimal.Decimal) decimal.Decimal
}

// NoOverdraft permits a withdrawal only when it is fully covered by the
// current balance.
type NoOverdraft struct{}

func (NoOverdraft) CanWithdraw(balance, amount decimal.Decimal) bool {
	return balance.GreaterThanOrEqual(amount)
}

// Overdraft permits a withdrawal as long as the resulting balance stays at or
// above -Limit. Limit is non-negative.
type Overdraft struct {
	Limit decimal.Decimal
}

func (p Overdraft) CanWithdraw(balance, amount decimal.Decimal) bool {
	return balance.Sub(amount).GreaterThanOrEqual(p.Limit.Neg())
}

// NoWithdrawal denies every withdrawal. The bank's fee-collection account
// carries this policy.
type NoWithdrawal struct{}

func (NoWithdrawal) CanWithdraw(_, _ decimal.Decimal) bool {
	return false
}

// NoFee charges nothing.
type NoFee struct{}

func (NoFee) Fee(_ decimal.Decimal) decimal.Decimal {
	return decimal.Zero
}

// PercentageFee charges amount multiplied by Rate. Rate is expected in [0,1)
// but not enforced.
type PercentageFee struct {
	Rate decimal.Decimal
}

func (p PercentageFee) Fee(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(p.Rate)
}
