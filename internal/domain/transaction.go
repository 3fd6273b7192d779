package domain

import "github.com/shopspring/decimal"

// Transaction is one record of the bank-wide journal. From is nil for cash
// deposits and To is nil for cash withdrawals. Amount is always positive; the
// direction of the movement is carried by the two account references.
type Transaction struct {
	ID        string
	Timestamp int64
	From      *string
	To        *string
	Amount    decimal.Decimal
	Memo      string
}

// TransactionEntry is one line of a single account's history. Amount is
// negative for debits and positive for credits. Counterparty is nil when the
// other side of the movement is cash.
//
// The two entries generated by a transfer share one timestamp and carry
// opposite-sign amounts of equal magnitude.
type TransactionEntry struct {
	Timestamp    int64
	Counterparty *string
	Amount       decimal.Decimal
	Memo         string
}
