package domain

import "errors"

// Hard failures, reported as errors to the caller. Expected business denials
// (unknown account, inactive account, policy denial, non-zero balance on
// close) are boolean results instead; the bank logs the reason.
var (
	ErrUnknownAccountType = errors.New("unknown account type")
	ErrDuplicateAccountID = errors.New("account id already registered")
	ErrInvalidAmount      = errors.New("amount must be positive")
)
