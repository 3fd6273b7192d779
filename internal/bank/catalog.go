package bank

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/iho/gobank/internal/domain"
)

// Catalog declares account types in configuration. Amounts and rates are
// decimal strings.
type Catalog struct {
	AccountTypes []TypeSpec `yaml:"account_types"`
}

// TypeSpec describes one account type: which withdrawal policy gates debits,
// which fee policy prices them, and an optional interest rate.
type TypeSpec struct {
	Name           string `yaml:"name"`
	Withdrawal     string `yaml:"withdrawal"`      // no_overdraft (default), overdraft, none
	OverdraftLimit string `yaml:"overdraft_limit"` // required for overdraft
	Fee            string `yaml:"fee"`             // none (default), percentage
	FeeRate        string `yaml:"fee_rate"`        // required for percentage
	InterestRate   string `yaml:"interest_rate"`   // empty for non-interest-bearing types
}

// LoadCatalog reads and parses an account-type catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read account catalog: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse account catalog: %w", err)
	}

	return &catalog, nil
}

// Apply registers every declared type on the bank, replacing built-in types
// of the same name.
func (c *Catalog) Apply(b *Bank) error {
	for _, spec := range c.AccountTypes {
		factory, err := spec.factory()
		if err != nil {
			return fmt.Errorf("account type %q: %w", spec.Name, err)
		}
		b.RegisterAccountType(spec.Name, factory)
	}

	return nil
}

func (s TypeSpec) factory() (Factory, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("type name must not be empty")
	}

	withdrawal, err := s.withdrawalPolicy()
	if err != nil {
		return nil, err
	}

	fees, err := s.feePolicy()
	if err != nil {
		return nil, err
	}

	if s.InterestRate == "" {
		return func(id string) *domain.Account {
			return domain.NewAccount(id, withdrawal, fees)
		}, nil
	}

	rate, err := decimal.NewFromString(s.InterestRate)
	if err != nil {
		return nil, fmt.Errorf("invalid interest_rate %q: %w", s.InterestRate, err)
	}

	return func(id string) *domain.Account {
		return domain.NewInterestAccount(id, withdrawal, fees, rate)
	}, nil
}

func (s TypeSpec) withdrawalPolicy() (domain.WithdrawalPolicy, error) {
	switch s.Withdrawal {
	case "", "no_overdraft":
		return domain.NoOverdraft{}, nil
	case "overdraft":
		limit, err := decimal.NewFromString(s.OverdraftLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid overdraft_limit %q: %w", s.OverdraftLimit, err)
		}
		if limit.IsNegative() {
			return nil, fmt.Errorf("overdraft_limit %q must not be negative", s.OverdraftLimit)
		}
		return domain.Overdraft{Limit: limit}, nil
	case "none":
		return domain.NoWithdrawal{}, nil
	default:
		return nil, fmt.Errorf("unknown withdrawal policy %q", s.Withdrawal)
	}
}

func (s TypeSpec) feePolicy() (domain.FeePolicy, error) {
	switch s.Fee {
	case "", "none":
		return domain.NoFee{}, nil
	case "percentage":
		rate, err := decimal.NewFromString(s.FeeRate)
		if err != nil {
			return nil, fmt.Errorf("invalid fee_rate %q: %w", s.FeeRate, err)
		}
		if rate.IsNegative() {
			return nil, fmt.Errorf("fee_rate %q must not be negative", s.FeeRate)
		}
		return domain.PercentageFee{Rate: rate}, nil
	default:
		return nil, fmt.Errorf("unknown fee policy %q", s.Fee)
	}
}
