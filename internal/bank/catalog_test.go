package bank_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gobank/internal/bank"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "account_types.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadCatalog_Apply(t *testing.T) {
	path := writeCatalog(t, `
account_types:
  - name: student
    withdrawal: overdraft
    overdraft_limit: "100"
    fee: percentage
    fee_rate: "0.02"
  - name: fixed
    withdrawal: none
    interest_rate: "0.05"
`)

	catalog, err := bank.LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog.AccountTypes, 2)

	b := bank.New(zerolog.Nop())
	require.NoError(t, catalog.Apply(b))

	student, err := b.OpenAccount("student", "")
	require.NoError(t, err)
	sink, err := b.OpenAccount("savings", "")
	require.NoError(t, err)

	// Overdraft 100 with a 2% fee: 98 + 1.96 = 99.96 is covered.
	assert.True(t, b.Transfer(student.ID(), sink.ID(), decimal.NewFromInt(98), "books"))
	assert.False(t, b.Transfer(student.ID(), sink.ID(), decimal.NewFromInt(10), "more books"))

	fixed, err := b.OpenAccount("fixed", "")
	require.NoError(t, err)
	require.True(t, b.DepositCash(fixed.ID(), decimal.NewFromInt(1000)))
	require.True(t, b.ApplyInterest(fixed.ID()))

	balance, _ := b.Balance(fixed.ID())
	assert.True(t, balance.Equal(decimal.NewFromInt(1050)))

	// The "none" withdrawal policy locks the account against transfers.
	assert.False(t, b.Transfer(fixed.ID(), sink.ID(), decimal.NewFromInt(1), "locked"))
}

func TestLoadCatalog_OverridesBuiltinType(t *testing.T) {
	path := writeCatalog(t, `
account_types:
  - name: youth
    withdrawal: overdraft
    overdraft_limit: "50"
`)

	catalog, err := bank.LoadCatalog(path)
	require.NoError(t, err)

	b := bank.New(zerolog.Nop())
	require.NoError(t, catalog.Apply(b))

	youth, err := b.OpenAccount("youth", "")
	require.NoError(t, err)
	sink, err := b.OpenAccount("savings", "")
	require.NoError(t, err)

	assert.True(t, b.Transfer(youth.ID(), sink.ID(), decimal.NewFromInt(50), "into overdraft"))
}

func TestLoadCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown withdrawal policy",
			content: `
account_types:
  - name: broken
    withdrawal: maybe
`,
		},
		{
			name: "missing overdraft limit",
			content: `
account_types:
  - name: broken
    withdrawal: overdraft
`,
		},
		{
			name: "negative fee rate",
			content: `
account_types:
  - name: broken
    fee: percentage
    fee_rate: "-0.01"
`,
		},
		{
			name: "empty type name",
			content: `
account_types:
  - withdrawal: no_overdraft
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := bank.LoadCatalog(writeCatalog(t, tt.content))
			require.NoError(t, err)
			assert.Error(t, catalog.Apply(bank.New(zerolog.Nop())))
		})
	}
}

func TestLoadCatalog_FileErrors(t *testing.T) {
	_, err := bank.LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = bank.LoadCatalog(writeCatalog(t, "account_types: {not: a list}"))
	assert.Error(t, err)
}
