package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/gobank/internal/adapter/http/dto"
)

var (
	baseURL      string
	timeout      time.Duration
	currencyCode string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gobank-cli",
		Short: "GoBank CLI tool",
		Long:  `A command line interface for interacting with the GoBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&currencyCode, "currency", "CHF", "Currency code used to format amounts")

	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}
	accountCmd.AddCommand(
		accountOpenCmd(),
		accountGetCmd(),
		accountBalanceCmd(),
		accountListCmd(),
		accountStatementCmd(),
		accountCloseCmd(),
	)

	rootCmd.AddCommand(
		accountCmd,
		depositCmd(),
		transferCmd(),
		interestCmd(),
		journalCmd(),
		demoCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func accountOpenCmd() *cobra.Command {
	var accountType, accountID string

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var account dto.AccountResponse
			err := doPost("/api/v1/accounts", dto.OpenAccountRequest{
				Type: accountType,
				ID:   accountID,
			}, &account)
			if err != nil {
				return err
			}

			fmt.Printf("Opened account %s\n", account.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountType, "type", "", "Account type (youth, savings, private, ...)")
	cmd.Flags().StringVar(&accountID, "id", "", "Explicit account ID (optional)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func accountGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <account-id>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var account dto.AccountResponse
			if err := doGet("/api/v1/accounts/"+args[0], &account); err != nil {
				return err
			}

			printAccount(account)
			return nil
		},
	}
}

func accountBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show one account balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var balance dto.BalanceResponse
			if err := doGet("/api/v1/accounts/"+args[0]+"/balance", &balance); err != nil {
				return err
			}

			fmt.Printf("%s: %s\n", balance.AccountID, formatAmount(balance.Balance))
			return nil
		},
	}
}

func accountListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var list dto.ListAccountsResponse
			if err := doGet("/api/v1/accounts", &list); err != nil {
				return err
			}

			for _, account := range list.Accounts {
				printAccount(*account)
			}
			fmt.Printf("%d account(s)\n", list.Total)
			return nil
		},
	}
}

func accountStatementCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "statement <account-id>",
		Short: "Print an account statement, most recent entry last",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/accounts/%s/entries?count=%d", args[0], count)

			var list dto.ListEntriesResponse
			if err := doGet(path, &list); err != nil {
				return err
			}

			fmt.Printf("Statement for %s\n", args[0])
			for _, e := range list.Entries {
				counterparty := "-"
				if e.Counterparty != nil {
					counterparty = *e.Counterparty
				}
				fmt.Printf("%6d  %-10s %14s  %s\n",
					e.Timestamp, counterparty, formatAmount(e.Amount), truncate(e.Memo, 40))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Limit to the most recent N entries (0 = all)")

	return cmd
}

func accountCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <account-id>",
		Short: "Close an account (requires a zero balance)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var status dto.StatusResponse
			if err := doPost("/api/v1/accounts/"+args[0]+"/close", nil, &status); err != nil {
				return err
			}

			fmt.Printf("Account %s %s\n", args[0], status.Status)
			return nil
		},
	}
}

func depositCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <account-id> <amount>",
		Short: "Deposit cash into an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			var status dto.StatusResponse
			err = doPost("/api/v1/accounts/"+args[0]+"/deposits", dto.DepositRequest{Amount: amount}, &status)
			if err != nil {
				return err
			}

			fmt.Printf("Deposited %s into %s\n", formatAmount(amount), args[0])
			return nil
		},
	}
}

func transferCmd() *cobra.Command {
	var memo string

	cmd := &cobra.Command{
		Use:   "transfer <from-id> <to-id> <amount>",
		Short: "Transfer money between accounts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[2], err)
			}

			var status dto.StatusResponse
			err = doPost("/api/v1/transfers", dto.TransferRequest{
				FromAccountID: args[0],
				ToAccountID:   args[1],
				Amount:        amount,
				Memo:          memo,
			}, &status)
			if err != nil {
				return err
			}

			fmt.Printf("Transferred %s from %s to %s\n", formatAmount(amount), args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&memo, "memo", "", "Transfer memo")

	return cmd
}

func interestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interest <account-id>",
		Short: "Accrue one interest period on an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var status dto.StatusResponse
			if err := doPost("/api/v1/accounts/"+args[0]+"/interest", nil, &status); err != nil {
				return err
			}

			fmt.Printf("Interest booked on %s\n", args[0])
			return nil
		},
	}
}

func journalCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Print the global journal, most recent record last",
		RunE: func(cmd *cobra.Command, args []string) error {
			var list dto.JournalResponse
			if err := doGet(fmt.Sprintf("/api/v1/journal?count=%d", count), &list); err != nil {
				return err
			}

			for _, tx := range list.Transactions {
				from, to := "cash", "-"
				if tx.FromAccountID != nil {
					from = *tx.FromAccountID
				}
				if tx.ToAccountID != nil {
					to = *tx.ToAccountID
				}
				fmt.Printf("%6d  %-10s -> %-10s %14s  %s\n",
					tx.Timestamp, from, to, formatAmount(tx.Amount), truncate(tx.Memo, 40))
			}
			fmt.Printf("%d record(s)\n", list.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Limit to the most recent N records (0 = all)")

	return cmd
}

// demoCmd replays a small end-to-end banking session against a running
// server and prints the resulting statements and journal.
func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a small demo session against the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			open := func(accountType string) (string, error) {
				var account dto.AccountResponse
				err := doPost("/api/v1/accounts", dto.OpenAccountRequest{Type: accountType}, &account)
				if err != nil {
					return "", fmt.Errorf("open %s: %w", accountType, err)
				}
				fmt.Printf("Opened %s account %s\n", accountType, account.ID)
				return account.ID, nil
			}

			youth, err := open("youth")
			if err != nil {
				return err
			}
			savings, err := open("savings")
			if err != nil {
				return err
			}
			private, err := open("private")
			if err != nil {
				return err
			}

			steps := []struct {
				desc string
				path string
				body any
			}{
				{"deposit into youth", "/api/v1/accounts/" + youth + "/deposits", dto.DepositRequest{Amount: decimal.NewFromInt(200)}},
				{"deposit into savings", "/api/v1/accounts/" + savings + "/deposits", dto.DepositRequest{Amount: decimal.NewFromInt(1000)}},
				{"deposit into private", "/api/v1/accounts/" + private + "/deposits", dto.DepositRequest{Amount: decimal.NewFromInt(500)}},
				{"allowance transfer", "/api/v1/transfers", dto.TransferRequest{FromAccountID: youth, ToAccountID: savings, Amount: decimal.NewFromInt(50), Memo: "allowance"}},
				{"rent transfer", "/api/v1/transfers", dto.TransferRequest{FromAccountID: private, ToAccountID: savings, Amount: decimal.NewFromInt(100), Memo: "rent"}},
				{"interest on savings", "/api/v1/accounts/" + savings + "/interest", nil},
			}

			for _, step := range steps {
				var status dto.StatusResponse
				if err := doPost(step.path, step.body, &status); err != nil {
					return fmt.Errorf("%s: %w", step.desc, err)
				}
				fmt.Printf("%s: %s\n", step.desc, status.Status)
			}

			// An overdraft attempt the youth account policy denies.
			err = doPost("/api/v1/transfers", dto.TransferRequest{
				FromAccountID: youth,
				ToAccountID:   private,
				Amount:        decimal.NewFromInt(500),
			}, nil)
			if err != nil {
				fmt.Printf("overdraft attempt denied: %v\n", err)
			}

			var list dto.ListAccountsResponse
			if err := doGet("/api/v1/accounts", &list); err != nil {
				return err
			}
			fmt.Println("\nFinal balances:")
			for _, account := range list.Accounts {
				printAccount(*account)
			}

			return nil
		},
	}
}

func doGet(path string, out any) error {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get(baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func doPost(path string, body, out any) error {
	client := &http.Client{Timeout: timeout}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr dto.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (status %d): %s", apiErr.Error, resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func printAccount(account dto.AccountResponse) {
	state := "active"
	if !account.Active {
		state = "closed"
	}

	line := fmt.Sprintf("%-10s %14s  %s", account.ID, formatAmount(account.Balance), state)
	if account.InterestRate != nil {
		line += fmt.Sprintf("  (interest %s%%)", account.InterestRate.Mul(decimal.NewFromInt(100)))
	}
	fmt.Println(line)
}

// formatAmount renders a decimal amount in the configured currency,
// rounded to minor units.
func formatAmount(amount decimal.Decimal) string {
	minor := amount.Shift(2).Round(0).IntPart()
	return money.New(minor, currencyCode).Display()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
