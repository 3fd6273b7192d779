package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func withServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	origURL, origTimeout := baseURL, timeout
	baseURL, timeout = srv.URL, time.Second
	t.Cleanup(func() { baseURL, timeout = origURL, origTimeout })
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}
}

func TestFormatAmount(t *testing.T) {
	origCurrency := currencyCode
	currencyCode = "USD"
	defer func() { currencyCode = origCurrency }()

	if got := formatAmount(decimal.RequireFromString("123.45")); got != "$123.45" {
		t.Fatalf("expected $123.45, got %q", got)
	}

	// Sub-minor-unit amounts round to minor units.
	if got := formatAmount(decimal.RequireFromString("0.005")); got != "$0.01" {
		t.Fatalf("expected $0.01, got %q", got)
	}
}

func TestAccountListCmd(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/accounts" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accounts":[{"id":"A000001","balance":"150","active":true}],"total":1}`))
	})

	out := captureOutput(t, func() {
		if err := accountListCmd().Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	if !strings.Contains(out, "A000001") || !strings.Contains(out, "1 account(s)") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestDepositCmd_InvalidAmount(t *testing.T) {
	cmd := depositCmd()
	cmd.SetArgs([]string{"A000001", "not-a-number"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for a non-numeric amount")
	}
}

func TestTransferCmd_Denied(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"operation denied","message":"insufficient funds"}`))
	})

	cmd := transferCmd()
	cmd.SetArgs([]string{"A000001", "A000002", "100"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "insufficient funds") {
		t.Fatalf("expected denial error, got %v", err)
	}
}
