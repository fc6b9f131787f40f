package handler

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"go-atm-engine/common"
	"go-atm-engine/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountHandler_Balance(t *testing.T) {
	tt := newTestTerminal(t, "", 100000)

	appErr := tt.account.Balance(&bytes.Buffer{}, ParseRequest("balance"))
	require.NotNil(t, appErr)
	assert.Equal(t, common.CodeUnauthorized, appErr.Code)

	tt.login(t)
	var out bytes.Buffer
	assert.Nil(t, tt.account.Balance(&out, ParseRequest("balance")))
	assert.Equal(t, "Your current balance is ₹100000.00\n", out.String())
}

func TestAccountHandler_DepositWithdraw(t *testing.T) {
	tt := newTestTerminal(t, "", 1000)
	tt.login(t)

	var out bytes.Buffer
	assert.Nil(t, tt.account.Deposit(&out, ParseRequest("deposit 100")))
	assert.Equal(t, "Deposited ₹100.00. Balance: ₹1100.00\n", out.String())

	out.Reset()
	assert.Nil(t, tt.account.Withdraw(&out, ParseRequest("withdraw 30.5")))
	assert.Equal(t, "Withdrew ₹30.50. Balance: ₹1069.50\n", out.String())

	tests := []struct {
		name    string
		line    string
		code    int
		message string
	}{
		{"missing amount", "deposit", common.CodeInvalidInput, "Usage: deposit <amount>"},
		{"extra argument", "withdraw 10 20", common.CodeInvalidInput, "Usage: withdraw <amount>"},
		{"not a number", "deposit ten", common.CodeInvalidInput, "Enter a valid amount."},
		{"zero", "deposit 0", common.CodeInvalidInput, "Amount must be greater than zero."},
		{"negative", "withdraw -5", common.CodeInvalidInput, "Amount must be greater than zero."},
		{"overdraw", "withdraw 5000", common.CodeConflict, "Insufficient balance."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := ParseRequest(tc.line)
			var appErr *common.AppError
			if req.Command == "deposit" {
				appErr = tt.account.Deposit(&bytes.Buffer{}, req)
			} else {
				appErr = tt.account.Withdraw(&bytes.Buffer{}, req)
			}
			require.NotNil(t, appErr)
			assert.Equal(t, tc.code, appErr.Code)
			assert.Equal(t, tc.message, appErr.Message)
		})
	}

	assert.Equal(t, []model.TransactionKind{model.KindDeposit, model.KindWithdraw}, historyKinds(t, tt.ledger))
}

func TestAccountHandler_History(t *testing.T) {
	tt := newTestTerminal(t, "", 1000)
	tt.login(t)

	var out bytes.Buffer
	assert.Nil(t, tt.account.History(&out, ParseRequest("history")))
	assert.Equal(t, "No transactions yet.\n", out.String())

	for _, line := range []string{"deposit 100", "withdraw 30"} {
		req := ParseRequest(line)
		if req.Command == "deposit" {
			require.Nil(t, tt.account.Deposit(&bytes.Buffer{}, req))
		} else {
			require.Nil(t, tt.account.Withdraw(&bytes.Buffer{}, req))
		}
	}
	require.Nil(t, tt.transaction.CreateTransfer(&bytes.Buffer{}, ParseRequest("transfer name Bob 20 654321")))

	out.Reset()
	assert.Nil(t, tt.account.History(&out, ParseRequest("history")))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Transfer")
	assert.Contains(t, lines[0], "Bob")
	assert.True(t, strings.HasSuffix(lines[0], "₹1050.00"))
	assert.Contains(t, lines[2], "Deposit")
	assert.True(t, strings.HasSuffix(lines[2], "₹1100.00"))

	out.Reset()
	assert.Nil(t, tt.account.History(&out, ParseRequest("history 1")))
	lines = strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Bob")

	appErr := tt.account.History(&out, ParseRequest("history -1"))
	require.NotNil(t, appErr)
	assert.Equal(t, "Usage: history [limit]", appErr.Message)
}

func TestParseAmount(t *testing.T) {
	for _, in := range []string{"100", "0.01", "-5", "99999999999999.99"} {
		_, appErr := parseAmount(in)
		assert.Nil(t, appErr, in)
	}

	for _, in := range []string{"", "ten", "1e3", "1E3", "1e100000000", "2.5e-7", "1234567890123456789012345"} {
		_, appErr := parseAmount(in)
		if assert.NotNil(t, appErr, in) {
			assert.Equal(t, "Enter a valid amount.", appErr.Message)
		}
	}
}

func TestAccountHandler_ExponentAmountsAreRejected(t *testing.T) {
	tt := newTestTerminal(t, "", 1000)
	tt.login(t)

	done := make(chan struct{})
	var deposit, withdraw *common.AppError
	go func() {
		defer close(done)
		deposit = tt.account.Deposit(&bytes.Buffer{}, ParseRequest("deposit 1e100000000"))
		withdraw = tt.account.Withdraw(&bytes.Buffer{}, ParseRequest("withdraw 1e100000000"))
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("exponent amount was not rejected in time")
	}

	require.NotNil(t, deposit)
	assert.Equal(t, "Enter a valid amount.", deposit.Message)
	require.NotNil(t, withdraw)
	assert.Equal(t, "Enter a valid amount.", withdraw.Message)
	assert.Empty(t, historyKinds(t, tt.ledger))
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "Deposit", kindLabel(model.KindDeposit))
	assert.Equal(t, "Withdraw", kindLabel(model.KindWithdraw))
	assert.Equal(t, "Phone Pay", kindLabel(model.KindTransferByPhone))
	assert.Equal(t, "Transfer", kindLabel(model.KindTransferByName))
	assert.Equal(t, "Transfer", kindLabel(model.KindTransferByAccountNumber))
	assert.Equal(t, "refund", kindLabel(model.TransactionKind("refund")))
}
