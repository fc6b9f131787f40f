package handler

import (
	"bytes"
	"testing"

	"go-atm-engine/common"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionHandler_CreateTransfer(t *testing.T) {
	t.Run("all recipient kinds", func(t *testing.T) {
		tt := newTestTerminal(t, "", 1000)
		tt.login(t)

		var out bytes.Buffer
		require.Nil(t, tt.transaction.CreateTransfer(&out, ParseRequest("transfer name Bob 20 654321")))
		assert.Equal(t, "Sent ₹20.00 to Bob. Balance: ₹980.00\n", out.String())

		out.Reset()
		require.Nil(t, tt.transaction.CreateTransfer(&out, ParseRequest("transfer account 12345678 30 654321")))
		assert.Equal(t, "Sent ₹30.00 to 12345678. Balance: ₹950.00\n", out.String())

		out.Reset()
		require.Nil(t, tt.transaction.CreateTransfer(&out, ParseRequest("transfer upi 9876543210 50 654321 rent for may")))
		assert.Equal(t, "Sent ₹50.00 to Phone: 9876543210 (rent for may). Balance: ₹900.00\n", out.String())
	})

	tests := []struct {
		name    string
		line    string
		code    int
		message string
	}{
		{"missing passcode", "transfer name Bob 20", common.CodeInvalidInput, transferUsage},
		{"unknown kind", "transfer iban DE89 20 654321", common.CodeInvalidInput, transferUsage},
		{"remarks on account", "transfer account 12345678 20 654321 rent", common.CodeInvalidInput, "Remarks are only supported for phone transfers."},
		{"bad amount", "transfer name Bob twenty 654321", common.CodeInvalidInput, "Enter a valid amount."},
		{"short account", "transfer account 12345 20 654321", common.CodeInvalidInput, "Enter valid recipient account number (min 6 digits)."},
		{"short phone", "transfer phone 98765 20 654321", common.CodeInvalidInput, "Enter a valid 10-digit phone number."},
		{"malformed passcode", "transfer name Bob 20 65432", common.CodeInvalidInput, "Passcode must be 4 or 6 digits."},
		{"wrong passcode", "transfer name Bob 20 123456", common.CodeForbidden, "Invalid passcode. Transaction canceled."},
		{"insufficient funds", "transfer name Bob 5000 654321", common.CodeConflict, "Insufficient balance."},
		{"zero amount", "transfer name Bob 0 654321", common.CodeInvalidInput, "Amount must be greater than zero."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tt := newTestTerminal(t, "", 1000)
			tt.login(t)

			appErr := tt.transaction.CreateTransfer(&bytes.Buffer{}, ParseRequest(tc.line))
			require.NotNil(t, appErr)
			assert.Equal(t, tc.code, appErr.Code)
			assert.Equal(t, tc.message, appErr.Message)

			balance, err := tt.ledger.Balance()
			require.NoError(t, err)
			assert.True(t, balance.Equal(decimal.NewFromInt(1000)), "failed transfer must not move money")
			assert.Empty(t, historyKinds(t, tt.ledger))
		})
	}
}

func TestTransactionHandler_QuotedName(t *testing.T) {
	tt := newTestTerminal(t, "", 1000)
	tt.login(t)

	var out bytes.Buffer
	require.Nil(t, tt.transaction.CreateTransfer(&out, ParseRequest(`transfer name "John Smith" 20 654321`)))
	assert.Equal(t, "Sent ₹20.00 to John Smith. Balance: ₹980.00\n", out.String())

	appErr := tt.transaction.CreateTransfer(&bytes.Buffer{}, ParseRequest(`transfer name "" 20 654321`))
	require.NotNil(t, appErr)
	assert.Equal(t, transferUsage, appErr.Message)
}
