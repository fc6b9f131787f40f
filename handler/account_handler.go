package handler

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"go-atm-engine/common"
	"go-atm-engine/model"
	"go-atm-engine/service"

	"github.com/shopspring/decimal"
)

type AccountHandler struct {
	service        *service.LedgerService
	currencySymbol string
	historyLimit   int
}

func NewAccountHandler(service *service.LedgerService, currencySymbol string, historyLimit int) *AccountHandler {
	return &AccountHandler{service: service, currencySymbol: currencySymbol, historyLimit: historyLimit}
}

// Balance shows the current balance.
func (h *AccountHandler) Balance(w io.Writer, r *Request) *common.AppError {
	balance, err := h.service.Balance()
	if err != nil {
		return ledgerError(err, "Could not read balance")
	}
	fmt.Fprintf(w, "Your current balance is %s\n", formatMoney(h.currencySymbol, balance))
	return nil
}

// Deposit handles `deposit <amount>`.
func (h *AccountHandler) Deposit(w io.Writer, r *Request) *common.AppError {
	amount, appErr := parseAmountCommand(r, "Usage: deposit <amount>")
	if appErr != nil {
		return appErr
	}

	record, err := h.service.Deposit(amount)
	if err != nil {
		return ledgerError(err, "Could not process deposit")
	}
	fmt.Fprintf(w, "Deposited %s. Balance: %s\n",
		formatMoney(h.currencySymbol, record.Amount), formatMoney(h.currencySymbol, record.ResultingBalance))
	return nil
}

// Withdraw handles `withdraw <amount>`.
func (h *AccountHandler) Withdraw(w io.Writer, r *Request) *common.AppError {
	amount, appErr := parseAmountCommand(r, "Usage: withdraw <amount>")
	if appErr != nil {
		return appErr
	}

	record, err := h.service.Withdraw(amount)
	if err != nil {
		return ledgerError(err, "Could not process withdrawal")
	}
	fmt.Fprintf(w, "Withdrew %s. Balance: %s\n",
		formatMoney(h.currencySymbol, record.Amount), formatMoney(h.currencySymbol, record.ResultingBalance))
	return nil
}

// History handles `history [limit]`, most recent first.
func (h *AccountHandler) History(w io.Writer, r *Request) *common.AppError {
	limit := h.historyLimit
	if arg := r.Arg(0); arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return common.NewAppError(common.CodeInvalidInput, "Usage: history [limit]", err)
		}
		limit = n
	}

	seq, err := h.service.History(limit)
	if err != nil {
		return ledgerError(err, "Could not retrieve transactions")
	}

	records := slices.Collect(seq)
	if len(records) == 0 {
		fmt.Fprintln(w, "No transactions yet.")
		return nil
	}
	slices.Reverse(records)
	for _, rec := range records {
		fmt.Fprintf(w, "%s | %-10s | %-12s | %-28s | %s\n",
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			kindLabel(rec.Kind),
			formatMoney(h.currencySymbol, rec.Amount),
			rec.Description(),
			formatMoney(h.currencySymbol, rec.ResultingBalance),
		)
	}
	return nil
}

func parseAmountCommand(r *Request, usage string) (decimal.Decimal, *common.AppError) {
	if len(r.Args) != 1 {
		return decimal.Zero, common.NewAppError(common.CodeInvalidInput, usage, nil)
	}
	return parseAmount(r.Arg(0))
}

// maxAmountLength bounds terminal amounts. Exponent notation is not accepted.
const maxAmountLength = 24

func parseAmount(s string) (decimal.Decimal, *common.AppError) {
	if len(s) > maxAmountLength || strings.ContainsAny(s, "eE") {
		return decimal.Zero, common.NewAppError(common.CodeInvalidInput, "Enter a valid amount.", nil)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, common.NewAppError(common.CodeInvalidInput, "Enter a valid amount.", nil)
	}
	return amount, nil
}

// ledgerError maps ledger error kinds to terminal messages.
func ledgerError(err error, fallback string) *common.AppError {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return common.NewAppError(common.CodeUnauthorized, "Please login first.", err)
	case errors.Is(err, service.ErrInvalidAmount):
		return common.NewAppError(common.CodeInvalidInput, "Amount must be greater than zero.", err)
	case errors.Is(err, service.ErrInsufficientFunds):
		return common.NewAppError(common.CodeConflict, "Insufficient balance.", err)
	case errors.Is(err, service.ErrInvalidRecipient):
		return common.NewAppError(common.CodeInvalidInput, "Invalid recipient.", err)
	case errors.Is(err, service.ErrMalformedCredential):
		return common.NewAppError(common.CodeInvalidInput, "Passcode must be 4 or 6 digits.", err)
	case errors.Is(err, service.ErrIncorrectCredential):
		return common.NewAppError(common.CodeForbidden, "Invalid passcode. Transaction canceled.", err)
	default:
		return common.NewAppError(common.CodeInternal, fallback, err)
	}
}

func formatMoney(symbol string, d decimal.Decimal) string {
	return symbol + d.StringFixed(2)
}

func kindLabel(k model.TransactionKind) string {
	switch {
	case k == model.KindDeposit:
		return "Deposit"
	case k == model.KindWithdraw:
		return "Withdraw"
	case k == model.KindTransferByPhone:
		return "Phone Pay"
	case k.IsTransfer():
		return "Transfer"
	default:
		return string(k)
	}
}
