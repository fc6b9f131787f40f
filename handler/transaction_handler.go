package handler

import (
	"errors"
	"fmt"
	"io"

	"go-atm-engine/common"
	"go-atm-engine/logger"
	"go-atm-engine/model"
	"go-atm-engine/service"

	"github.com/sirupsen/logrus"
)

const transferUsage = "Usage: transfer <name|account|phone> <recipient> <amount> <passcode> [remarks] (quote names with spaces)"

// TransactionHandler holds dependencies for transfer commands.
type TransactionHandler struct {
	router         *service.TransactionRouter
	currencySymbol string
}

// NewTransactionHandler creates a new TransactionHandler with its dependencies.
func NewTransactionHandler(router *service.TransactionRouter, currencySymbol string) *TransactionHandler {
	return &TransactionHandler{router: router, currencySymbol: currencySymbol}
}

// TransferCommand is the positional form of the transfer command.
type TransferCommand struct {
	Kind      string `validate:"required"`
	Recipient string `validate:"required"`
	Amount    string `validate:"required"`
	Passcode  string `validate:"required,max=12"`
	Remarks   string `validate:"max=140"`
}

// CreateTransfer handles the transfer command for all three recipient kinds.
func (h *TransactionHandler) CreateTransfer(w io.Writer, r *Request) *common.AppError {
	cmd := TransferCommand{
		Kind:      r.Arg(0),
		Recipient: r.Arg(1),
		Amount:    r.Arg(2),
		Passcode:  r.Arg(3),
		Remarks:   r.Rest(4),
	}
	if appErr := common.ValidateStruct(&cmd); appErr != nil {
		return common.NewAppError(common.CodeInvalidInput, transferUsage, appErr.Err)
	}

	kind, err := service.ParseRecipientKind(cmd.Kind)
	if err != nil {
		return common.NewAppError(common.CodeInvalidInput, transferUsage, err)
	}
	if cmd.Remarks != "" && kind != model.RecipientPhone {
		return common.NewAppError(common.CodeInvalidInput, "Remarks are only supported for phone transfers.", nil)
	}
	amount, appErr := parseAmount(cmd.Amount)
	if appErr != nil {
		return appErr
	}

	logger.Log.WithFields(logrus.Fields{
		"recipient_kind": kind,
		"amount":         amount.String(),
	}).Info("Transfer request received")

	record, err := h.router.Transfer(amount, kind, cmd.Recipient, cmd.Remarks, cmd.Passcode)
	if err != nil {
		return transferError(kind, err)
	}

	fmt.Fprintf(w, "Sent %s to %s. Balance: %s\n",
		formatMoney(h.currencySymbol, record.Amount),
		record.Description(),
		formatMoney(h.currencySymbol, record.ResultingBalance),
	)
	return nil
}

var recipientMessages = map[model.RecipientKind]string{
	model.RecipientName:    "Please enter a recipient name.",
	model.RecipientAccount: "Enter valid recipient account number (min 6 digits).",
	model.RecipientPhone:   "Enter a valid 10-digit phone number.",
}

func transferError(kind model.RecipientKind, err error) *common.AppError {
	if errors.Is(err, service.ErrInvalidRecipient) {
		return common.NewAppError(common.CodeInvalidInput, recipientMessages[kind], err)
	}
	return ledgerError(err, "Could not process transfer")
}
