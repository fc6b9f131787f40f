package service

import (
	"fmt"
	"strings"

	"go-atm-engine/common"
	"go-atm-engine/logger"
	"go-atm-engine/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// recipientRules is the one place recipient shapes are defined, as validator
// tags applied to the recipient value.
var recipientRules = map[model.RecipientKind]string{
	model.RecipientName:    "required",
	model.RecipientAccount: "required,number,min=6",
	model.RecipientPhone:   "required,number,len=10",
}

var recipientAliases = map[string]model.RecipientKind{
	"name":    model.RecipientName,
	"account": model.RecipientAccount,
	"acct":    model.RecipientAccount,
	"phone":   model.RecipientPhone,
	"upi":     model.RecipientPhone,
}

// ParseRecipientKind maps a terminal keyword to a recipient kind.
func ParseRecipientKind(s string) (model.RecipientKind, error) {
	kind, ok := recipientAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown recipient kind %q: %w", s, ErrInvalidRecipient)
	}
	return kind, nil
}

// NormalizeRecipient builds a validated recipient. Account and phone numbers
// are trimmed; names are kept verbatim. Remarks are dropped for every kind but
// phone.
func NormalizeRecipient(kind model.RecipientKind, value, remarks string) (model.Recipient, error) {
	r := model.Recipient{Kind: kind, Value: value}
	switch kind {
	case model.RecipientAccount:
		r.Value = strings.TrimSpace(value)
	case model.RecipientPhone:
		r.Value = strings.TrimSpace(value)
		r.Remarks = strings.TrimSpace(remarks)
	}
	if _, err := validateRecipient(r); err != nil {
		return model.Recipient{}, err
	}
	return r, nil
}

func validateRecipient(r model.Recipient) (model.TransactionKind, error) {
	rule, ok := recipientRules[r.Kind]
	if !ok {
		return "", ErrInvalidRecipient
	}
	kind, ok := r.Kind.TransactionKind()
	if !ok {
		return "", ErrInvalidRecipient
	}
	value := r.Value
	if r.Kind == model.RecipientName {
		value = strings.TrimSpace(value)
	}
	if err := common.Validator().Var(value, rule); err != nil {
		return "", ErrInvalidRecipient
	}
	return kind, nil
}

// Transferer is implemented by LedgerService.
type Transferer interface {
	Transfer(amount decimal.Decimal, recipient model.Recipient, authorization string) (*model.TransactionRecord, error)
}

// TransactionRouter validates the recipient of an outbound payment and hands
// the transfer to the ledger. Balance and passcode checks stay in the ledger.
type TransactionRouter struct {
	ledger Transferer
}

func NewTransactionRouter(ledger Transferer) *TransactionRouter {
	return &TransactionRouter{ledger: ledger}
}

func (r *TransactionRouter) Transfer(amount decimal.Decimal, kind model.RecipientKind, value, remarks, authorization string) (*model.TransactionRecord, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"recipient_kind": kind,
		"amount":         amount.String(),
	})

	recipient, err := NormalizeRecipient(kind, value, remarks)
	if err != nil {
		log.Info("Transfer rejected: malformed recipient")
		return nil, err
	}

	log.Info("Starting money transfer process")
	return r.ledger.Transfer(amount, recipient, authorization)
}
