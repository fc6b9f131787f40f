package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindDeposit                 TransactionKind = "deposit"
	KindWithdraw                TransactionKind = "withdraw"
	KindTransferByName          TransactionKind = "transfer_name"
	KindTransferByAccountNumber TransactionKind = "transfer_account"
	KindTransferByPhone         TransactionKind = "transfer_phone"
)

// IsTransfer reports whether the kind moves money out to a recipient.
func (k TransactionKind) IsTransfer() bool {
	switch k {
	case KindTransferByName, KindTransferByAccountNumber, KindTransferByPhone:
		return true
	}
	return false
}

// TransactionRecord is an immutable history entry. It is handed out by value.
type TransactionRecord struct {
	ID               uuid.UUID       `json:"id"`
	Kind             TransactionKind `json:"kind"`
	Amount           decimal.Decimal `json:"amount"`
	Counterpart      string          `json:"counterpart,omitempty"`
	Remarks          string          `json:"remarks,omitempty"`
	ResultingBalance decimal.Decimal `json:"resulting_balance"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Description renders the counterpart the way the history screen shows it.
func (r TransactionRecord) Description() string {
	switch r.Kind {
	case KindTransferByPhone:
		d := "Phone: " + r.Counterpart
		if r.Remarks != "" {
			d += fmt.Sprintf(" (%s)", r.Remarks)
		}
		return d
	case KindTransferByAccountNumber, KindTransferByName:
		return r.Counterpart
	}
	return "-"
}
