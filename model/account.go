package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the single account behind a terminal. Credentials are stored as
// bcrypt hashes and never change after the account is opened.
type Account struct {
	HolderID             string          `json:"holder_id,omitempty"`
	Balance              decimal.Decimal `json:"balance"`
	PINHash              string          `json:"-"`
	TransferPasscodeHash string          `json:"-"`
	OpenedAt             time.Time       `json:"opened_at"`
}
