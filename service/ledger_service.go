// file: service/ledger_service.go

package service

import (
	"fmt"
	"iter"
	"sync"
	"time"

	"go-atm-engine/logger"
	"go-atm-engine/model"
	"go-atm-engine/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// SessionGate is what the ledger needs from the authentication layer.
type SessionGate interface {
	IsAuthenticated() bool
	AuthorizeTransfer(passcode string) (model.AuthResult, error)
}

// LedgerService owns the account balance and appends every applied mutation
// to the history. All mutations are serialized by mu.
type LedgerService struct {
	mu      sync.Mutex
	account *model.Account

	gate            SessionGate
	transactionRepo repository.ITransactionRepository
	now             func() time.Time
}

func NewLedgerService(account *model.Account, gate SessionGate, transactionRepo repository.ITransactionRepository) *LedgerService {
	return &LedgerService{
		account:         account,
		gate:            gate,
		transactionRepo: transactionRepo,
		now:             time.Now,
	}
}

// Balance returns the current balance.
func (s *LedgerService) Balance() (decimal.Decimal, error) {
	if !s.gate.IsAuthenticated() {
		return decimal.Zero, ErrNotAuthenticated
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account.Balance, nil
}

// Deposit adds amount to the balance. There is no upper bound.
func (s *LedgerService) Deposit(amount decimal.Decimal) (*model.TransactionRecord, error) {
	if !s.gate.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gate.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	return s.apply(model.KindDeposit, amount, s.account.Balance.Add(amount), model.Recipient{})
}

func (s *LedgerService) Withdraw(amount decimal.Decimal) (*model.TransactionRecord, error) {
	if !s.gate.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The session may have closed while the lock was awaited.
	if !s.gate.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	if amount.GreaterThan(s.account.Balance) {
		return nil, ErrInsufficientFunds
	}
	return s.apply(model.KindWithdraw, amount, s.account.Balance.Sub(amount), model.Recipient{})
}

// Transfer sends amount to recipient. Checks run in a fixed order: recipient
// shape, amount, passcode, funds. Nothing is changed unless all of them pass.
func (s *LedgerService) Transfer(amount decimal.Decimal, recipient model.Recipient, authorization string) (*model.TransactionRecord, error) {
	if !s.gate.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	kind, err := validateRecipient(recipient)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if _, err := s.gate.AuthorizeTransfer(authorization); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The session may have closed while the lock was awaited.
	if !s.gate.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	if amount.GreaterThan(s.account.Balance) {
		return nil, ErrInsufficientFunds
	}
	return s.apply(kind, amount, s.account.Balance.Sub(amount), recipient)
}

// History returns the most recent limit records in insertion order, or all of
// them when limit <= 0. The sequence can be ranged over any number of times.
func (s *LedgerService) History(limit int) (iter.Seq[model.TransactionRecord], error) {
	if !s.gate.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	return s.transactionRepo.View(limit), nil
}

// apply must be called with mu held. The record is stored before the new
// balance is published; a failed append leaves the balance untouched.
func (s *LedgerService) apply(kind model.TransactionKind, amount, newBalance decimal.Decimal, recipient model.Recipient) (*model.TransactionRecord, error) {
	record := model.TransactionRecord{
		ID:               uuid.New(),
		Kind:             kind,
		Amount:           amount,
		Counterpart:      recipient.Value,
		ResultingBalance: newBalance,
		CreatedAt:        s.now(),
	}
	if kind == model.KindTransferByPhone {
		record.Remarks = recipient.Remarks
	}

	log := logger.Log.WithFields(logrus.Fields{
		"kind":        kind,
		"amount":      amount.String(),
		"counterpart": record.Counterpart,
	})

	if err := s.transactionRepo.CreateTransaction(record); err != nil {
		log.WithError(err).Error("Failed to record transaction")
		return nil, fmt.Errorf("could not create transaction record: %w", err)
	}
	s.account.Balance = newBalance

	log.WithField("balance", newBalance.String()).Info("Transaction completed successfully")
	return &record, nil
}
