package repository

import (
	"iter"
	"slices"
	"sync"

	"go-atm-engine/logger"
	"go-atm-engine/model"

	"github.com/sirupsen/logrus"
)

// ITransactionRepository defines the contract for the transaction history store.
type ITransactionRepository interface {
	CreateTransaction(transaction model.TransactionRecord) error
	GetTransactions(limit int) []model.TransactionRecord
	View(limit int) iter.Seq[model.TransactionRecord]
	Count() int
}

// TransactionRepository keeps the history in memory, append only.
type TransactionRepository struct {
	mu      sync.RWMutex
	records []model.TransactionRecord
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction appends a record. The record becomes visible to readers
// only once it is fully stored.
func (r *TransactionRepository) CreateTransaction(transaction model.TransactionRecord) error {
	log := logger.Log.WithFields(logrus.Fields{
		"transaction_id": transaction.ID,
		"kind":           transaction.Kind,
		"amount":         transaction.Amount.String(),
	})
	log.Debug("Appending transaction to history")

	r.mu.Lock()
	r.records = append(r.records, transaction)
	r.mu.Unlock()
	return nil
}

// GetTransactions returns the most recent limit records, oldest first. A limit
// of zero or less returns the whole history. The result is a copy.
func (r *TransactionRepository) GetTransactions(limit int) []model.TransactionRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.window(limit))
}

// View is the sequence form of GetTransactions. The window is fixed when View
// is called: records appended afterwards are not yielded, and ranging over the
// sequence again yields the same records.
func (r *TransactionRepository) View(limit int) iter.Seq[model.TransactionRecord] {
	return slices.Values(r.GetTransactions(limit))
}

// window must be called with mu held.
func (r *TransactionRepository) window(limit int) []model.TransactionRecord {
	n := len(r.records)
	start := 0
	if limit > 0 && limit < n {
		start = n - limit
	}
	return r.records[start:n:n]
}

func (r *TransactionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
