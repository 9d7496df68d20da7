package ledger

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/model"
)

// DefaultTimeLayout renders CreatedAt as day/month/year hour:minute.
const DefaultTimeLayout = "2/1/2006 15:04"

// maxIDAttempts bounds regeneration when a generator returns a listed ID.
const maxIDAttempts = 8

// StoreOptions configures a Store. Zero fields fall back to defaults.
type StoreOptions struct {
	IDs        id.Generator
	Clock      func() time.Time
	TimeLayout string
}

// Store holds the session's transactions, newest first. It is not safe for
// concurrent use.
type Store struct {
	txns   []model.Transaction
	ids    id.Generator
	now    func() time.Time
	layout string
}

// NewStore creates an empty Store.
func NewStore(opts StoreOptions) *Store {
	s := &Store{ids: opts.IDs, now: opts.Clock, layout: opts.TimeLayout}
	if s.ids == nil {
		s.ids = id.UUID{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.layout == "" {
		s.layout = DefaultTimeLayout
	}
	return s
}

// Add validates the entry and prepends a new transaction. An empty kind means
// income. Validation failures are returned as ValidationError.
func (s *Store) Add(name, rawAmount string, kind model.Kind) (model.Transaction, error) {
	amount, err := Validate(name, rawAmount)
	if err != nil {
		return model.Transaction{}, err
	}

	if kind == "" {
		kind = model.DefaultKind
	}
	if !kind.Valid() {
		return model.Transaction{}, fmt.Errorf("unknown transaction kind %q", kind)
	}

	txnID, err := s.freshID()
	if err != nil {
		return model.Transaction{}, err
	}

	created := s.now()
	txn := model.Transaction{
		ID:        txnID,
		Name:      strings.TrimSpace(name),
		Amount:    amount,
		Kind:      kind,
		CreatedAt: created,
		Date:      created.Format(s.layout),
	}
	s.txns = slices.Insert(s.txns, 0, txn)
	return txn, nil
}

// Remove deletes the transaction with the given ID, keeping the order of the
// rest. It reports whether a transaction was removed; unknown IDs are a no-op.
func (s *Store) Remove(txnID string) bool {
	i := s.index(txnID)
	if i < 0 {
		return false
	}
	s.txns = slices.Delete(s.txns, i, i+1)
	return true
}

// Get returns the transaction with the given ID.
func (s *Store) Get(txnID string) (model.Transaction, bool) {
	i := s.index(txnID)
	if i < 0 {
		return model.Transaction{}, false
	}
	return s.txns[i], true
}

// List returns a copy of the transactions, newest first.
func (s *Store) List() []model.Transaction {
	return slices.Clone(s.txns)
}

// Len returns the number of transactions.
func (s *Store) Len() int {
	return len(s.txns)
}

// Balance returns income minus expenses over all transactions.
func (s *Store) Balance() decimal.Decimal {
	total := decimal.Zero
	for _, txn := range s.txns {
		total = total.Add(txn.Signed())
	}
	return total
}

// BalanceString returns the balance with exactly two fractional digits.
func (s *Store) BalanceString() string {
	return s.Balance().StringFixed(amountPlaces)
}

func (s *Store) index(txnID string) int {
	return slices.IndexFunc(s.txns, func(t model.Transaction) bool {
		return t.ID == txnID
	})
}

func (s *Store) freshID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		v := s.ids.NewID()
		if v != "" && s.index(v) < 0 {
			return v, nil
		}
	}
	return "", fmt.Errorf("generating transaction id: no unique id after %d attempts", maxIDAttempts)
}
