package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tally-dev/tally/internal/model"
)

// Form holds the pending, uncommitted input.
type Form struct {
	Name   string
	Amount string
	Kind   model.Kind
}

// Errors flags which input rejected the last add attempt. At most one is set.
type Errors struct {
	Name   bool
	Amount bool
}

// View is what the presentation layer renders.
type View struct {
	Balance      string
	Transactions []model.Transaction
	Form         Form
	Errors       Errors
}

// Session owns a Store together with the pending form and error flags. Its
// methods are the only mutators; it is not safe for concurrent use.
type Session struct {
	store       *Store
	form        Form
	errs        Errors
	defaultKind model.Kind
	log         zerolog.Logger
}

// NewSession creates a Session over store. An empty defaultKind means income.
func NewSession(store *Store, defaultKind model.Kind, logger zerolog.Logger) *Session {
	if defaultKind == "" {
		defaultKind = model.DefaultKind
	}
	s := &Session{store: store, defaultKind: defaultKind, log: logger}
	s.ClearForm()
	return s
}

// SetName updates the pending name.
func (s *Session) SetName(name string) {
	s.form.Name = name
}

// SetAmount updates the pending amount. A negative number is stored without
// its sign.
func (s *Session) SetAmount(raw string) {
	s.form.Amount = ClampAmountInput(raw)
}

// SetKind updates the pending kind. Empty input selects the session default.
func (s *Session) SetKind(raw string) error {
	kind, err := model.ParseKind(raw)
	if err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		kind = s.defaultKind
	}
	s.form.Kind = kind
	return nil
}

// SetField dispatches a field-change event by field name.
func (s *Session) SetField(field, value string) error {
	switch field {
	case "name":
		s.SetName(value)
	case "amount":
		s.SetAmount(value)
	case "kind":
		return s.SetKind(value)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// ClearForm resets the pending input to defaults.
func (s *Session) ClearForm() {
	s.form = Form{Kind: s.defaultKind}
}

// Submit adds the pending form as a transaction. On success the form and
// error flags are cleared; on a validation failure the form is kept and only
// the matching flag is set.
func (s *Session) Submit() (model.Transaction, error) {
	txn, err := s.store.Add(s.form.Name, s.form.Amount, s.form.Kind)

	var verr ValidationError
	if errors.As(err, &verr) {
		s.errs = Errors{
			Name:   verr.Kind == EmptyName,
			Amount: verr.Kind == InvalidAmount,
		}
		s.log.Debug().Stringer("reason", verr.Kind).Str("name", s.form.Name).Str("amount", s.form.Amount).Msg("add rejected")
		return model.Transaction{}, err
	}
	if err != nil {
		s.log.Error().Err(err).Msg("add failed")
		return model.Transaction{}, err
	}

	s.errs = Errors{}
	s.ClearForm()
	s.log.Debug().
		Str("id", txn.ID).
		Str("kind", string(txn.Kind)).
		Str("amount", txn.Amount.StringFixed(amountPlaces)).
		Str("balance", s.store.BalanceString()).
		Msg("transaction added")
	return txn, nil
}

// Remove deletes a transaction by ID. Unknown IDs are a no-op.
func (s *Session) Remove(txnID string) bool {
	removed := s.store.Remove(txnID)
	s.log.Debug().Str("id", txnID).Bool("removed", removed).Msg("remove transaction")
	return removed
}

// Form returns the pending input.
func (s *Session) Form() Form { return s.form }

// Errors returns the current validation flags.
func (s *Session) Errors() Errors { return s.errs }

// Store returns the underlying store.
func (s *Session) Store() *Store { return s.store }

// Snapshot returns the current state for rendering. Derived values are
// computed on each call.
func (s *Session) Snapshot() View {
	return View{
		Balance:      s.store.BalanceString(),
		Transactions: s.store.List(),
		Form:         s.form,
		Errors:       s.errs,
	}
}
