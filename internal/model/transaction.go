package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a transaction as money coming in or going out.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// DefaultKind is used when no kind is given.
const DefaultKind = KindIncome

// ParseKind converts user input to a Kind. Empty input yields DefaultKind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return DefaultKind, nil
	case KindIncome, KindExpense:
		return k, nil
	default:
		return "", fmt.Errorf("unknown transaction kind %q", s)
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Sign returns the display prefix for amounts of this kind.
func (k Kind) Sign() string {
	if k == KindExpense {
		return "-"
	}
	return "+"
}

// Transaction is a single income or expense entry. It is never mutated after
// creation.
type Transaction struct {
	ID        string
	Name      string
	Amount    decimal.Decimal // non-negative, two fractional digits
	Kind      Kind
	CreatedAt time.Time
	Date      string // CreatedAt formatted for display
}

// Signed returns the amount as it contributes to the balance.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == KindExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// DisplayAmount returns the amount with its sign prefix, e.g. "+ 100.00".
func (t Transaction) DisplayAmount(currency string) string {
	return fmt.Sprintf("%s %s%s", t.Kind.Sign(), currency, t.Amount.StringFixed(2))
}
