package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrorKind identifies which input rejected an add attempt.
type ErrorKind int

const (
	EmptyName ErrorKind = iota + 1
	InvalidAmount
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyName:
		return "empty_name"
	case InvalidAmount:
		return "invalid_amount"
	default:
		return fmt.Sprintf("error_kind(%d)", int(k))
	}
}

// ValidationError rejects an add attempt. Kinds are mutually exclusive: only
// the first failing check is reported.
type ValidationError struct {
	Kind ErrorKind
	Err  error
}

func (e ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation failed [%s]: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("validation failed [%s]", e.Kind)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks a pending entry in order (name, then amount) and returns the
// normalized amount when both pass.
func Validate(name, rawAmount string) (decimal.Decimal, error) {
	if strings.TrimSpace(name) == "" {
		return decimal.Zero, ValidationError{Kind: EmptyName}
	}
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return decimal.Zero, ValidationError{Kind: InvalidAmount, Err: err}
	}
	return amount, nil
}
