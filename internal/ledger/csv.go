package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tally-dev/tally/internal/model"
)

// Header is the CSV header written by WriteTransactions.
const Header = "id,name,kind,amount,created_at"

const (
	numFields    = 5
	colID        = 0
	colName      = 1
	colKind      = 2
	colAmount    = 3
	colCreatedAt = 4
)

// WriteTransactions writes transactions as CSV (including header) in the order
// given. Amounts are signed.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = txn.ID
	row[colName] = txn.Name
	row[colKind] = string(txn.Kind)
	row[colAmount] = txn.Signed().StringFixed(amountPlaces)
	row[colCreatedAt] = txn.CreatedAt.Format(time.RFC3339)
	return row
}
