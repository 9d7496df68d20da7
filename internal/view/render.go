// Package view renders a ledger session as a plain-text widget.
package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"

	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/model"
)

const (
	ansiReset = "\x1b[0m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiBold  = "\x1b[1m"
)

// errorCue marks a form field whose validation flag is set.
const errorCue = "!"

// Options controls rendering.
type Options struct {
	Currency string
	Color    bool
}

// IsTerminal reports whether w (a reader or writer) is a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Render writes the balance, the pending form, and the transaction list.
func Render(w io.Writer, opts Options, v ledger.View) error {
	var b strings.Builder

	b.WriteString(Balance(opts, v.Balance))
	b.WriteByte('\n')
	b.WriteString(FormLine(v.Form, v.Errors))
	b.WriteByte('\n')

	if len(v.Transactions) == 0 {
		b.WriteString("  (no transactions)\n")
	} else {
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, txn := range v.Transactions {
			fmt.Fprintf(tw, "  [%s]\t%s\t%s\t%s\n", txn.ID, txn.Name, txn.Date, Amount(opts, txn))
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("rendering transactions: %w", err)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing view: %w", err)
	}
	return nil
}

// Balance formats a balance string such as "-50.50" as "-$50.50", green when
// non-negative and red otherwise.
func Balance(opts Options, balance string) string {
	negative := strings.HasPrefix(balance, "-")
	text := opts.Currency + strings.TrimPrefix(balance, "-")
	color := ansiGreen
	if negative {
		text = "-" + text
		color = ansiRed
	}
	return paint(opts, ansiBold+color, text)
}

// Amount formats a transaction's signed display amount in its kind's colour.
func Amount(opts Options, txn model.Transaction) string {
	color := ansiGreen
	if txn.Kind == model.KindExpense {
		color = ansiRed
	}
	return paint(opts, color, txn.DisplayAmount(opts.Currency))
}

// FormLine renders the pending input, cueing the field that failed validation.
func FormLine(f ledger.Form, errs ledger.Errors) string {
	return fmt.Sprintf("name: [%s]%s  amount: [%s]%s  kind: %s",
		f.Name, cue(errs.Name), f.Amount, cue(errs.Amount), f.Kind)
}

func cue(set bool) string {
	if set {
		return errorCue
	}
	return ""
}

func paint(opts Options, code, text string) string {
	if !opts.Color {
		return text
	}
	return code + text + ansiReset
}
