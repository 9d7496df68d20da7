package ledger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/model"
)

func newTestSession() *Session {
	return NewSession(newTestStore(), model.KindIncome, zerolog.Nop())
}

func TestSession_Defaults(t *testing.T) {
	s := newTestSession()
	assert.Equal(t, Form{Kind: model.KindIncome}, s.Form())
	assert.Equal(t, Errors{}, s.Errors())

	v := s.Snapshot()
	assert.Equal(t, "0.00", v.Balance)
	assert.Empty(t, v.Transactions)
}

func TestSession_SubmitSuccessClearsForm(t *testing.T) {
	s := newTestSession()
	s.SetName("Salary")
	s.SetAmount("100")
	require.NoError(t, s.SetKind("expense"))

	txn, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, "Salary", txn.Name)
	assert.Equal(t, model.KindExpense, txn.Kind)

	assert.Equal(t, Form{Kind: model.KindIncome}, s.Form())
	assert.Equal(t, Errors{}, s.Errors())
	assert.Equal(t, "-100.00", s.Snapshot().Balance)
}

func TestSession_EmptyNameFlag(t *testing.T) {
	s := newTestSession()
	s.SetAmount("50")

	_, err := s.Submit()
	requireValidation(t, err, EmptyName)

	assert.Equal(t, Errors{Name: true}, s.Errors())
	assert.Equal(t, "50", s.Form().Amount, "form must be preserved on failure")
	assert.Equal(t, 0, s.Store().Len())
}

func TestSession_AmountFlag(t *testing.T) {
	for _, raw := range []string{"0", ""} {
		s := newTestSession()
		s.SetName("Coffee")
		require.NoError(t, s.SetKind("expense"))
		s.SetAmount(raw)

		_, err := s.Submit()
		requireValidation(t, err, InvalidAmount)

		assert.Equal(t, Errors{Amount: true}, s.Errors())
		assert.Equal(t, Form{Name: "Coffee", Amount: raw, Kind: model.KindExpense}, s.Form())
		assert.Equal(t, 0, s.Store().Len())
	}
}

func TestSession_FlagsMutuallyExclusive(t *testing.T) {
	s := newTestSession()

	_, err := s.Submit()
	require.Error(t, err)
	assert.Equal(t, Errors{Name: true}, s.Errors())

	s.SetName("Coffee")
	_, err = s.Submit()
	require.Error(t, err)
	assert.Equal(t, Errors{Amount: true}, s.Errors())

	s.SetName("")
	_, err = s.Submit()
	require.Error(t, err)
	assert.Equal(t, Errors{Name: true}, s.Errors())

	s.SetName("Coffee")
	s.SetAmount("2")
	_, err = s.Submit()
	require.NoError(t, err)
	assert.Equal(t, Errors{}, s.Errors())
}

func TestSession_FieldEditsDoNotTouchListOrFlags(t *testing.T) {
	s := newTestSession()
	s.SetName("A")
	s.SetAmount("1")
	_, err := s.Submit()
	require.NoError(t, err)

	_, err = s.Submit()
	require.Error(t, err)
	flags := s.Errors()

	require.NoError(t, s.SetField("name", "B"))
	require.NoError(t, s.SetField("amount", "5"))
	require.NoError(t, s.SetField("kind", "expense"))

	assert.Equal(t, flags, s.Errors())
	assert.Equal(t, 1, s.Store().Len())
	assert.Equal(t, "1.00", s.Snapshot().Balance)
	assert.Equal(t, Form{Name: "B", Amount: "5", Kind: model.KindExpense}, s.Form())
}

func TestSession_SetFieldUnknown(t *testing.T) {
	s := newTestSession()
	require.Error(t, s.SetField("date", "today"))
	require.Error(t, s.SetField("kind", "transfer"))
	assert.Equal(t, model.KindIncome, s.Form().Kind)
}

func TestSession_NegativeAmountClamped(t *testing.T) {
	s := newTestSession()
	s.SetName("Refund")
	s.SetAmount("-25.5")
	assert.Equal(t, "25.5", s.Form().Amount)

	txn, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, "25.50", txn.Amount.StringFixed(2))
}

func TestSession_DefaultKindConfigured(t *testing.T) {
	s := NewSession(newTestStore(), model.KindExpense, zerolog.Nop())
	assert.Equal(t, model.KindExpense, s.Form().Kind)

	require.NoError(t, s.SetKind("income"))
	s.SetName("Pay")
	s.SetAmount("10")
	_, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, model.KindExpense, s.Form().Kind)
}

func TestSession_Remove(t *testing.T) {
	s := newTestSession()
	s.SetName("A")
	s.SetAmount("1")
	a, err := s.Submit()
	require.NoError(t, err)

	assert.False(t, s.Remove("nope"))
	assert.True(t, s.Remove(a.ID))
	assert.Empty(t, s.Snapshot().Transactions)
}

func TestSession_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	s := NewSession(newTestStore(), model.KindIncome, logger)

	_, err := s.Submit()
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"reason":"empty_name"`)

	s.SetName("A")
	s.SetAmount("1")
	_, err = s.Submit()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"transaction added"`)
	assert.Contains(t, buf.String(), `"id":"t001"`)
}

func TestSession_EmptyKindUsesSessionDefault(t *testing.T) {
	s := NewSession(newTestStore(), model.KindExpense, zerolog.Nop())
	require.NoError(t, s.SetKind("income"))
	assert.Equal(t, model.KindIncome, s.Form().Kind)

	require.NoError(t, s.SetKind(""))
	assert.Equal(t, model.KindExpense, s.Form().Kind)

	require.NoError(t, s.SetKind("income"))
	require.NoError(t, s.SetField("kind", "  "))
	assert.Equal(t, model.KindExpense, s.Form().Kind)
}

func TestSession_OversizedAmountRejected(t *testing.T) {
	s := newTestSession()
	s.SetName("Lottery")
	s.SetAmount("1e20000000")

	_, err := s.Submit()
	requireValidation(t, err, InvalidAmount)
	assert.Equal(t, Errors{Amount: true}, s.Errors())
	assert.Equal(t, "0.00", s.Snapshot().Balance)
}
