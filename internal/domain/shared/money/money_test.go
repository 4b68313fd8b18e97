package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesCurrency(t *testing.T) {
	m, err := New(500, "rub")
	require.NoError(t, err)
	assert.Equal(t, "RUB", m.Currency)

	_, err = New(500, "ruble")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestMultiply(t *testing.T) {
	daily := Must(100, "RUB")
	total := daily.Multiply(5)
	assert.Equal(t, int64(500), total.Amount)
	assert.Equal(t, "RUB", total.Currency)
}

func TestAdd(t *testing.T) {
	sum, err := Must(100, "RUB").Add(Must(250, "RUB"))
	require.NoError(t, err)
	assert.Equal(t, int64(350), sum.Amount)

	_, err = Must(100, "RUB").Add(Must(100, "EUR"))
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}
