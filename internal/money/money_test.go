package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMajorUnits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(285000), FromMajorUnits(2850, "USD").MinorUnits())
	assert.Equal(t, int64(1999), FromMajorUnits(19.99, "USD").MinorUnits())
	assert.Equal(t, int64(10), FromMajorUnits(0.1, "USD").MinorUnits())
	assert.Equal(t, int64(0), FromMajorUnits(0, "USD").MinorUnits())
}

func TestFromMajorString(t *testing.T) {
	t.Parallel()

	m, err := FromMajorString("2850.00", "USD")
	require.NoError(t, err)
	assert.Equal(t, int64(285000), m.MinorUnits())
	assert.Equal(t, "USD", m.Currency())

	_, err = FromMajorString("not-a-number", "USD")
	assert.Error(t, err)
}

func TestMajorString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2850.00", New(285000, "USD").MajorString())
	assert.Equal(t, "0.05", New(5, "USD").MajorString())
	assert.Equal(t, "0.00", New(0, "USD").MajorString())
}

func TestAdd(t *testing.T) {
	t.Parallel()

	sum, err := New(100, "USD").Add(New(250, "USD"))
	require.NoError(t, err)
	assert.Equal(t, int64(350), sum.MinorUnits())

	_, err = New(100, "USD").Add(New(100, "EUR"))
	assert.Error(t, err)
}

func TestMulAndPredicates(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(600), New(200, "USD").Mul(3).MinorUnits())
	assert.True(t, New(1, "USD").IsPositive())
	assert.False(t, New(0, "USD").IsPositive())
	assert.True(t, New(100, "USD").Equal(New(100, "USD")))
	assert.False(t, New(100, "USD").Equal(New(100, "EUR")))
}
