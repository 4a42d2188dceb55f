package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolfin/feeledger-api/pkg/apperror"
)

func TestParse(t *testing.T) {
	m, err := Parse("1234.56")
	require.NoError(t, err)
	assert.True(t, m.Equal(decimal.RequireFromString("1234.56")))

	// Blank form fields parse as zero.
	m, err = Parse("   ")
	require.NoError(t, err)
	assert.True(t, m.IsZero())

	_, err = Parse("12x")
	assert.ErrorIs(t, err, apperror.ErrInvalidAmount)
}

func TestParseNonNegative(t *testing.T) {
	_, err := ParseNonNegative("0")
	assert.NoError(t, err)

	_, err = ParseNonNegative("-0.01")
	assert.ErrorIs(t, err, apperror.ErrInvalidAmount)
}

func TestParsePositive(t *testing.T) {
	_, err := ParsePositive("0.01")
	assert.NoError(t, err)

	_, err = ParsePositive("0")
	assert.ErrorIs(t, err, apperror.ErrInvalidAmount)

	_, err = ParsePositive("")
	assert.ErrorIs(t, err, apperror.ErrInvalidAmount)
}

func TestPercent(t *testing.T) {
	got := Percent(FromInt(4000), decimal.RequireFromString("50"))
	assert.True(t, got.Equal(FromInt(2000)))

	// Full precision is kept for awkward percentages.
	got = Percent(FromInt(1000), decimal.RequireFromString("2.35"))
	assert.True(t, got.Equal(decimal.RequireFromString("23.5")))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1500.00", Format(FromInt(1500)))
	assert.Equal(t, "0.50", Format(decimal.RequireFromString("0.5")))
}

func TestClipZero(t *testing.T) {
	assert.True(t, ClipZero(decimal.RequireFromString("-3")).IsZero())
	assert.True(t, ClipZero(FromInt(3)).Equal(FromInt(3)))
}
