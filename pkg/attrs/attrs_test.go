package attrs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payment struct {
	Name   string `attr:"name"`
	Amount int    `attr:"amount"`
}

func TestSchema_Check(t *testing.T) {
	s := NewSchema("name", "amount", "name")

	t.Run("duplicates are collapsed", func(t *testing.T) {
		assert.Equal(t, []string{"name", "amount"}, s.Names())
	})

	t.Run("known keys pass", func(t *testing.T) {
		require.NoError(t, s.Check(map[string]any{"name": "x"}))
		require.NoError(t, s.Check(nil))
	})

	t.Run("unknown keys are reported sorted", func(t *testing.T) {
		err := s.Check(map[string]any{"name": "x", "zeta": 1, "alpha": 2})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnrecognizedAttribute)

		var uerr *UnrecognizedAttributeError
		require.True(t, errors.As(err, &uerr))
		assert.Equal(t, []string{"alpha", "zeta"}, uerr.Names)
		assert.Contains(t, err.Error(), "alpha, zeta")
	})
}

func TestSchema_Names_ReturnsCopy(t *testing.T) {
	s := NewSchema("a")
	names := s.Names()
	names[0] = "b"
	assert.True(t, s.Allows("a"))
	assert.False(t, s.Allows("b"))
}

func TestSchema_Build(t *testing.T) {
	s := NewSchema("name", "amount")

	t.Run("assigns each value onto the tagged field", func(t *testing.T) {
		var p payment
		require.NoError(t, s.Build(map[string]any{"name": "rent", "amount": "12"}, &p))
		assert.Equal(t, payment{Name: "rent", Amount: 12}, p)
	})

	t.Run("rejects before assigning anything", func(t *testing.T) {
		var p payment
		err := s.Build(map[string]any{"name": "rent", "memo": "x"}, &p)
		assert.ErrorIs(t, err, ErrUnrecognizedAttribute)
		assert.Equal(t, payment{}, p)
	})

	t.Run("wraps decode failures", func(t *testing.T) {
		var p payment
		err := s.Build(map[string]any{"amount": "twelve"}, &p)
		assert.ErrorIs(t, err, ErrInvalidAttributeValue)
	})
}

func TestHas(t *testing.T) {
	m := map[string]any{"flag": nil}
	assert.True(t, Has(m, "flag"))
	assert.False(t, Has(m, "other"))
	assert.False(t, Has(nil, "flag"))
}
