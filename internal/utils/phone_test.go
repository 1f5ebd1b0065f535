package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	t.Run("national number uses default region", func(t *testing.T) {
		got, err := NormalizePhone("098765 43210", "IN")
		require.NoError(t, err)
		assert.Equal(t, "+919876543210", got)
	})

	t.Run("international prefix wins over region", func(t *testing.T) {
		got, err := NormalizePhone("+1 650-253-0000", "IN")
		require.NoError(t, err)
		assert.Equal(t, "+16502530000", got)
	})

	t.Run("blank is allowed", func(t *testing.T) {
		got, err := NormalizePhone("   ", "IN")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := NormalizePhone("not-a-number", "IN")
		assert.ErrorIs(t, err, ErrInvalidPhone)
	})

	t.Run("too short is rejected", func(t *testing.T) {
		_, err := NormalizePhone("12345", "IN")
		assert.ErrorIs(t, err, ErrInvalidPhone)
	})
}
