package kernel_test

import (
	"testing"

	"foodbridge/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRandomAccessCode(t *testing.T) {
	t.Run("generates_fixed_length_numeric_code", func(t *testing.T) {
		code, err := kernel.NewRandomAccessCode()

		require.NoError(t, err)
		require.NoError(t, code.Validate())
		require.Len(t, code.Value(), kernel.AccessCodeLength)
		for _, c := range code.Value() {
			assert.GreaterOrEqual(t, c, '0')
			assert.LessOrEqual(t, c, '9')
		}
	})

	t.Run("matches_its_own_value", func(t *testing.T) {
		code, err := kernel.NewRandomAccessCode()
		require.NoError(t, err)

		assert.True(t, code.Matches(code.Value()))
	})
}

func TestAccessCodeFromString(t *testing.T) {
	t.Run("accepts_leading_zeros", func(t *testing.T) {
		code, err := kernel.AccessCodeFromString("0042")

		require.NoError(t, err)
		assert.Equal(t, "0042", code.Value())
	})

	t.Run("rejects_wrong_length", func(t *testing.T) {
		_, err := kernel.AccessCodeFromString("123")
		require.Error(t, err)

		_, err = kernel.AccessCodeFromString("12345")
		require.Error(t, err)
	})

	t.Run("rejects_non_digits", func(t *testing.T) {
		_, err := kernel.AccessCodeFromString("12a4")

		require.Error(t, err)
	})
}

func TestAccessCode_Matches(t *testing.T) {
	t.Run("rejects_wrong_code", func(t *testing.T) {
		code, err := kernel.AccessCodeFromString("1234")
		require.NoError(t, err)

		assert.False(t, code.Matches("4321"))
		assert.False(t, code.Matches(""))
		assert.False(t, code.Matches("12345"))
	})

	t.Run("zero_value_matches_nothing", func(t *testing.T) {
		var code kernel.AccessCode

		assert.False(t, code.Matches(""))
		assert.False(t, code.Matches("0000"))
	})
}

func TestAccessCode_String(t *testing.T) {
	t.Run("never_reveals_digits", func(t *testing.T) {
		code, err := kernel.AccessCodeFromString("1234")
		require.NoError(t, err)

		assert.NotContains(t, code.String(), "1234")
	})
}

func TestAccessCode_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var code kernel.AccessCode

		err := code.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrAccessCodeIsNotConstructed, err)
	})
}
