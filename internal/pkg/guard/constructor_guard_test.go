package guard_test

import (
	"errors"
	"testing"

	"printfloor/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expected := errors.New("Job must be created via NewJob")

		// When
		err := g.Validate(expected)

		// Then
		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInAggregate(t *testing.T) {
	errBatchNotConstructed := errors.New("Batch must be created via NewBatch")

	type batch struct {
		sheetArea float64
		guard     guard.ConstructorGuard
	}

	newBatch := func(area float64) (batch, error) {
		if area <= 0 {
			return batch{}, errors.New("sheet area must be positive")
		}
		return batch{sheetArea: area, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_built_value_validates", func(t *testing.T) {
		b, err := newBatch(120)

		require.NoError(t, err)
		require.NoError(t, b.guard.Validate(errBatchNotConstructed))
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var b batch

		require.ErrorIs(t, b.guard.Validate(errBatchNotConstructed), errBatchNotConstructed)
	})

	t.Run("guard_survives_copy_by_value", func(t *testing.T) {
		b, err := newBatch(42)
		require.NoError(t, err)

		c := b

		require.NoError(t, c.guard.Validate(errBatchNotConstructed))
	})
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(err)
	}
}
