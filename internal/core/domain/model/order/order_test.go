package order_test

import (
	"testing"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/domain/model/order"
	"printfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItem_Lookups(t *testing.T) {
	item := order.LineItem{
		Properties: map[string]string{" Width ": " 11 "},
		Options:    []order.Option{{Name: "SIZE", Value: "11 x 17"}},
	}

	w, ok := item.Property("width")
	require.True(t, ok)
	assert.Equal(t, "11", w)

	size, ok := item.Option("size")
	require.True(t, ok)
	assert.Equal(t, "11 x 17", size)

	_, ok = item.Property("height")
	assert.False(t, ok)
}

func TestOrder_Validate(t *testing.T) {
	require.ErrorIs(t, order.Order{}.Validate(), errs.ErrValueIsRequired)

	o := order.Order{ID: kernel.NewUUID(), Items: []order.LineItem{{Quantity: 0}}}
	require.ErrorIs(t, o.Validate(), errs.ErrValueIsOutOfRange)

	o.Items[0].Quantity = 2
	require.NoError(t, o.Validate())
}
