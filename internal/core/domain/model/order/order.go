package order

import (
	"strings"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"
)

// Order is an immutable storefront order snapshot.
type Order struct {
	ID      kernel.UUID
	OwnerID string
	Items   []LineItem
}

// LineItem is one purchased line. Properties are customer-entered key/values
// ("width", "height", "dpi", ...); Options are the storefront's named variant
// options ("Size" = "11 x 17 in").
type LineItem struct {
	Title        string
	VariantLabel string
	Quantity     int
	Properties   map[string]string
	Options      []Option
}

type Option struct {
	Name  string
	Value string
}

func (o Order) Validate() error {
	if err := o.ID.Validate(); err != nil {
		return err
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, "unbounded")
		}
	}
	return nil
}

// Property looks a property up by key, ignoring case and surrounding space.
func (li LineItem) Property(key string) (string, bool) {
	for k, v := range li.Properties {
		if strings.EqualFold(strings.TrimSpace(k), key) {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// Option looks a named option up, ignoring case.
func (li LineItem) Option(name string) (string, bool) {
	for _, o := range li.Options {
		if strings.EqualFold(strings.TrimSpace(o.Name), name) {
			return strings.TrimSpace(o.Value), true
		}
	}
	return "", false
}
