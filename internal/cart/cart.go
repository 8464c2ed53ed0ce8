package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"ModaVista/internal/store"
)

// MaxQuantity bounds a single cart row, merged or set directly.
const MaxQuantity = 1_000_000

var (
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 1000000")
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("cart item not found")

	// ErrIntegrity means a cart line points at a product that is gone.
	// Nothing deletes products today, so it signals a bug rather than user input.
	ErrIntegrity = errors.New("cart item references a missing product")
)

// Line is a cart item joined with the product as it is at read time.
type Line struct {
	store.CartItem
	Product store.Product `json:"product"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	UserID int64
	Lines  []Line
}

func (c Cart) TotalItems() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// TotalPrice uses current product prices. Nothing is locked between reads.
func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
