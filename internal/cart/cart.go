package cart

import (
	"context"

	"github.com/sirupsen/logrus"
	"evergrain-service/internal/models"
	"evergrain-service/internal/store"
)

// Aggregator manages quantity-keyed cart line items. Carts are independent of
// full product records: a line captures only id, quantity and a price
// snapshot taken at add-time, so later catalog price edits never change items
// already in a cart. Every mutation re-persists the minimal projection;
// persistence failures are swallowed by the store.
type Aggregator struct {
	store  *store.Store
	logger *logrus.Entry
}

// New creates an Aggregator over the persistent store.
func New(st *store.Store, logger *logrus.Logger) *Aggregator {
	return &Aggregator{
		store:  st,
		logger: logger.WithField("component", "cart"),
	}
}

// Get returns the cart's line items, empty for unknown carts.
func (a *Aggregator) Get(ctx context.Context, cartID string) []models.CartItem {
	return a.store.LoadCart(ctx, cartID)
}

// AddItem increments the quantity of an existing line or appends a new one
// with quantity 1, snapshotting the product's price. The price chain is
// legacy-first to match how older published records carry their price.
func (a *Aggregator) AddItem(ctx context.Context, cartID string, product *models.Product) []models.CartItem {
	items := a.store.LoadCart(ctx, cartID)

	for i := range items {
		if items[i].ID == product.ID {
			items[i].Quantity++
			a.store.SaveCart(ctx, cartID, items)
			return items
		}
	}

	price := product.Price
	if price == "" {
		price = product.PriceEN
	}
	if price == "" {
		price = product.PriceAR
	}
	if price == "" {
		price = "0"
	}

	items = append(items, models.CartItem{ID: product.ID, Quantity: 1, Price: price})
	a.store.SaveCart(ctx, cartID, items)
	return items
}

// RemoveItem deletes a line item.
func (a *Aggregator) RemoveItem(ctx context.Context, cartID string, productID int) []models.CartItem {
	items := a.store.LoadCart(ctx, cartID)

	kept := items[:0]
	for _, item := range items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	a.store.SaveCart(ctx, cartID, kept)
	return kept
}

// SetQuantity sets a line's quantity; zero or negative removes the line.
func (a *Aggregator) SetQuantity(ctx context.Context, cartID string, productID, quantity int) []models.CartItem {
	if quantity <= 0 {
		return a.RemoveItem(ctx, cartID, productID)
	}

	items := a.store.LoadCart(ctx, cartID)
	for i := range items {
		if items[i].ID == productID {
			items[i].Quantity = quantity
			break
		}
	}
	a.store.SaveCart(ctx, cartID, items)
	return items
}

// Clear empties the cart.
func (a *Aggregator) Clear(ctx context.Context, cartID string) {
	a.store.SaveCart(ctx, cartID, []models.CartItem{})
}

// Total sums numeric price times quantity over the line items.
func Total(items []models.CartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}

// Count sums the quantities over the line items.
func Count(items []models.CartItem) int {
	count := 0
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		count += qty
	}
	return count
}
