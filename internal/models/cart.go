package models

// CartItem is the minimal persisted cart projection: id, quantity and the
// price captured when the item was added. Images and descriptions are
// deliberately excluded to stay well inside the store's capacity limits, and
// the price snapshot means later catalog edits never change a cart
// retroactively.
type CartItem struct {
	ID       int    `json:"id"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// LineTotal is the numeric price times quantity for one line item.
func (i CartItem) LineTotal() float64 {
	qty := i.Quantity
	if qty < 1 {
		qty = 1
	}
	return PriceValue(i.Price) * float64(qty)
}
