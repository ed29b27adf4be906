package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartItem keeps only what checkout math needs. Title and image are catalog
// data and get attached at render time, not stored.
type CartItem struct {
	ProductId string  `json:"product_id"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Order is the snapshot taken at checkout.
type Order struct {
	TransactionId string     `json:"transaction_id"`
	Items         []CartItem `json:"items"`
	Total         float64    `json:"total"`
	PlacedAt      time.Time  `json:"placed_at"`
}

// AddItem increments the quantity when the product is already in the cart,
// otherwise appends a new line. Quantity below 1 is treated as 1.
func (s *Session) AddItem(productId string, unitPrice float64, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range s.Cart {
		if s.Cart[i].ProductId == productId {
			s.Cart[i].Quantity += quantity
			s.recalcTotal()
			return
		}
	}
	s.Cart = append(s.Cart, CartItem{ProductId: productId, UnitPrice: unitPrice, Quantity: quantity})
	s.recalcTotal()
}

// RemoveItem drops the whole line. Unknown ids are a silent no-op.
func (s *Session) RemoveItem(productId string) {
	for i := range s.Cart {
		if s.Cart[i].ProductId == productId {
			s.Cart = append(s.Cart[:i], s.Cart[i+1:]...)
			s.recalcTotal()
			return
		}
	}
}

// Checkout snapshots the cart into an order with a fresh transaction id, then
// empties the cart. It never fails; there is no payment or inventory step.
func (s *Session) Checkout() *Order {
	items := make([]CartItem, len(s.Cart))
	copy(items, s.Cart)
	order := &Order{
		TransactionId: uuid.NewString(),
		Items:         items,
		Total:         s.CartTotal,
		PlacedAt:      time.Now(),
	}
	s.LastOrder = order
	s.Cart = []CartItem{}
	s.recalcTotal()
	return order
}

// CartSize is the unit count the nav badge shows, not the line count.
func (s *Session) CartSize() int {
	size := 0
	for _, item := range s.Cart {
		size += item.Quantity
	}
	return size
}

// ConsumeLastOrder hands out the confirmation snapshot exactly once.
func (s *Session) ConsumeLastOrder() *Order {
	order := s.LastOrder
	s.LastOrder = nil
	return order
}

// recalcTotal keeps CartTotal in sync after every cart mutation. CartTotal is
// a cache of the sum, never edited anywhere else.
func (s *Session) recalcTotal() {
	total := 0.0
	for _, item := range s.Cart {
		total += item.UnitPrice * float64(item.Quantity)
	}
	s.CartTotal = total
}
