package dto

// AddToCartRequest comes from the product page form. Price rides along from
// the page because the cart never re-queries the catalog for it; a missing
// price just means a 0.00 line.
type AddToCartRequest struct {
	ProductId string  `form:"product_id" json:"product_id" validate:"required"`
	Price     float64 `form:"price" json:"price" validate:"min=0"`
	Quantity  int     `form:"quantity" json:"quantity"`
}

// CartItemView is a cart line plus the catalog metadata looked up at render
// time. Unavailable marks lines whose product lookup failed; they still render
// with a placeholder title so the cart math stays visible.
type CartItemView struct {
	ProductId   string  `json:"product_id"`
	Title       string  `json:"title"`
	Image       string  `json:"image,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
	Unavailable bool    `json:"unavailable,omitempty"`
}

type CartView struct {
	Items []CartItemView `json:"items"`
	Total float64        `json:"total"`
}

type OrderView struct {
	TransactionId string         `json:"transaction_id"`
	Items         []CartItemView `json:"items"`
	Total         float64        `json:"total"`
}
