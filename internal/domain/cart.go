package domain

// MaxLineQuantity bounds explicit quantity updates of a single cart line.
const MaxLineQuantity = 99

type CartLine struct {
	ProductID ProductID
	Quantity  int
}

// Cart is a read-only snapshot of a shopper's cart.
type Cart struct {
	ShopperID string
	Lines     []CartLine
	Count     int
	Subtotal  Money
}
