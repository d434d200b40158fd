package domain

import "github.com/shopspring/decimal"

const ServiceTypeDigitalProduct = "digital_product"

// CartLine is one product in a shopping cart. Price is the unit price.
type CartLine struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	ServiceType string          `json:"serviceType"`
}

// LineFromProduct builds the cart line the storefront adds for a catalog product.
func LineFromProduct(p Product, quantity int) CartLine {
	return CartLine{
		ID:          p.ID,
		Name:        p.Title,
		Description: p.Description,
		Price:       decimal.NewFromFloat(p.Price),
		Quantity:    quantity,
		Image:       p.Image,
		Category:    p.Category,
		ServiceType: ServiceTypeDigitalProduct,
	}
}
