// Package warehouse is the fulfilment side of the fixture domain: flat views
// built from store records.
package warehouse

import (
	"time"
)

// Shipment is what the packing floor sees of an order.
type Shipment struct {
	OrderNumber         string    `json:"order_number"`
	Reference           string    `json:"reference"`
	CustomerEmail       string    `json:"customer_email"`
	CustomerAddressCity string    `json:"city"`
	Destination         string    `json:"destination"`
	Status              string    `json:"status"`
	Priority            int       `json:"priority"`
	Total               string    `json:"total"`
	Lines               []Line    `json:"lines"`
	Notes               string    `json:"notes"`
	PackedBy            string    `json:"packed_by"`
	OrderedAt           time.Time `json:"ordered_at"`
}

// Line is a line item to pick. UnitPrice is in cents.
type Line struct {
	ProductID   int64  `json:"product_id"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
}

// StockReport is a printable stock line; every value is rendered text.
type StockReport struct {
	SKU       string
	Name      string
	Price     string
	Inventory string
}
