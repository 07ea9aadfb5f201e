package order

import (
	"math"
	"strings"
	"time"
)

// Order types.
const (
	TypePickup   = "pickup"
	TypeDelivery = "delivery"
)

// DefaultPickupTime is used when the call gave no timing.
const DefaultPickupTime = "ASAP"

// LineItem is one priced order line. Two lines with the same name but
// different modifier lists are distinct entries.
type LineItem struct {
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unit_price"`
	LineTotal float64  `json:"line_total"`
	Modifiers []string `json:"modifiers"`
}

// Order is the final structured result of a call, ready for POS submission.
// Built fresh per call and never mutated after assembly.
type Order struct {
	ID           string     `json:"id"`
	CallID       string     `json:"call_id"`
	CustomerName string     `json:"customer_name"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	Items        []LineItem `json:"items"`
	PickupTime   string     `json:"pickup_time"`
	OrderType    string     `json:"order_type"`
	Subtotal     float64    `json:"subtotal"`
	Tax          float64    `json:"tax"`
	Total        float64    `json:"total"`
	Confirmed    bool       `json:"confirmed"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AddItem merges a line into the list. Identity is canonical name plus the
// exact modifier list in order; a repeat bumps the quantity and recomputes
// the line total. This is the only place quantities combine — every producer
// (transcript parse, AI parse, live-cart merge) goes through it.
func AddItem(items []LineItem, name string, quantity int, unitPrice float64, modifiers []string) []LineItem {
	key := itemKey(name, modifiers)
	for i := range items {
		if itemKey(items[i].Name, items[i].Modifiers) == key {
			items[i].Quantity += quantity
			items[i].LineTotal = round2(items[i].UnitPrice * float64(items[i].Quantity))
			return items
		}
	}
	return append(items, LineItem{
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: round2(unitPrice * float64(quantity)),
		Modifiers: modifiers,
	})
}

func itemKey(name string, modifiers []string) string {
	return name + "\x1f" + strings.Join(modifiers, "\x1f")
}

// ComputeTotals derives subtotal, tax and total from the item list. Pure
// function of items and the tax rate; accumulation is unrounded and only the
// returned values carry two-decimal rounding.
func ComputeTotals(items []LineItem, taxRate float64) (subtotal, tax, total float64) {
	var sum float64
	for _, item := range items {
		sum += item.UnitPrice * float64(item.Quantity)
	}
	return round2(sum), round2(sum * taxRate), round2(sum + sum*taxRate)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
