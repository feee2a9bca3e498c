package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wizbangpos/wizbang-client/internal/wberr"
)

func TestInvoiceLineQuantity(t *testing.T) {
	price := decimal.RequireFromString("4.50")
	line := InvoiceLine{
		UnitPrice: &price,
		Total:     decimal.RequireFromString("13.50"),
	}

	qty, err := line.Quantity()
	if err != nil {
		t.Fatalf("Quantity failed: %v", err)
	}
	if qty.String() != "3" {
		t.Errorf("quantity = %s, want 3", qty)
	}
}

// A zero or absent unit price must signal an error, never a silent
// infinity or NaN.
func TestInvoiceLineQuantityBadUnitPrice(t *testing.T) {
	zero := decimal.Zero
	tests := []struct {
		name      string
		unitPrice *decimal.Decimal
	}{
		{"zero", &zero},
		{"absent", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := InvoiceLine{
				UnitPrice: tt.unitPrice,
				Total:     decimal.RequireFromString("9.00"),
			}
			_, err := line.Quantity()
			var mapErr *wberr.MappingError
			if !errors.As(err, &mapErr) {
				t.Fatalf("expected MappingError, got %v", err)
			}
		})
	}
}

// Quantity is derived on access, so adjusting the total is reflected
// immediately.
func TestInvoiceLineQuantityNotCached(t *testing.T) {
	price := decimal.RequireFromString("2.00")
	line := InvoiceLine{UnitPrice: &price, Total: decimal.RequireFromString("4.00")}

	if qty, _ := line.Quantity(); qty.String() != "2" {
		t.Fatalf("quantity = %s, want 2", qty)
	}

	line.Total = decimal.RequireFromString("6.00")
	if qty, _ := line.Quantity(); qty.String() != "3" {
		t.Errorf("quantity after total change = %s, want 3", qty)
	}
}

func TestItemPriceTiers(t *testing.T) {
	item := Item{}
	item.Prices[0] = decimal.RequireFromString("4.50")
	item.Prices[5] = decimal.RequireFromString("6.00")

	if item.Price(1).String() != "4.5" {
		t.Errorf("Price(1) = %s, want 4.5", item.Price(1))
	}
	if item.Price(6).String() != "6" {
		t.Errorf("Price(6) = %s, want 6", item.Price(6))
	}
	if !item.Price(0).IsZero() || !item.Price(7).IsZero() {
		t.Error("out-of-range tiers should be zero")
	}
}
