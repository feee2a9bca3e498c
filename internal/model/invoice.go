// =============================================================================
// WizBang Client - Invoice Domain Model
// =============================================================================
//
// Invoice records returned by the server's invoice endpoint. Instances are
// constructed fresh per lookup and are never cached; they share no state
// with the menu catalog.
//
// OPTIONAL FIELDS:
//   Several invoice fields are schema-version-dependent (for example the
//   refund note is only populated for credit notes). Those fields are
//   pointer-typed so that callers can distinguish "present but empty" from
//   "not present in this schema revision".
//
// =============================================================================

package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wizbangpos/wizbang-client/internal/wberr"
)

// =============================================================================
// INVOICE CLASSIFICATION
// =============================================================================

// InvoiceType distinguishes a sale from a credit note.
type InvoiceType string

const (
	InvoiceTypeInvoice    InvoiceType = "Invoice"
	InvoiceTypeCreditNote InvoiceType = "Credit Note"
)

// GroupType classifies how the sale was grouped on the terminal.
type GroupType string

const (
	GroupTypeTable    GroupType = "Table"
	GroupTypeTab      GroupType = "Tab"
	GroupTypeCashSale GroupType = "Cash Sale"
)

// =============================================================================
// INVOICE RECORDS
// =============================================================================

// Invoice is one invoice as returned by the server, with its lines and
// tender lines preserved in document order.
type Invoice struct {
	ID      string
	Number  string
	Outlet  string
	Type    InvoiceType

	// RefundNote is only present when Type is InvoiceTypeCreditNote.
	// nil means the schema revision did not carry the field.
	RefundNote *string

	// AccountID is the charged account, when the sale was on account.
	AccountID *string

	// Grouping metadata.
	GroupType   GroupType
	GroupID     string
	TableNumber string
	GroupName   string

	Timestamp time.Time
	StaffID   string
	StaffName string
	Terminal  string

	// Lines are the invoice lines in document order.
	Lines []InvoiceLine

	// Aggregate totals.
	Subtotal         decimal.Decimal
	Discount         decimal.Decimal
	FoodSubtotal     decimal.Decimal
	BeverageSubtotal decimal.Decimal
	SalesTax         decimal.Decimal
	BalanceDue       decimal.Decimal

	// Tenders are the tender lines in document order.
	Tenders []TenderLine

	// Payment summary.
	Tendered  decimal.Decimal
	Change    decimal.Decimal
	OnAccount bool
}

// InvoiceLine is a single line of an invoice.
type InvoiceLine struct {
	ID          string
	ItemGroupID string
	ItemID      string

	// Abbreviation is the abbreviated item name printed on dockets.
	Abbreviation string

	// UnitPrice is nil when the schema revision omitted the field.
	UnitPrice *decimal.Decimal

	Total      decimal.Decimal
	Discount   decimal.Decimal
	SalesTax   decimal.Decimal
	Surcharge  decimal.Decimal
	WeightItem bool
}

// Quantity derives the line quantity as Total / UnitPrice. The quantity is
// recomputed on every call rather than stored, so it can never go stale if
// the total or unit price is adjusted. A zero or absent unit price is a
// mapping error, never a silent infinity.
func (l *InvoiceLine) Quantity() (decimal.Decimal, error) {
	if l.UnitPrice == nil {
		return decimal.Zero, &wberr.MappingError{
			Kind:    "invoiceline",
			Field:   "unitprice",
			Message: "cannot derive quantity: unit price absent",
		}
	}
	if l.UnitPrice.IsZero() {
		return decimal.Zero, &wberr.MappingError{
			Kind:    "invoiceline",
			Field:   "unitprice",
			Message: "cannot derive quantity: unit price is zero",
		}
	}
	return l.Total.Div(*l.UnitPrice), nil
}

// TenderLine is a single payment applied to an invoice.
type TenderLine struct {
	ID         string
	TenderType string
	Amount     decimal.Decimal
	Tip        decimal.Decimal
	Rounding   decimal.Decimal
}
