// =============================================================================
// WizBang Client - Client Facade
// =============================================================================
//
// The WizBang type is the entry point of the library. It owns the server
// address, one HTTP transport, and one menu catalog loaded eagerly during
// construction. A facade that failed to load its menu is never returned:
// callers either get a fully usable client or an error.
//
// OPERATIONS:
//   - Catalog()      : The menu snapshot loaded at construction.
//   - GetInvoice()   : One invoice lookup per call, one of three selector
//                      modes, result mapped fresh and never cached.
//   - PlaceOrder()   : Builds the order submission payload (no network
//                      call; the submission endpoint has never been
//                      observed server-side).
//   - AccountTypes() : The account-types document as a generic tree.
//   - SubmitOrder / GetAccount / GetPrintMessages : documented by the
//                      server but unimplemented in every observed
//                      revision; they fail with ErrNotImplemented.
//
// CONCURRENCY:
//   Single-threaded, synchronous request/response. The catalog is built
//   before the constructor returns and is never mutated afterwards, so
//   concurrent reads are safe. Each GetInvoice call produces an
//   independent Invoice value.
//
// =============================================================================

package client

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/wizbangpos/wizbang-client/internal/catalog"
	"github.com/wizbangpos/wizbang-client/internal/config"
	"github.com/wizbangpos/wizbang-client/internal/model"
	"github.com/wizbangpos/wizbang-client/internal/wberr"
	"github.com/wizbangpos/wizbang-client/internal/wbxml"
)

// =============================================================================
// LOGGING
// =============================================================================

// Logger is the logging interface the client reports request and mapping
// diagnostics through. Implement it with your preferred logging library;
// a nil logger disables diagnostics.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
}

// noopLogger discards all diagnostics.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}

// =============================================================================
// CLIENT FACADE
// =============================================================================

// WizBang is a client for one WizBang POS server.
type WizBang struct {
	cfg       *config.ClientConfig
	transport *transport
	catalog   *catalog.Catalog
	logger    Logger
}

// New connects to the server described by cfg and eagerly loads the menu
// catalog. Construction fails with a TransportError or MappingError if the
// initial load fails; a partially initialized client is never returned.
// logger may be nil.
func New(cfg *config.ClientConfig, logger Logger) (*WizBang, error) {
	if logger == nil {
		logger = noopLogger{}
	}

	wb := &WizBang{
		cfg:       cfg,
		transport: newTransport(cfg),
		logger:    logger,
	}

	logger.Info("loading menu", "endpoint", cfg.MenuEndpoint)

	doc, err := wb.transport.getDocument(cfg.MenuEndpoint, nil)
	if err != nil {
		return nil, err
	}
	cat, err := wbxml.MapMenu(doc)
	if err != nil {
		return nil, err
	}
	wb.catalog = cat

	logger.Info("menu loaded",
		"items", len(cat.Items()),
		"item_groups", len(cat.ItemGroups()),
		"modifiers", len(cat.Modifiers()),
		"modifier_groups", len(cat.ModifierGroups()),
	)

	return wb, nil
}

// Catalog returns the menu snapshot loaded at construction.
func (wb *WizBang) Catalog() *catalog.Catalog {
	return wb.catalog
}

// =============================================================================
// INVOICE LOOKUP
// =============================================================================

// InvoiceQuery selects one invoice. Exactly one lookup mode is honored,
// by precedence:
//   1. ID
//   2. Number together with Outlet
//   3. TxtCode
// A query satisfying none of the modes fails with InvalidQueryError.
type InvoiceQuery struct {
	ID      string
	Number  string
	Outlet  string
	TxtCode string
}

// GetInvoice fetches and maps one invoice. The result is constructed
// fresh per call and shares no state with the catalog or other calls.
func (wb *WizBang) GetInvoice(query InvoiceQuery) (*model.Invoice, error) {
	params := url.Values{}

	switch {
	case query.ID != "":
		// The id parameter name is a versioned wire contract; see
		// config.ClientConfig.InvoiceIDParam.
		params.Set(wb.cfg.InvoiceIDParam, query.ID)
	case query.Number != "" && query.Outlet != "":
		params.Set("invoicenumber", query.Number)
		params.Set("outletid", query.Outlet)
	case query.TxtCode != "":
		params.Set("txtcode", query.TxtCode)
	default:
		return nil, &wberr.InvalidQueryError{
			Message: "invoice lookup requires an id, an invoice number with an outlet id, or a txtcode",
		}
	}

	wb.logger.Debug("fetching invoice", "params", params.Encode())

	doc, err := wb.transport.getDocument(wb.cfg.InvoiceEndpoint, params)
	if err != nil {
		return nil, err
	}
	return wbxml.MapInvoice(doc)
}

// =============================================================================
// ORDER PLACEMENT
// =============================================================================

// PlaceOrder builds the flat key-value payload for submitting an order.
// This is a pure data transformation: no network call is made, because no
// order-submission endpoint has been observed server-side. The payload
// shape is the externally observable wire contract:
//
//   customerid        - the customer's id
//   epd               - mode code: "2" on account, "3" otherwise
//   lines             - number of order lines
//   tenderpayment     - "0" on account, "1" otherwise
//   tenderaccount     - "0" on account, "1" otherwise
//   olNitemid, olNqty - one pair per order line, N indexed from 1
//   customeraccountid - only present on account
func (wb *WizBang) PlaceOrder(order *model.Order, customer *model.Customer, onAccount bool) (url.Values, error) {
	if order == nil || len(order.Lines) == 0 {
		return nil, fmt.Errorf("order has no lines")
	}
	if customer == nil {
		return nil, fmt.Errorf("customer is required")
	}

	payload := url.Values{}
	payload.Set("customerid", customer.ID)

	if onAccount {
		payload.Set("epd", "2")
		payload.Set("tenderpayment", "0")
		payload.Set("tenderaccount", "0")
		payload.Set("customeraccountid", customer.AccountID)
	} else {
		payload.Set("epd", "3")
		payload.Set("tenderpayment", "1")
		payload.Set("tenderaccount", "1")
	}

	payload.Set("lines", strconv.Itoa(len(order.Lines)))

	for i, line := range order.Lines {
		if line.Item == nil {
			return nil, fmt.Errorf("order line %d has no item", i+1)
		}
		if line.Quantity < 1 {
			return nil, fmt.Errorf("order line %d has non-positive quantity %d", i+1, line.Quantity)
		}
		payload.Set(fmt.Sprintf("ol%ditemid", i+1), line.Item.ID)
		payload.Set(fmt.Sprintf("ol%dqty", i+1), strconv.Itoa(line.Quantity))
	}

	return payload, nil
}

// =============================================================================
// ACCOUNT TYPES
// =============================================================================

// AccountTypes fetches and returns the parsed account-types document as a
// generic node tree.
func (wb *WizBang) AccountTypes() (*wbxml.Node, error) {
	doc, err := wb.transport.getDocument(wb.cfg.AccountTypesEndpoint, nil)
	if err != nil {
		return nil, err
	}
	return wbxml.MapAccountTypes(doc)
}

// =============================================================================
// UNIMPLEMENTED SERVER ENDPOINTS
// =============================================================================
// The server documents these operations but has never implemented them in
// any observed revision. They fail explicitly so callers can distinguish
// "feature absent" from "feature returned nothing".

// SubmitOrder would send a built order payload to the server.
func (wb *WizBang) SubmitOrder(order *model.Order, customer *model.Customer, onAccount bool) error {
	return wberr.ErrNotImplemented
}

// GetAccount would fetch an account by id or number.
func (wb *WizBang) GetAccount(id, number string) error {
	return wberr.ErrNotImplemented
}

// GetPrintMessages would fetch the print messages for an outlet.
func (wb *WizBang) GetPrintMessages(outlet string) error {
	return wberr.ErrNotImplemented
}
