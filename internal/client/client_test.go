package client_test

import (
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/wizbangpos/wizbang-client/internal/client"
	"github.com/wizbangpos/wizbang-client/internal/config"
	"github.com/wizbangpos/wizbang-client/internal/model"
	"github.com/wizbangpos/wizbang-client/internal/wberr"
)

const menuDoc = `<wizbang><menu>
  <itemgroup groupid="10"><name>Beverages</name><forb>b</forb></itemgroup>
  <item itemid="7"><name>Flat White</name><price1>4.50</price1><itemgroupid>10</itemgroupid></item>
  <item itemid="9"><name>Long Black</name><price1>4.00</price1><itemgroupid>10</itemgroupid></item>
  <modifier modifierid="31"><name>Soy Milk</name><price>0.50</price></modifier>
  <modifiergroup modgroupid="50"><name>Milk Options</name>
    <itemids><itemid>7</itemid></itemids>
    <modifierids><modifierid>31</modifierid></modifierids>
  </modifiergroup>
</menu></wizbang>`

const invoiceDoc = `<response><invoice>
  <invoice invoiceid="42" grouptype="Cash Sale">
    <invoicenumber>1001</invoicenumber>
    <outletid>3</outletid>
    <invoicetype>Invoice</invoicetype>
    <invoicelines>
      <invoiceline lineid="1">
        <itemid>7</itemid><abbreviation>FW</abbreviation>
        <unitprice>4.50</unitprice><total>4.50</total>
      </invoiceline>
    </invoicelines>
    <subtotal>4.50</subtotal><balancedue>0.00</balancedue>
  </invoice>
</invoice></response>`

// =============================================================================
// TEST SERVER PLUMBING
// =============================================================================

// testServer wraps an httptest server speaking the WizBang wire protocol
// and records the last invoice query it received.
type testServer struct {
	*httptest.Server
	lastInvoiceQuery url.Values
}

// newTestServer starts a server that serves the fixture menu and invoice
// documents.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/menu.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(menuDoc))
	})
	mux.HandleFunc("/invoice", func(w http.ResponseWriter, r *http.Request) {
		ts.lastInvoiceQuery = r.URL.Query()
		w.Write([]byte(invoiceDoc))
	})
	mux.HandleFunc("/accounttypes.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<accounttypes><accounttype typeid="1"><name>House</name></accounttype></accounttypes>`))
	})

	ts.Server = httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

// configFor builds a default client configuration pointing at a test
// server.
func configFor(t *testing.T, ts *testServer) *config.ClientConfig {
	t.Helper()

	parsed, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatalf("failed to parse test server URL: %v", err)
	}
	host, portText, err := net.SplitHostPort(parsed.Host)
	if err != nil {
		t.Fatalf("failed to split test server address: %v", err)
	}
	port, err := strconv.Atoi(portText)
	if err != nil {
		t.Fatalf("bad test server port: %v", err)
	}
	return config.Default(host, port)
}

func newTestClient(t *testing.T) (*client.WizBang, *testServer) {
	t.Helper()
	ts := newTestServer(t)
	wb, err := client.New(configFor(t, ts), nil)
	if err != nil {
		t.Fatalf("client construction failed: %v", err)
	}
	return wb, ts
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNewLoadsCatalogEagerly(t *testing.T) {
	wb, _ := newTestClient(t)

	cat := wb.Catalog()
	if len(cat.Items()) != 2 {
		t.Fatalf("catalog has %d items, want 2", len(cat.Items()))
	}
	item, ok := cat.FindItem("7")
	if !ok || item.Name != "Flat White" {
		t.Fatalf("FindItem(7) = (%v, %v)", item, ok)
	}
	if groups := cat.ModifierGroupsForItem("7"); len(groups) != 1 || groups[0].Name != "Milk Options" {
		t.Errorf("item 7 links = %v", groups)
	}
}

func TestNewFailsOnServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/menu.xml", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	_, err := client.New(configFor(t, &testServer{Server: server}), nil)
	var transportErr *wberr.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if transportErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", transportErr.StatusCode)
	}
}

func TestNewFailsOnMalformedMenu(t *testing.T) {
	tests := []struct {
		name string
		body string
		want func(error) bool
	}{
		{
			"empty body",
			"",
			func(err error) bool { var e *wberr.TransportError; return errors.As(err, &e) },
		},
		{
			"truncated XML",
			"<wizbang><menu>",
			func(err error) bool { var e *wberr.TransportError; return errors.As(err, &e) },
		},
		{
			"unresolved reference",
			`<wizbang><menu>
				<itemgroup groupid="10"><name>G</name></itemgroup>
				<modifiergroup modgroupid="50"><name>M</name><itemid>404</itemid></modifiergroup>
			</menu></wizbang>`,
			func(err error) bool { var e *wberr.MappingError; return errors.As(err, &e) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body
			mux := http.NewServeMux()
			mux.HandleFunc("/menu.xml", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})
			server := httptest.NewServer(mux)
			defer server.Close()

			_, err := client.New(configFor(t, &testServer{Server: server}), nil)
			if err == nil {
				t.Fatal("expected construction to fail")
			}
			if !tt.want(err) {
				t.Errorf("wrong error type: %v", err)
			}
		})
	}
}

// =============================================================================
// INVOICE LOOKUP
// =============================================================================

func TestGetInvoiceByID(t *testing.T) {
	wb, ts := newTestClient(t)

	inv, err := wb.GetInvoice(client.InvoiceQuery{ID: "42"})
	if err != nil {
		t.Fatalf("GetInvoice failed: %v", err)
	}

	if got := ts.lastInvoiceQuery.Get("invoiceid"); got != "42" {
		t.Errorf("request sent invoiceid=%q, want 42", got)
	}
	// The mapped invoice comes from the second invoice-tagged element.
	if inv.ID != "42" {
		t.Errorf("invoice id = %q, want 42", inv.ID)
	}
	if len(inv.Lines) != 1 || inv.Lines[0].ItemID != "7" {
		t.Errorf("lines = %v", inv.Lines)
	}
}

func TestGetInvoiceSelectorPrecedence(t *testing.T) {
	wb, ts := newTestClient(t)

	tests := []struct {
		name       string
		query      client.InvoiceQuery
		wantParams url.Values
	}{
		{
			"id wins over everything",
			client.InvoiceQuery{ID: "42", Number: "1001", Outlet: "3", TxtCode: "abc"},
			url.Values{"invoiceid": {"42"}},
		},
		{
			"number and outlet together",
			client.InvoiceQuery{Number: "1001", Outlet: "3", TxtCode: "abc"},
			url.Values{"invoicenumber": {"1001"}, "outletid": {"3"}},
		},
		{
			"number without outlet falls through to txtcode",
			client.InvoiceQuery{Number: "1001", TxtCode: "abc"},
			url.Values{"txtcode": {"abc"}},
		},
		{
			"txtcode alone",
			client.InvoiceQuery{TxtCode: "abc"},
			url.Values{"txtcode": {"abc"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := wb.GetInvoice(tt.query); err != nil {
				t.Fatalf("GetInvoice failed: %v", err)
			}
			if got := ts.lastInvoiceQuery.Encode(); got != tt.wantParams.Encode() {
				t.Errorf("params = %q, want %q", got, tt.wantParams.Encode())
			}
		})
	}
}

func TestGetInvoiceNoSelector(t *testing.T) {
	wb, _ := newTestClient(t)

	_, err := wb.GetInvoice(client.InvoiceQuery{})
	var queryErr *wberr.InvalidQueryError
	if !errors.As(err, &queryErr) {
		t.Fatalf("expected InvalidQueryError, got %v", err)
	}
}

// The id parameter name is a versioned wire contract; some revisions call
// it "id" instead of "invoiceid".
func TestGetInvoiceConfigurableIDParam(t *testing.T) {
	ts := newTestServer(t)
	cfg := configFor(t, ts)
	cfg.InvoiceIDParam = "id"

	wb, err := client.New(cfg, nil)
	if err != nil {
		t.Fatalf("client construction failed: %v", err)
	}
	if _, err := wb.GetInvoice(client.InvoiceQuery{ID: "42"}); err != nil {
		t.Fatalf("GetInvoice failed: %v", err)
	}

	if got := ts.lastInvoiceQuery.Get("id"); got != "42" {
		t.Errorf("request sent id=%q, want 42", got)
	}
	if ts.lastInvoiceQuery.Has("invoiceid") {
		t.Error("request still carries the default parameter name")
	}
}

// =============================================================================
// ORDER PAYLOAD
// =============================================================================

func TestPlaceOrderCash(t *testing.T) {
	wb, _ := newTestClient(t)

	item, _ := wb.Catalog().FindItem("7")
	order := &model.Order{Lines: []model.OrderLine{{Item: item, Quantity: 2}}}
	customer := &model.Customer{ID: "12", AccountID: "900"}

	payload, err := wb.PlaceOrder(order, customer, false)
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	want := map[string]string{
		"customerid":    "12",
		"epd":           "3",
		"tenderpayment": "1",
		"tenderaccount": "1",
		"lines":         "1",
		"ol1itemid":     "7",
		"ol1qty":        "2",
	}
	for key, value := range want {
		if got := payload.Get(key); got != value {
			t.Errorf("payload[%s] = %q, want %q", key, got, value)
		}
	}
	if payload.Has("customeraccountid") {
		t.Error("cash payload must omit customeraccountid")
	}
}

func TestPlaceOrderOnAccount(t *testing.T) {
	wb, _ := newTestClient(t)

	itemA, _ := wb.Catalog().FindItem("7")
	itemB, _ := wb.Catalog().FindItem("9")
	order := &model.Order{Lines: []model.OrderLine{
		{Item: itemA, Quantity: 2},
		{Item: itemB, Quantity: 1},
	}}
	customer := &model.Customer{ID: "12", AccountID: "900"}

	payload, err := wb.PlaceOrder(order, customer, true)
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	want := map[string]string{
		"epd":               "2",
		"tenderpayment":     "0",
		"tenderaccount":     "0",
		"customeraccountid": "900",
		"lines":             "2",
		"ol1itemid":         "7",
		"ol1qty":            "2",
		"ol2itemid":         "9",
		"ol2qty":            "1",
	}
	for key, value := range want {
		if got := payload.Get(key); got != value {
			t.Errorf("payload[%s] = %q, want %q", key, got, value)
		}
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	wb, _ := newTestClient(t)
	item, _ := wb.Catalog().FindItem("7")
	customer := &model.Customer{ID: "12"}

	if _, err := wb.PlaceOrder(&model.Order{}, customer, false); err == nil {
		t.Error("expected error for empty order")
	}
	order := &model.Order{Lines: []model.OrderLine{{Item: item, Quantity: 2}}}
	if _, err := wb.PlaceOrder(order, nil, false); err == nil {
		t.Error("expected error for missing customer")
	}
	bad := &model.Order{Lines: []model.OrderLine{{Item: item, Quantity: 0}}}
	if _, err := wb.PlaceOrder(bad, customer, false); err == nil {
		t.Error("expected error for non-positive quantity")
	}
}

// =============================================================================
// ACCOUNT TYPES AND STUBS
// =============================================================================

func TestAccountTypes(t *testing.T) {
	wb, _ := newTestClient(t)

	doc, err := wb.AccountTypes()
	if err != nil {
		t.Fatalf("AccountTypes failed: %v", err)
	}
	entries := doc.FindAll("accounttype")
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
}

func TestUnimplementedEndpoints(t *testing.T) {
	wb, _ := newTestClient(t)

	if err := wb.SubmitOrder(nil, nil, false); !errors.Is(err, wberr.ErrNotImplemented) {
		t.Errorf("SubmitOrder = %v, want ErrNotImplemented", err)
	}
	if err := wb.GetAccount("1", ""); !errors.Is(err, wberr.ErrNotImplemented) {
		t.Errorf("GetAccount = %v, want ErrNotImplemented", err)
	}
	if err := wb.GetPrintMessages("3"); !errors.Is(err, wberr.ErrNotImplemented) {
		t.Errorf("GetPrintMessages = %v, want ErrNotImplemented", err)
	}
}
