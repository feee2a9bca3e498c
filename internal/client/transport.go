// =============================================================================
// WizBang Client - HTTP Transport
// =============================================================================
//
// Plain HTTP GET transport for the WizBang server. The observed server
// speaks unauthenticated HTTP with no custom headers or TLS, and the
// client contract specifies no retries or cancellation: network failures
// propagate immediately as TransportError.
//
// REQUEST SHAPE:
//   http://{host}:{port}/{endpoint}?{params}
//
// =============================================================================

package client

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wizbangpos/wizbang-client/internal/config"
	"github.com/wizbangpos/wizbang-client/internal/wberr"
	"github.com/wizbangpos/wizbang-client/internal/wbxml"
)

// transport performs HTTP GET requests against one WizBang server.
type transport struct {
	baseURL string
	client  *http.Client
}

// newTransport builds a transport from the client configuration.
func newTransport(cfg *config.ClientConfig) *transport {
	return &transport{
		baseURL: fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port),
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// get performs one blocking GET round trip and returns the raw response
// body. Dial failures, non-2xx statuses, and empty bodies are all
// TransportError.
func (t *transport) get(endpoint string, params url.Values) ([]byte, error) {
	requestURL := t.baseURL + "/" + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	resp, err := t.client.Get(requestURL)
	if err != nil {
		return nil, &wberr.TransportError{
			Endpoint: endpoint,
			Message:  "request failed",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &wberr.TransportError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    "unexpected HTTP status",
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &wberr.TransportError{
			Endpoint: endpoint,
			Message:  "failed to read response body",
			Err:      err,
		}
	}
	if len(body) == 0 {
		return nil, &wberr.TransportError{
			Endpoint: endpoint,
			Message:  "empty response body",
		}
	}

	return body, nil
}

// getDocument performs a GET round trip and parses the body as XML. A body
// that fails to parse is malformed transport output, not a mapping
// problem, so it surfaces as TransportError.
func (t *transport) getDocument(endpoint string, params url.Values) (*wbxml.Node, error) {
	body, err := t.get(endpoint, params)
	if err != nil {
		return nil, err
	}

	doc, err := wbxml.Parse(body)
	if err != nil {
		return nil, &wberr.TransportError{
			Endpoint: endpoint,
			Message:  "malformed XML response body",
			Err:      err,
		}
	}
	return doc, nil
}
