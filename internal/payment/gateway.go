package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ChargeRequest describes a single charge attempt. Source is a single-use
// payment token produced by the gateway's client-side tokenizer.
type ChargeRequest struct {
	Amount   int64
	Currency string
	Source   string
}

// Charge is the gateway's view of a captured payment. Amount is the amount
// the gateway actually captured, which callers must treat as authoritative.
type Charge struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
}

// GatewayError wraps any failure of the remote charge call. Callers must not
// retry: the source token is single-use and a blind retry risks a double
// charge.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*Charge, error)
}

// HTTPGateway posts form-encoded charges to a Stripe-style REST endpoint.
type HTTPGateway struct {
	chargeURL  string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPGateway(chargeURL, apiKey string) *HTTPGateway {
	return &HTTPGateway{
		chargeURL: chargeURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *HTTPGateway) Charge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	form.Set("currency", req.Currency)
	form.Set("source", req.Source)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.chargeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &GatewayError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, &GatewayError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &GatewayError{Err: fmt.Errorf("charge failed: status %d: %s", resp.StatusCode, string(body))}
	}

	var charge Charge
	if err := json.NewDecoder(resp.Body).Decode(&charge); err != nil {
		return nil, &GatewayError{Err: fmt.Errorf("decoding charge response: %w", err)}
	}
	if charge.ID == "" {
		return nil, &GatewayError{Err: fmt.Errorf("charge response missing id")}
	}

	return &charge, nil
}
