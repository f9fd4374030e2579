// internal/katana/client.go
package katana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.katanamrp.com"

const (
	msgUnknownCheck  = "Unknown error while checking variants."
	msgUnknownCreate = "Unknown error while creating product."
)

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient – timeout 0 oznacza domyślny transport bez limitu
func NewClient(baseURL string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient podmienia klienta (testy, proxy)
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	if h != nil {
		c.http = h
	}
	return c
}

// CheckExisting zwraca zbiór SKU wariantów, które już są w Katanie
func (c *Client) CheckExisting(ctx context.Context, sku, apiKey string) (map[string]struct{}, error) {
	u := c.baseURL + "/v1/variants?" + url.Values{"sku": {sku}}.Encode()

	status, body, err := c.do(ctx, http.MethodGet, u, nil, apiKey)
	if err != nil {
		return nil, &APIError{Kind: Transport, Op: "check", Err: err}
	}
	if status < 200 || status >= 300 {
		return nil, &APIError{Kind: Remote, Op: "check", StatusCode: status, Message: remoteMessage(body, msgUnknownCheck)}
	}

	var vr variantsResponse
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &vr); err != nil {
			// odpowiedź 2xx, ale nie JSON – bez statusu, żeby nie sugerować błędu HTTP
			return nil, &APIError{Kind: Remote, Op: "check", Message: "invalid variants response: " + err.Error()}
		}
	}

	out := make(map[string]struct{}, len(vr.Data))
	for _, v := range vr.Data {
		if s := strings.TrimSpace(v.SKU); s != "" {
			out[s] = struct{}{}
		}
	}
	return out, nil
}

// CreateProduct – jedna próba, sukces = dowolne 2xx
func (c *Client) CreateProduct(ctx context.Context, req *ProductRequest, apiKey string) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}

	status, body, err := c.do(ctx, http.MethodPost, c.baseURL+"/v1/products", payload, apiKey)
	if err != nil {
		return &APIError{Kind: Transport, Op: "create", Err: err}
	}
	if status < 200 || status >= 300 {
		return &APIError{Kind: Remote, Op: "create", StatusCode: status, Message: remoteMessage(body, msgUnknownCreate)}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, u string, payload []byte, apiKey string) (int, []byte, error) {
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return 0, nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, nil
}

// remoteMessage – pole "message" z body albo komunikat zastępczy
func remoteMessage(body []byte, fallback string) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		if m := strings.TrimSpace(er.Message); m != "" {
			return m
		}
	}
	return fallback
}
