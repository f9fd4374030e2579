// internal/catalog/woocommerce/woocommerce.go
package woocommerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bartek5186/woo2katana/internal/catalog"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const Name = "woocommerce"

type Config struct {
	BaseURL           string `json:"base_url"` // https://shop.example.com
	ConsumerKey       string `json:"consumer_key"`
	ConsumerSec       string `json:"consumer_secret"`
	TimeoutSec        int    `json:"timeout_sec"`
	PurchasePriceMeta string `json:"purchase_price_meta,omitempty"` // np. "_purchase_price"; puste = nie wysyłamy
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("woocommerce: base_url is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("woocommerce: base_url: %w", err)
	}
	if c.ConsumerKey == "" || c.ConsumerSec == "" {
		return errors.New("woocommerce: consumer_key and consumer_secret are required")
	}
	return nil
}

// Woo – katalog czytany przez REST API sklepu (/wp-json/wc/v3)
type Woo struct {
	log  zerolog.Logger
	cfg  Config
	http *http.Client
}

func New(log zerolog.Logger, cfg Config) (*Woo, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Woo{log: log, cfg: cfg, http: &http.Client{Timeout: timeout}}, nil
}

func (w *Woo) Name() string { return Name }

func (w *Woo) Product(ctx context.Context, id int64) (*catalog.Product, error) {
	var wp wcProduct
	if err := w.get(ctx, fmt.Sprintf("/wp-json/wc/v3/products/%d", id), nil, &wp); err != nil {
		return nil, err
	}
	if wp.ID == 0 || wp.Status == "trash" {
		return nil, catalog.ErrNotFound
	}

	p := &catalog.Product{
		ID:            wp.ID,
		Name:          wp.Name,
		Description:   wp.Description,
		SKU:           strings.TrimSpace(wp.SKU),
		Price:         parsePrice(wp.Price),
		RegularPrice:  parsePrice(wp.RegularPrice),
		PurchasePrice: w.purchasePrice(wp.MetaData),
		Type:          catalog.ProductType(wp.Type),
	}
	if len(wp.Categories) > 0 {
		p.Category = wp.Categories[0].Name // pierwsza kategoria, jak w panelu
	}

	if p.Type == catalog.Variable {
		vars, err := w.variations(ctx, id)
		if err != nil {
			return nil, err
		}
		p.Variations = vars
	}

	w.log.Debug().Int64("product_id", id).Str("type", wp.Type).Int("variations", len(p.Variations)).Msg("woo product loaded")
	return p, nil
}

// variations – wszystkie strony /variations, w kolejności menu_order
func (w *Woo) variations(ctx context.Context, id int64) ([]catalog.Variation, error) {
	const perPage = 100
	var out []catalog.Variation

	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("orderby", "menu_order")
		q.Set("order", "asc")
		q.Set("per_page", strconv.Itoa(perPage))
		q.Set("page", strconv.Itoa(page))

		var items []wcVariation
		if err := w.get(ctx, fmt.Sprintf("/wp-json/wc/v3/products/%d/variations", id), q, &items); err != nil {
			return nil, fmt.Errorf("woo variations page %d: %w", page, err)
		}

		for _, v := range items {
			attrs := make([]catalog.Attribute, 0, len(v.Attributes))
			for _, a := range v.Attributes {
				name := a.Slug
				if name == "" {
					name = a.Name
				}
				attrs = append(attrs, catalog.Attribute{Name: name, Label: a.Name, Value: a.Option})
			}
			out = append(out, catalog.Variation{
				ID:            v.ID,
				SKU:           strings.TrimSpace(v.SKU),
				Price:         parsePrice(v.Price),
				RegularPrice:  parsePrice(v.RegularPrice),
				PurchasePrice: w.purchasePrice(v.MetaData),
				Attributes:    attrs,
			})
		}

		if len(items) < perPage {
			break
		}
	}
	return out, nil
}

func (w *Woo) get(ctx context.Context, path string, q url.Values, v any) error {
	base, err := url.Parse(w.cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("woo base_url: %w", err)
	}
	base.Path = strings.TrimRight(base.Path, "/") + path
	if q != nil {
		base.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "woo2katana 1.0")
	req.SetBasicAuth(w.cfg.ConsumerKey, w.cfg.ConsumerSec)

	resp, err := w.http.Do(req)
	if err != nil {
		return fmt.Errorf("woo %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return catalog.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("woo %s: http %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (w *Woo) purchasePrice(meta []wcMeta) *decimal.Decimal {
	if w.cfg.PurchasePriceMeta == "" {
		return nil
	}
	for _, m := range meta {
		if m.Key != w.cfg.PurchasePriceMeta {
			continue
		}
		raw := strings.Trim(strings.TrimSpace(string(m.Value)), `"`)
		if raw == "" {
			return nil
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
		if err != nil {
			return nil
		}
		return &d
	}
	return nil
}

// pomocniczo: Woo trzyma ceny jako string
func parsePrice(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func factory(log zerolog.Logger, raw json.RawMessage, _ catalog.Deps) (catalog.Source, error) {
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	w, err := New(log, cfg)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func init() {
	catalog.Register(Name, factory)
}
