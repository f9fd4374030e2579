// internal/bridge/creator.go
package bridge

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bartek5186/woo2katana/internal/catalog"
	"github.com/bartek5186/woo2katana/internal/katana"
	"github.com/bartek5186/woo2katana/internal/settings"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ConfigReader – ustawienia czytane na starcie każdego wywołania
type ConfigReader interface {
	Read(ctx context.Context) settings.Defaults
}

// API – to, czego potrzebujemy od klienta Katany
type API interface {
	CheckExisting(ctx context.Context, sku, apiKey string) (map[string]struct{}, error)
	CreateProduct(ctx context.Context, req *katana.ProductRequest, apiKey string) error
}

// Outcome – wynik jednego kliknięcia "Create Katana Product"
type Outcome struct {
	Success   bool   `json:"success"`
	Kind      Kind   `json:"kind,omitempty"`
	Message   string `json:"message"`
	ProductID int64  `json:"product_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Err       error  `json:"-"`
}

type Creator struct {
	log     zerolog.Logger
	cfg     ConfigReader
	catalog catalog.Source
	api     API
	notify  Notifier
}

func NewCreator(log zerolog.Logger, cfg ConfigReader, src catalog.Source, api API, n Notifier) *Creator {
	if n == nil {
		n = NopNotifier{}
	}
	return &Creator{log: log, cfg: cfg, catalog: src, api: api, notify: n}
}

// ParseProductID – jak intval(): śmieci → 0 (czyli niepoprawne id)
func ParseProductID(s string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Create wykonuje cały przebieg dla jednego produktu. Każdy błąd kończy wywołanie;
// do Katany nic nie trafia przed krokiem Submit. Raz rozpoczęte idzie do końca:
// anulowanie ctx (Ctrl-C, rozłączony klient) nie przerywa wywołania.
func (c *Creator) Create(ctx context.Context, productID int64) Outcome {
	ctx = context.WithoutCancel(ctx)
	log := c.log.With().Str("invocation", uuid.NewString()).Int64("product_id", productID).Logger()

	if productID <= 0 {
		return c.fail(productID, "", invalid(KindInvalidProductID))
	}

	d := c.cfg.Read(ctx)
	if d.APIKey == "" {
		return c.fail(productID, "", invalid(KindMissingAPIKey))
	}

	p, err := c.catalog.Product(ctx, productID)
	if err != nil || p == nil {
		if err != nil && !errors.Is(err, catalog.ErrNotFound) {
			log.Warn().Err(err).Str("catalog", c.catalog.Name()).Msg("catalog read failed")
		}
		return c.fail(productID, "", invalid(KindProductNotFound))
	}

	if d.EnableLogging {
		log.Info().Str("sku", p.SKU).Str("type", string(p.Type)).Msg("katana: product creation attempt")
	}

	// SKU sprawdzamy przed zapytaniem do API – bez SKU nie ma czego szukać
	if p.SKU == "" {
		return c.fail(productID, p.Name, invalid(KindMissingSKU))
	}

	existing, err := c.api.CheckExisting(ctx, p.SKU, d.APIKey)
	if err != nil {
		return c.fail(productID, p.Name, fmt.Errorf("check existing variants: %w", err))
	}
	log.Debug().Int("existing", len(existing)).Msg("katana: existing variants")

	req, err := Translate(p, d, existing)
	if err != nil {
		return c.fail(productID, p.Name, err)
	}

	if err := c.api.CreateProduct(ctx, req, d.APIKey); err != nil {
		return c.fail(productID, p.Name, err)
	}

	var msg string
	if p.Type == catalog.Variable {
		msg = fmt.Sprintf("Variable product %q has been created in Katana.", p.Name)
	} else {
		msg = fmt.Sprintf("Simple product %q has been created in Katana.", p.Name)
	}
	c.notify.Notify(LevelInfo, fmt.Sprintf("Product %d created in Katana: %s (%d variants)", productID, p.Name, len(req.Variants)))
	return Outcome{Success: true, Message: msg, ProductID: productID, Name: p.Name}
}

func (c *Creator) fail(productID int64, name string, err error) Outcome {
	o := Outcome{Kind: kindOf(err), Message: failureMessage(err), ProductID: productID, Name: name, Err: err}
	c.notify.Notify(LevelError, fmt.Sprintf("Product %d: %s", productID, o.Message))
	return o
}

func kindOf(err error) Kind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	var ae *katana.APIError
	if errors.As(err, &ae) {
		if ae.Kind == katana.Transport {
			return KindTransport
		}
		return KindRemote
	}
	return KindTransport
}

func failureMessage(err error) string {
	var ae *katana.APIError
	if errors.As(err, &ae) {
		switch {
		case ae.Op == "check":
			return "Error checking existing variants: " + ae.Detail()
		case ae.Kind == katana.Transport:
			return "Error creating new product: " + ae.Detail()
		default:
			return fmt.Sprintf("Failed to create product in Katana (HTTP %d): %s", ae.StatusCode, ae.Detail())
		}
	}
	return err.Error()
}
