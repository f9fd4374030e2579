// internal/settings/settings.go
package settings

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Klucze opcji – te same co w ustawieniach WooCommerce (zakładka Katana)
const (
	KeyAPIKey         = "katana_api_key"
	KeyEnableLogging  = "katana_enable_logging"
	KeyIsSellable     = "katana_is_sellable"
	KeyIsProducible   = "katana_is_producible"
	KeyIsPurchasable  = "katana_is_purchasable"
	KeyIsAutoAssembly = "katana_is_auto_assembly"
)

// Keys – wszystkie znane opcje, w kolejności formularza
var Keys = []string{
	KeyAPIKey, KeyEnableLogging, KeyIsSellable, KeyIsProducible, KeyIsPurchasable, KeyIsAutoAssembly,
}

// Defaults – wartości domyślne dla tworzonego produktu w Katanie
type Defaults struct {
	APIKey         string
	EnableLogging  bool
	IsSellable     bool
	IsProducible   bool
	IsPurchasable  bool
	IsAutoAssembly bool
}

// Store – odczyt/zapis klucz-wartość (wp_options)
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

type Reader struct {
	log      zerolog.Logger
	store    Store
	override string // klucz API z env (KATANA_API_KEY)
}

func NewReader(log zerolog.Logger, store Store, apiKeyOverride string) *Reader {
	return &Reader{log: log, store: store, override: strings.TrimSpace(apiKeyOverride)}
}

// Read nigdy nie zwraca błędu: brak klucza (albo błąd store) → wartość domyślna
func (r *Reader) Read(ctx context.Context) Defaults {
	d := Defaults{
		APIKey:         strings.TrimSpace(r.get(ctx, KeyAPIKey, "")),
		EnableLogging:  yes(r.get(ctx, KeyEnableLogging, "no")),
		IsSellable:     yes(r.get(ctx, KeyIsSellable, "yes")),
		IsProducible:   yes(r.get(ctx, KeyIsProducible, "no")),
		IsPurchasable:  yes(r.get(ctx, KeyIsPurchasable, "yes")),
		IsAutoAssembly: yes(r.get(ctx, KeyIsAutoAssembly, "no")),
	}
	if r.override != "" {
		d.APIKey = r.override
	}
	return d
}

func (r *Reader) get(ctx context.Context, key, def string) string {
	if r.store == nil {
		return def
	}
	v, ok, err := r.store.Get(ctx, key)
	if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("settings: odczyt nieudany, używam domyślnej")
		return def
	}
	if !ok {
		return def
	}
	return v
}

// yes – konwencja checkboxów WooCommerce ("yes"/"no")
func yes(s string) bool {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "yes", "y", "true", "1", "on":
		return true
	default:
		return false
	}
}
