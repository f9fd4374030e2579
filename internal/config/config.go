// internal/config/config.go
package conf

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bartek5186/woo2katana/internal/catalog/woocommerce"
	"github.com/bartek5186/woo2katana/internal/db"
	"github.com/bartek5186/woo2katana/internal/katana"
	"github.com/joho/godotenv"
)

var ErrUnknownCatalog = errors.New("conf: unknown catalog source")

// Główny config aplikacji
type Config struct {
	Catalog      string                     `json:"catalog"` // "local" albo "woocommerce"
	Database     DatabaseConfig             `json:"database"`
	Katana       KatanaConfig               `json:"katana"`
	HTTPAddr     string                     `json:"http_addr,omitempty"` // np. ":8080"; puste = tylko CLI
	LogLevel     string                     `json:"log_level,omitempty"`
	Integrations map[string]json.RawMessage `json:"integrations"` // nazwa -> surowy JSON integracji
}

type DatabaseConfig struct {
	Driver string `json:"driver"` // sqlite, sqlite-pure, mysql, postgres
	DSN    string `json:"dsn"`    // dla sqlite puste = plik w katalogu aplikacji
}

type KatanaConfig struct {
	BaseURL    string `json:"base_url"`
	TimeoutSec int    `json:"timeout_sec"` // 0 = bez limitu (domyślny transport)
}

// Env – zmienne środowiskowe nadpisujące config (plus KATANA_API_KEY dla ustawień)
type Env struct {
	APIKey string
}

var knownCatalogs = []string{"local", "woocommerce"}

var knownDrivers = []string{db.DriverSQLite, db.DriverSQLitePure, db.DriverMySQL, db.DriverPostgres}

func Default() *Config {
	woo := woocommerce.Config{
		BaseURL:     "https://example.com",
		ConsumerKey: "ck_xxx",
		ConsumerSec: "cs_xxx",
		TimeoutSec:  15,
	}
	rawWoo, _ := json.Marshal(woo)

	return &Config{
		Catalog:  "local",
		Database: DatabaseConfig{Driver: db.DriverSQLite},
		Katana: KatanaConfig{
			BaseURL:    katana.DefaultBaseURL,
			TimeoutSec: 30,
		},
		LogLevel: "info",
		Integrations: map[string]json.RawMessage{
			"woocommerce": rawWoo,
		},
	}
}

func LoadOrCreate(path string) (*Config, bool, error) {
	// upewnij się, że katalog istnieje
	_ = os.MkdirAll(filepath.Dir(path), 0o755)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return nil, false, fmt.Errorf("błąd zapisu domyślnego configa: %w", err)
			}
			return cfg, true, nil
		}
		return nil, false, fmt.Errorf("błąd otwierania configa: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, false, fmt.Errorf("błąd parsowania configa: %w", err)
	}
	if cfg.Integrations == nil {
		cfg.Integrations = map[string]json.RawMessage{}
	}
	if cfg.Katana.BaseURL == "" {
		cfg.Katana.BaseURL = katana.DefaultBaseURL
	}
	return &cfg, false, nil
}

func Save(path string, cfg *Config) error {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}

// ApplyEnv wczytuje .env (jeśli jest) i nakłada zmienne na config
func (c *Config) ApplyEnv(envFiles ...string) Env {
	_ = godotenv.Load(envFiles...)

	if v := os.Getenv("WOO2KATANA_CATALOG"); v != "" {
		c.Catalog = v
	}
	if v := os.Getenv("WOO2KATANA_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("WOO2KATANA_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("KATANA_BASE_URL"); v != "" {
		c.Katana.BaseURL = v
	}
	if v := os.Getenv("WOO2KATANA_HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	return Env{APIKey: strings.TrimSpace(os.Getenv("KATANA_API_KEY"))}
}

func (c *Config) Validate() error {
	if !slices.Contains(knownCatalogs, c.Catalog) {
		return fmt.Errorf("%w: %q", ErrUnknownCatalog, c.Catalog)
	}
	if c.Database.Driver != "" && !slices.Contains(knownDrivers, c.Database.Driver) {
		return fmt.Errorf("conf: unknown database driver %q", c.Database.Driver)
	}
	if (c.Database.Driver == db.DriverMySQL || c.Database.Driver == db.DriverPostgres) && c.Database.DSN == "" {
		return fmt.Errorf("conf: database dsn is required for %s", c.Database.Driver)
	}
	if c.Katana.TimeoutSec < 0 {
		return errors.New("conf: katana timeout_sec must be >= 0")
	}
	return nil
}

// Integration – surowy JSON integracji (pusty obiekt gdy brak)
func (c *Config) Integration(name string) json.RawMessage {
	if raw, ok := c.Integrations[name]; ok {
		return raw
	}
	return json.RawMessage(`{}`)
}
