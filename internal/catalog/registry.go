// internal/catalog/registry.go
package catalog

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Deps – zależności przekazywane do fabryk źródeł (zamiast ctx.Value)
type Deps struct {
	DB *gorm.DB
}

type Factory func(log zerolog.Logger, raw json.RawMessage, deps Deps) (Source, error)

var (
	regMu    sync.RWMutex
	registry = map[string]Factory{}
)

func Register(name string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[name] = f
}

func Get(name string) (Factory, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// Names – posortowane nazwy zarejestrowanych źródeł
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
