// internal/catalog/types.go
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrNotFound = errors.New("catalog: product not found")

// ProductType odpowiada typom produktów WooCommerce
type ProductType string

const (
	Simple   ProductType = "simple"
	Variable ProductType = "variable"
)

// DefaultCategory gdy produkt nie ma żadnej kategorii
const DefaultCategory = "Default"

// Product – rekord produktu tylko do odczytu (na czas jednego wywołania)
type Product struct {
	ID            int64
	Name          string
	Description   string
	SKU           string
	Price         decimal.Decimal
	RegularPrice  decimal.Decimal
	PurchasePrice *decimal.Decimal // opcjonalnie
	Type          ProductType
	Category      string      // pusta → "Default"
	Variations    []Variation // tylko dla Variable, w kolejności ze sklepu
}

type Variation struct {
	ID            int64
	SKU           string // bez SKU wariant jest pomijany
	Price         decimal.Decimal
	RegularPrice  decimal.Decimal
	PurchasePrice *decimal.Decimal
	Attributes    []Attribute
}

type Attribute struct {
	Name  string // np. "pa_size" albo "attribute_pa_color"
	Label string // np. "Size"; puste → wyliczane z Name
	Value string
}

// CategoryName zwraca kategorię albo "Default"
func (p *Product) CategoryName() string {
	if c := strings.TrimSpace(p.Category); c != "" {
		return c
	}
	return DefaultCategory
}

// Source – odczyt katalogu (sklep, lokalna baza)
type Source interface {
	Name() string
	Product(ctx context.Context, id int64) (*Product, error)
}

// AttributeLabel to odpowiednik wc_attribute_label: etykieta do wyświetlenia
func AttributeLabel(a Attribute) string {
	if l := strings.TrimSpace(a.Label); l != "" {
		return l
	}
	n := strings.TrimSpace(a.Name)
	n = strings.TrimPrefix(n, "attribute_")
	n = strings.TrimPrefix(n, "pa_")
	n = strings.NewReplacer("-", " ", "_", " ").Replace(n)
	n = strings.Join(strings.Fields(n), " ")
	if n == "" {
		return a.Name
	}
	// Caser ma stan – nowy na każde wywołanie
	return cases.Title(language.Und, cases.NoLower).String(n)
}
