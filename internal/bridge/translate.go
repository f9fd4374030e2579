// internal/bridge/translate.go
package bridge

import (
	"slices"

	"github.com/bartek5186/woo2katana/internal/catalog"
	"github.com/bartek5186/woo2katana/internal/katana"
	"github.com/bartek5186/woo2katana/internal/settings"
	"github.com/shopspring/decimal"
)

// Translate buduje body POST /v1/products z produktu sklepu.
// Czysta funkcja: te same wejścia → ten sam wynik.
func Translate(p *catalog.Product, d settings.Defaults, existing map[string]struct{}) (*katana.ProductRequest, error) {
	if p.SKU == "" {
		return nil, invalid(KindMissingSKU)
	}

	switch p.Type {
	case catalog.Simple:
		if _, ok := existing[p.SKU]; ok {
			return nil, &ValidationError{Kind: KindAlreadyExists, SKUs: []string{p.SKU}}
		}
		req := baseRequest(p, d)
		req.Variants = []katana.Variant{{
			SKU:           p.SKU,
			SalesPrice:    p.Price.InexactFloat64(),
			PurchasePrice: optPrice(p.PurchasePrice),
		}}
		return req, nil

	case catalog.Variable:
		var (
			variants []katana.Variant
			configs  []katana.Config
			byLabel  = map[string]int{} // etykieta → indeks w configs
		)
		for _, v := range p.Variations {
			if v.SKU == "" {
				continue
			}
			if _, ok := existing[v.SKU]; ok {
				continue
			}

			attrs := make([]katana.ConfigAttribute, 0, len(v.Attributes))
			seen := map[string]struct{}{} // jedna wartość na etykietę w wariancie
			for _, a := range v.Attributes {
				label := catalog.AttributeLabel(a)
				if _, dup := seen[label]; dup {
					continue
				}
				seen[label] = struct{}{}
				idx, ok := byLabel[label]
				if !ok {
					idx = len(configs)
					byLabel[label] = idx
					configs = append(configs, katana.Config{Name: label, Values: []string{}})
				}
				if !slices.Contains(configs[idx].Values, a.Value) {
					configs[idx].Values = append(configs[idx].Values, a.Value)
				}
				attrs = append(attrs, katana.ConfigAttribute{ConfigName: label, ConfigValue: a.Value})
			}

			variants = append(variants, katana.Variant{
				SKU:              v.SKU,
				SalesPrice:       v.Price.InexactFloat64(),
				PurchasePrice:    optPrice(v.PurchasePrice),
				ConfigAttributes: attrs,
			})
		}

		if len(variants) == 0 {
			return nil, invalid(KindNoNewVariants)
		}
		req := baseRequest(p, d)
		req.Configs = configs
		req.Variants = variants
		return req, nil

	default:
		return nil, invalid(KindUnsupportedType)
	}
}

func baseRequest(p *catalog.Product, d settings.Defaults) *katana.ProductRequest {
	return &katana.ProductRequest{
		Name:           p.Name,
		UOM:            katana.UOMPieces,
		CategoryName:   p.CategoryName(),
		IsSellable:     d.IsSellable,
		IsProducible:   d.IsProducible,
		IsPurchasable:  d.IsPurchasable,
		IsAutoAssembly: d.IsAutoAssembly,
		AdditionalInfo: p.Description,
	}
}

func optPrice(p *decimal.Decimal) *float64 {
	if p == nil {
		return nil
	}
	f := p.InexactFloat64()
	return &f
}

