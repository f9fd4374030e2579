package bridge

import (
	"fmt"
	"strings"
)

// Kind – rodzaj wyniku, czytelny dla maszyny
type Kind string

const (
	KindInvalidProductID Kind = "invalid_product_id"
	KindMissingAPIKey    Kind = "missing_api_key"
	KindProductNotFound  Kind = "product_not_found"
	KindMissingSKU       Kind = "missing_sku"
	KindAlreadyExists    Kind = "already_exists"
	KindNoNewVariants    Kind = "no_new_variants"
	KindUnsupportedType  Kind = "unsupported_type"
	KindTransport        Kind = "transport"
	KindRemote           Kind = "remote"
)

// ValidationError – produkt nie nadaje się do wysłania
type ValidationError struct {
	Kind Kind
	SKUs []string // dla AlreadyExists
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindInvalidProductID:
		return "Invalid product ID."
	case KindMissingAPIKey:
		return "Katana API key is missing. Please set it in the settings."
	case KindProductNotFound:
		return "Invalid WooCommerce product."
	case KindMissingSKU:
		return "Product SKU is missing. Please ensure the product has an SKU."
	case KindAlreadyExists:
		return "Product already exists in Katana with variants: " + strings.Join(e.SKUs, ", ")
	case KindNoNewVariants:
		return "All variants already exist in Katana."
	case KindUnsupportedType:
		return "Invalid product type or no valid SKUs found."
	default:
		return fmt.Sprintf("validation error: %s", e.Kind)
	}
}

func invalid(k Kind) *ValidationError { return &ValidationError{Kind: k} }
