// internal/catalog/woocommerce/types.go
package woocommerce

import "encoding/json"

type wcProduct struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	SKU          string       `json:"sku"`
	Type         string       `json:"type"`          // "simple","variable", etc.
	Status       string       `json:"status"`        // "publish","draft","trash"
	Price        string       `json:"price"`         // string w Woo
	RegularPrice string       `json:"regular_price"` // string
	Description  string       `json:"description"`
	Categories   []wcCategory `json:"categories"`
	MetaData     []wcMeta     `json:"meta_data"`
}

type wcCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type wcMeta struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"` // string albo liczba
}

type wcVariation struct {
	ID           int64           `json:"id"`
	SKU          string          `json:"sku"`
	Price        string          `json:"price"`
	RegularPrice string          `json:"regular_price"`
	Attributes   []wcVariantAttr `json:"attributes"`
	MetaData     []wcMeta        `json:"meta_data"`
}

type wcVariantAttr struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"` // etykieta, np. "Size"
	Slug   string `json:"slug"` // np. "pa_size" (nowsze wersje Woo)
	Option string `json:"option"`
}
