// internal/katana/types.go
package katana

// ProductRequest – body POST /v1/products
type ProductRequest struct {
	Name           string    `json:"name"`
	UOM            string    `json:"uom"`
	CategoryName   string    `json:"category_name"`
	IsSellable     bool      `json:"is_sellable"`
	IsProducible   bool      `json:"is_producible"`
	IsPurchasable  bool      `json:"is_purchasable"`
	IsAutoAssembly bool      `json:"is_auto_assembly"`
	AdditionalInfo string    `json:"additional_info"`
	Configs        []Config  `json:"configs,omitempty"` // tylko produkty wariantowe
	Variants       []Variant `json:"variants"`
}

// UOMPieces – jedyna jednostka, którą wysyłamy
const UOMPieces = "pcs"

type Config struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type Variant struct {
	SKU              string            `json:"sku"`
	SalesPrice       float64           `json:"sales_price"`
	PurchasePrice    *float64          `json:"purchase_price,omitempty"`
	ConfigAttributes []ConfigAttribute `json:"config_attributes,omitempty"`
}

type ConfigAttribute struct {
	ConfigName  string `json:"config_name"`
	ConfigValue string `json:"config_value"`
}

// odpowiedź GET /v1/variants
type variantsResponse struct {
	Data []struct {
		ID  int64  `json:"id"`
		SKU string `json:"sku"`
	} `json:"data"`
}

// body błędu Katany
type errorResponse struct {
	Message string `json:"message"`
}
