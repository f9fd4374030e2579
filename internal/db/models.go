// internal/db/models.go
package db

import "time"

// kv – ustawienia w stylu wp_options (katana_api_key, katana_is_sellable, ...)
type KV struct {
	K string `gorm:"primaryKey"`
	V string
}

func (KV) TableName() string { return "kv" }

// import_files
type ImportFile struct {
	ImportID    uint   `gorm:"primaryKey;column:import_id"`
	Filename    string `gorm:"index"`
	SHA256      string `gorm:"uniqueIndex"`
	SizeBytes   int64
	Status      int       `gorm:"index"` // 0=pending, 1=done, 2=error
	LastError   string    `gorm:"type:text"`
	Products    int
	ReceivedAt  time.Time `gorm:"autoCreateTime"`
	ProcessedAt *time.Time
}

const (
	ImportPending = 0
	ImportDone    = 1
	ImportError   = 2
)

// catalog_products – lokalny katalog (zasilany importerem)
type CatalogProduct struct {
	ProductID     int64  `gorm:"primaryKey;autoIncrement:false"`
	SKU           string `gorm:"index"`
	Name          string
	Description   string `gorm:"type:text"`
	Type          string `gorm:"index"` // simple / variable / ...
	Category      string
	Price         string // decimal jako tekst, bez strat
	RegularPrice  string
	PurchasePrice *string
	UpdatedAt     time.Time
}

// catalog_variations
type CatalogVariation struct {
	VariationID   int64 `gorm:"primaryKey;autoIncrement:false"`
	ProductID     int64 `gorm:"index"`
	Position      int
	SKU           string `gorm:"index"`
	Price         string
	RegularPrice  string
	PurchasePrice *string
}

// catalog_attributes – atrybuty wariantów
type CatalogAttribute struct {
	ID          uint  `gorm:"primaryKey"`
	VariationID int64 `gorm:"index"`
	Position    int
	Name        string
	Label       string
	Value       string
}
