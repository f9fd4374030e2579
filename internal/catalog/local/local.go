// internal/catalog/local/local.go
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bartek5186/woo2katana/internal/catalog"
	"github.com/bartek5186/woo2katana/internal/db"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const Name = "local"

// Source – katalog w lokalnej bazie (tabele catalog_*)
type Source struct {
	log zerolog.Logger
	db  *gorm.DB
}

func New(log zerolog.Logger, gdb *gorm.DB) *Source {
	return &Source{log: log, db: gdb}
}

func (s *Source) Name() string { return Name }

func (s *Source) Product(ctx context.Context, id int64) (*catalog.Product, error) {
	gdb := s.db.WithContext(ctx)

	var row db.CatalogProduct
	if err := gdb.Where("product_id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("read catalog_products %d: %w", id, err)
	}

	p := &catalog.Product{
		ID:            row.ProductID,
		Name:          row.Name,
		Description:   row.Description,
		SKU:           strings.TrimSpace(row.SKU),
		Price:         dec(row.Price),
		RegularPrice:  dec(row.RegularPrice),
		PurchasePrice: optDec(row.PurchasePrice),
		Type:          catalog.ProductType(row.Type),
		Category:      row.Category,
	}
	if p.Type != catalog.Variable {
		return p, nil
	}

	var vars []db.CatalogVariation
	if err := gdb.Where("product_id = ?", id).Order("position, variation_id").Find(&vars).Error; err != nil {
		return nil, fmt.Errorf("read catalog_variations %d: %w", id, err)
	}
	if len(vars) == 0 {
		return p, nil
	}

	ids := make([]int64, 0, len(vars))
	for _, v := range vars {
		ids = append(ids, v.VariationID)
	}
	var attrs []db.CatalogAttribute
	if err := gdb.Where("variation_id IN ?", ids).Order("variation_id, position, id").Find(&attrs).Error; err != nil {
		return nil, fmt.Errorf("read catalog_attributes %d: %w", id, err)
	}
	byVar := make(map[int64][]catalog.Attribute, len(vars))
	for _, a := range attrs {
		byVar[a.VariationID] = append(byVar[a.VariationID], catalog.Attribute{Name: a.Name, Label: a.Label, Value: a.Value})
	}

	for _, v := range vars {
		p.Variations = append(p.Variations, catalog.Variation{
			ID:            v.VariationID,
			SKU:           strings.TrimSpace(v.SKU),
			Price:         dec(v.Price),
			RegularPrice:  dec(v.RegularPrice),
			PurchasePrice: optDec(v.PurchasePrice),
			Attributes:    byVar[v.VariationID],
		})
	}
	return p, nil
}

// Save – upsert produktu; warianty i atrybuty są podmieniane w całości.
// Wołać w transakcji (importer).
func Save(tx *gorm.DB, p *catalog.Product) error {
	row := db.CatalogProduct{
		ProductID:     p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Type:          string(p.Type),
		Category:      p.Category,
		Price:         p.Price.String(),
		RegularPrice:  p.RegularPrice.String(),
		PurchasePrice: optStr(p.PurchasePrice),
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"sku", "name", "description", "type", "category", "price", "regular_price", "purchase_price", "updated_at",
		}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("upsert product %d: %w", p.ID, err)
	}

	// stare warianty out
	var oldIDs []int64
	if err := tx.Model(&db.CatalogVariation{}).Where("product_id = ?", p.ID).Pluck("variation_id", &oldIDs).Error; err != nil {
		return err
	}
	if len(oldIDs) > 0 {
		if err := tx.Where("variation_id IN ?", oldIDs).Delete(&db.CatalogAttribute{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", p.ID).Delete(&db.CatalogVariation{}).Error; err != nil {
			return err
		}
	}

	for i, v := range p.Variations {
		vr := db.CatalogVariation{
			VariationID:   v.ID,
			ProductID:     p.ID,
			Position:      i,
			SKU:           v.SKU,
			Price:         v.Price.String(),
			RegularPrice:  v.RegularPrice.String(),
			PurchasePrice: optStr(v.PurchasePrice),
		}
		if err := tx.Create(&vr).Error; err != nil {
			return fmt.Errorf("insert variation %d: %w", v.ID, err)
		}
		if len(v.Attributes) == 0 {
			continue
		}
		attrs := make([]db.CatalogAttribute, 0, len(v.Attributes))
		for j, a := range v.Attributes {
			attrs = append(attrs, db.CatalogAttribute{VariationID: v.ID, Position: j, Name: a.Name, Label: a.Label, Value: a.Value})
		}
		if err := tx.Create(&attrs).Error; err != nil {
			return fmt.Errorf("insert attributes %d: %w", v.ID, err)
		}
	}
	return nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func optDec(s *string) *decimal.Decimal {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	d := dec(*s)
	return &d
}

func optStr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func factory(log zerolog.Logger, _ json.RawMessage, deps catalog.Deps) (catalog.Source, error) {
	if deps.DB == nil {
		return nil, errors.New("local: brak *gorm.DB")
	}
	return New(log, deps.DB), nil
}

func init() {
	catalog.Register(Name, factory)
}
