package importer

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bartek5186/woo2katana/internal/catalog"
	"github.com/bartek5186/woo2katana/internal/catalog/local"
	"github.com/bartek5186/woo2katana/internal/db"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html/charset"
	"gorm.io/gorm"
)

// Importer – wczytuje feed XML z produktami do lokalnego katalogu.
// Uruchamiany ręcznie (CLI), bez pollingu.
type Importer struct {
	log zerolog.Logger
	db  *gorm.DB
}

func New(log zerolog.Logger, gdb *gorm.DB) *Importer {
	return &Importer{log: log, db: gdb}
}

type Result struct {
	ImportID uint
	Products int
	Skipped  bool // plik był już zaimportowany (DONE)
}

type xmlAttribute struct {
	Name  string `xml:"name,attr"`
	Label string `xml:"label,attr"`
	Value string `xml:",chardata"`
}

type xmlVariation struct {
	ID            int64          `xml:"id"`
	SKU           string         `xml:"sku"`
	Price         string         `xml:"price"`
	RegularPrice  string         `xml:"regular_price"`
	PurchasePrice string         `xml:"purchase_price"`
	Attributes    []xmlAttribute `xml:"attributes>attribute"`
}

type xmlProduct struct {
	ID            int64          `xml:"id"`
	Type          string         `xml:"type"`
	SKU           string         `xml:"sku"`
	Name          string         `xml:"name"`
	Description   string         `xml:"description"`
	Category      string         `xml:"category"`
	Price         string         `xml:"price"`
	RegularPrice  string         `xml:"regular_price"`
	PurchasePrice string         `xml:"purchase_price"`
	Variations    []xmlVariation `xml:"variations>variation"`
}

// ImportFile – dedup po SHA-256; plik DONE jest pomijany, inne statusy → ponowne przetworzenie
func (i *Importer) ImportFile(ctx context.Context, path string) (Result, error) {
	name := filepath.Base(path)

	importID, status, err := i.registerFile(ctx, path, name)
	if err != nil {
		return Result{}, fmt.Errorf("rejestracja pliku %s: %w", name, err)
	}
	if status == db.ImportDone {
		i.log.Debug().Str("file", name).Msg("plik już był i DONE, pomijam")
		return Result{ImportID: importID, Skipped: true}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{ImportID: importID}, err
	}
	defer f.Close()

	n, err := i.Import(ctx, f)
	if err != nil {
		i.log.Error().Err(err).Str("file", name).Uint("import_id", importID).Msg("błąd przetwarzania pliku")
		_ = i.db.Model(&db.ImportFile{}).Where("import_id = ?", importID).
			Updates(map[string]any{"status": db.ImportError, "last_error": err.Error()})
		return Result{ImportID: importID}, err
	}

	now := time.Now()
	_ = i.db.Model(&db.ImportFile{}).Where("import_id = ?", importID).
		Updates(map[string]any{"status": db.ImportDone, "processed_at": now, "products": n, "last_error": ""})

	i.log.Info().Str("file", name).Uint("import_id", importID).Int("products", n).Msg("przetworzono OK")
	return Result{ImportID: importID, Products: n}, nil
}

// Import parsuje strumień XML i zapisuje produkty w jednej transakcji
func (i *Importer) Import(ctx context.Context, r io.Reader) (int, error) {
	dec := xml.NewDecoder(bufio.NewReader(r))
	dec.CharsetReader = func(cs string, in io.Reader) (io.Reader, error) {
		return charset.NewReaderLabel(normalizeCharset(cs), in)
	}

	tx := i.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}
	defer tx.Rollback()

	count := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}

		se, ok := tok.(xml.StartElement)
		if !ok || !strings.EqualFold(se.Name.Local, "product") {
			continue
		}

		var xp xmlProduct
		if err := dec.DecodeElement(&xp, &se); err != nil {
			return 0, err
		}
		p, err := toProduct(xp)
		if err != nil {
			return 0, err
		}
		if err := local.Save(tx, p); err != nil {
			return 0, err
		}
		count++
	}

	if err := tx.Commit().Error; err != nil {
		i.log.Error().Err(err).Msg("tx commit failed")
		return 0, err
	}
	return count, nil
}

func toProduct(xp xmlProduct) (*catalog.Product, error) {
	if xp.ID <= 0 {
		return nil, fmt.Errorf("produkt bez <id> (sku=%q)", xp.SKU)
	}
	t := strings.ToLower(strings.TrimSpace(xp.Type))
	if t == "" {
		t = string(catalog.Simple)
	}
	p := &catalog.Product{
		ID:            xp.ID,
		Name:          strings.TrimSpace(xp.Name),
		Description:   xp.Description,
		SKU:           strings.TrimSpace(xp.SKU),
		Price:         dec(xp.Price),
		RegularPrice:  dec(xp.RegularPrice),
		PurchasePrice: optDec(xp.PurchasePrice),
		Type:          catalog.ProductType(t),
		Category:      strings.TrimSpace(xp.Category),
	}
	for _, xv := range xp.Variations {
		if xv.ID <= 0 {
			return nil, fmt.Errorf("produkt %d: wariant bez <id>", xp.ID)
		}
		v := catalog.Variation{
			ID:            xv.ID,
			SKU:           strings.TrimSpace(xv.SKU),
			Price:         dec(xv.Price),
			RegularPrice:  dec(xv.RegularPrice),
			PurchasePrice: optDec(xv.PurchasePrice),
		}
		for _, a := range xv.Attributes {
			v.Attributes = append(v.Attributes, catalog.Attribute{
				Name:  strings.TrimSpace(a.Name),
				Label: strings.TrimSpace(a.Label),
				Value: strings.TrimSpace(a.Value),
			})
		}
		p.Variations = append(p.Variations, v)
	}
	return p, nil
}

func (i *Importer) registerFile(ctx context.Context, fullPath, name string) (uint, int, error) {
	fi, err := os.Stat(fullPath)
	if err != nil {
		return 0, 0, err
	}
	h, err := fileSHA256(fullPath)
	if err != nil {
		return 0, 0, err
	}

	gdb := i.db.WithContext(ctx)
	var existing db.ImportFile
	err = gdb.Where("sha256 = ?", h).Take(&existing).Error
	if err == nil {
		return existing.ImportID, existing.Status, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, 0, err
	}

	rec := db.ImportFile{
		Filename:  name,
		SHA256:    h,
		SizeBytes: fi.Size(),
		Status:    db.ImportPending,
	}
	if err := gdb.Create(&rec).Error; err != nil {
		return 0, 0, err
	}
	return rec.ImportID, rec.Status, nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// normalizeCharset mapuje nietypowe etykiety na standardowe nazwy rozpoznawane przez charset.NewReaderLabel
func normalizeCharset(cs string) string {
	c := strings.TrimSpace(strings.ToLower(cs))
	switch c {
	case "latin ii", "latin-2", "latin2", "iso8859-2", "iso_8859-2":
		return "iso-8859-2"
	case "cp1250", "windows1250", "win-1250":
		return "windows-1250"
	default:
		return c
	}
}

func dec(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	// zamień ewentualny przecinek na kropkę
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func optDec(s string) *decimal.Decimal {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	d := dec(s)
	return &d
}
