package bridge

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/bartek5186/woo2katana/internal/catalog"
	"github.com/bartek5186/woo2katana/internal/katana"
	"github.com/bartek5186/woo2katana/internal/settings"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaults = settings.Defaults{
	APIKey:        "key",
	IsSellable:    true,
	IsPurchasable: true,
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sizeAttr(v string) []catalog.Attribute {
	return []catalog.Attribute{{Name: "pa_size", Value: v}}
}

func tshirt() *catalog.Product {
	return &catalog.Product{
		ID:       7,
		Name:     "T-Shirt",
		SKU:      "TS",
		Type:     catalog.Variable,
		Category: "Apparel",
		Variations: []catalog.Variation{
			{ID: 71, SKU: "S-1", Price: price("10"), Attributes: sizeAttr("S")},
			{ID: 72, SKU: "S-2", Price: price("12.50"), Attributes: sizeAttr("M")},
		},
	}
}

func kindOfErr(t *testing.T, err error) Kind {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	return ve.Kind
}

func TestTranslate_Simple(t *testing.T) {
	p := &catalog.Product{ID: 1, Name: "Mug", SKU: "ABC123", Price: price("9.99"), Type: catalog.Simple}

	req, err := Translate(p, defaults, nil)
	require.NoError(t, err)

	assert.Equal(t, "Mug", req.Name)
	assert.Equal(t, katana.UOMPieces, req.UOM)
	assert.Equal(t, catalog.DefaultCategory, req.CategoryName)
	assert.True(t, req.IsSellable)
	assert.False(t, req.IsProducible)
	assert.True(t, req.IsPurchasable)
	assert.False(t, req.IsAutoAssembly)
	assert.Nil(t, req.Configs)
	require.Len(t, req.Variants, 1)
	assert.Equal(t, "ABC123", req.Variants[0].SKU)
	assert.Equal(t, 9.99, req.Variants[0].SalesPrice)
	assert.Nil(t, req.Variants[0].PurchasePrice)
	assert.Empty(t, req.Variants[0].ConfigAttributes)
}

func TestTranslate_SimplePurchasePrice(t *testing.T) {
	pp := price("4.20")
	p := &catalog.Product{ID: 1, Name: "Mug", SKU: "ABC123", Price: price("9.99"), PurchasePrice: &pp, Type: catalog.Simple}

	req, err := Translate(p, defaults, map[string]struct{}{"OTHER": {}})
	require.NoError(t, err)
	require.NotNil(t, req.Variants[0].PurchasePrice)
	assert.Equal(t, 4.2, *req.Variants[0].PurchasePrice)
}

func TestTranslate_SimpleAlreadyExists(t *testing.T) {
	p := &catalog.Product{ID: 1, Name: "Mug", SKU: "ABC123", Type: catalog.Simple}

	_, err := Translate(p, defaults, map[string]struct{}{"ABC123": {}})
	assert.Equal(t, KindAlreadyExists, kindOfErr(t, err))
	assert.Contains(t, err.Error(), "ABC123")
}

func TestTranslate_MissingSKU(t *testing.T) {
	for _, typ := range []catalog.ProductType{catalog.Simple, catalog.Variable, "grouped"} {
		p := &catalog.Product{ID: 1, Name: "X", Type: typ}
		_, err := Translate(p, defaults, nil)
		assert.Equal(t, KindMissingSKU, kindOfErr(t, err), string(typ))
	}
}

func TestTranslate_UnsupportedType(t *testing.T) {
	for _, typ := range []catalog.ProductType{"grouped", "external", ""} {
		p := &catalog.Product{ID: 1, Name: "X", SKU: "X", Type: typ}
		_, err := Translate(p, defaults, nil)
		assert.Equal(t, KindUnsupportedType, kindOfErr(t, err), string(typ))
	}
}

func TestTranslate_Variable(t *testing.T) {
	req, err := Translate(tshirt(), defaults, nil)
	require.NoError(t, err)

	assert.Equal(t, "Apparel", req.CategoryName)
	assert.Equal(t, []katana.Config{{Name: "Size", Values: []string{"S", "M"}}}, req.Configs)
	require.Len(t, req.Variants, 2)

	assert.Equal(t, "S-1", req.Variants[0].SKU)
	assert.Equal(t, 10.0, req.Variants[0].SalesPrice)
	assert.Equal(t, []katana.ConfigAttribute{{ConfigName: "Size", ConfigValue: "S"}}, req.Variants[0].ConfigAttributes)

	assert.Equal(t, "S-2", req.Variants[1].SKU)
	assert.Equal(t, 12.5, req.Variants[1].SalesPrice)
	assert.Equal(t, []katana.ConfigAttribute{{ConfigName: "Size", ConfigValue: "M"}}, req.Variants[1].ConfigAttributes)
}

func TestTranslate_VariableSkipsExistingAndBlank(t *testing.T) {
	p := tshirt()
	p.Variations = append(p.Variations, catalog.Variation{ID: 73, SKU: "", Attributes: sizeAttr("XL")})

	req, err := Translate(p, defaults, map[string]struct{}{"S-1": {}})
	require.NoError(t, err)

	require.Len(t, req.Variants, 1)
	assert.Equal(t, "S-2", req.Variants[0].SKU)
	// wartości tylko z wysłanych wariantów
	assert.Equal(t, []katana.Config{{Name: "Size", Values: []string{"M"}}}, req.Configs)
}

func TestTranslate_NoNewVariants(t *testing.T) {
	_, err := Translate(tshirt(), defaults, map[string]struct{}{"S-1": {}, "S-2": {}})
	assert.Equal(t, KindNoNewVariants, kindOfErr(t, err))
	assert.Equal(t, "All variants already exist in Katana.", err.Error())

	p := tshirt()
	p.Variations = nil
	_, err = Translate(p, defaults, nil)
	assert.Equal(t, KindNoNewVariants, kindOfErr(t, err))
}

func TestTranslate_ConfigValuesDeduplicated(t *testing.T) {
	p := &catalog.Product{
		ID: 9, Name: "Hoodie", SKU: "HD", Type: catalog.Variable,
		Variations: []catalog.Variation{
			{SKU: "HD-1", Attributes: []catalog.Attribute{{Name: "pa_size", Value: "S"}, {Name: "attribute_pa_color", Value: "Red"}}},
			{SKU: "HD-2", Attributes: []catalog.Attribute{{Name: "pa_size", Value: "S"}, {Name: "attribute_pa_color", Value: "Blue"}}},
			{SKU: "HD-3", Attributes: []catalog.Attribute{{Name: "pa_size", Value: "M"}, {Name: "attribute_pa_color", Value: "Red"}}},
		},
	}

	req, err := Translate(p, defaults, nil)
	require.NoError(t, err)
	assert.Equal(t, []katana.Config{
		{Name: "Size", Values: []string{"S", "M"}},
		{Name: "Color", Values: []string{"Red", "Blue"}},
	}, req.Configs)
}

func TestTranslate_Deterministic(t *testing.T) {
	existing := map[string]struct{}{"S-9": {}}

	a, err := Translate(tshirt(), defaults, existing)
	require.NoError(t, err)
	b, err := Translate(tshirt(), defaults, existing)
	require.NoError(t, err)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(ja), string(jb))
}

func TestTranslate_DefaultsFlowThrough(t *testing.T) {
	d := settings.Defaults{APIKey: "k", IsProducible: true, IsAutoAssembly: true}
	p := &catalog.Product{ID: 1, Name: "Kit", SKU: "KIT", Type: catalog.Simple, Description: "<p>box</p>"}

	req, err := Translate(p, d, nil)
	require.NoError(t, err)
	assert.False(t, req.IsSellable)
	assert.True(t, req.IsProducible)
	assert.False(t, req.IsPurchasable)
	assert.True(t, req.IsAutoAssembly)
	assert.Equal(t, "<p>box</p>", req.AdditionalInfo)
}

func TestTranslate_OneValuePerLabelInVariant(t *testing.T) {
	p := &catalog.Product{
		ID: 9, Name: "Sock", SKU: "SK", Type: catalog.Variable,
		Variations: []catalog.Variation{
			{SKU: "SK-1", Attributes: []catalog.Attribute{{Name: "pa_size", Value: "S"}, {Name: "size", Value: "M"}}},
		},
	}

	req, err := Translate(p, defaults, nil)
	require.NoError(t, err)
	assert.Equal(t, []katana.ConfigAttribute{{ConfigName: "Size", ConfigValue: "S"}}, req.Variants[0].ConfigAttributes)
	assert.Equal(t, []katana.Config{{Name: "Size", Values: []string{"S"}}}, req.Configs)
}
