package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTitleFallbackChain(t *testing.T) {
	tests := []struct {
		name     string
		product  Product
		lang     string
		expected string
	}{
		{
			name:     "exact language wins",
			product:  Product{TitleEN: "Walnut Tray", TitleAR: "صينية جوز", Title: "Old Tray"},
			lang:     LangEN,
			expected: "Walnut Tray",
		},
		{
			name:     "arabic exact wins for ar",
			product:  Product{TitleEN: "Walnut Tray", TitleAR: "صينية جوز", Title: "Old Tray"},
			lang:     LangAR,
			expected: "صينية جوز",
		},
		{
			name:     "legacy beats other language",
			product:  Product{TitleAR: "صينية جوز", Title: "Old Tray"},
			lang:     LangEN,
			expected: "Old Tray",
		},
		{
			name:     "other language is last resort",
			product:  Product{TitleAR: "صينية جوز"},
			lang:     LangEN,
			expected: "صينية جوز",
		},
		{
			name:     "default when everything empty",
			product:  Product{},
			lang:     LangEN,
			expected: DefaultTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveTitle(&tt.product, tt.lang))
		})
	}
}

func TestResolveTitleNilProduct(t *testing.T) {
	assert.Equal(t, DefaultTitle, ResolveTitle(nil, LangEN))
}

func TestResolveShortDescriptionFallsBackToDescription(t *testing.T) {
	p := Product{DescriptionEN: "Hand-carved from a single board."}
	assert.Equal(t, "Hand-carved from a single board.", ResolveShortDescription(&p, LangEN))

	p.ShortDescriptionAR = "وصف قصير"
	assert.Equal(t, "وصف قصير", ResolveShortDescription(&p, LangAR))
}

func TestResolveBadgeDefaultsPerLanguage(t *testing.T) {
	p := Product{}
	assert.Equal(t, DefaultBadgeEN, ResolveBadge(&p, LangEN))
	assert.Equal(t, DefaultBadgeAR, ResolveBadge(&p, LangAR))

	p.Badge = "SALE"
	assert.Equal(t, "SALE", ResolveBadge(&p, LangEN))
	assert.Equal(t, "SALE", ResolveBadge(&p, LangAR))
}

func TestResolvePriceNeverEmpty(t *testing.T) {
	assert.Equal(t, DefaultPrice, ResolvePrice(&Product{}, LangEN))
	assert.Equal(t, "600 جنيه", ResolvePrice(&Product{PriceAR: "600 جنيه"}, LangAR))
	assert.Equal(t, "$85", ResolvePrice(&Product{Price: "$85"}, LangEN))
}

func TestResolveFeaturesEmptyListStopsChain(t *testing.T) {
	// An explicitly cleared list is a statement, not an absence: it must not
	// leak the other language's features through.
	p := Product{
		FeaturesEN: []string{},
		FeaturesAR: []string{"خشب طبيعي"},
	}
	assert.Empty(t, ResolveFeatures(&p, LangEN))

	// nil means "not sent", so the chain continues.
	p.FeaturesEN = nil
	p.Features = []string{"solid walnut"}
	assert.Equal(t, []string{"solid walnut"}, ResolveFeatures(&p, LangEN))

	p.Features = nil
	assert.Equal(t, []string{"خشب طبيعي"}, ResolveFeatures(&p, LangEN))
}

func TestNormalizeLang(t *testing.T) {
	assert.Equal(t, LangAR, NormalizeLang("ar"))
	assert.Equal(t, LangAR, NormalizeLang("AR"))
	assert.Equal(t, LangEN, NormalizeLang("en"))
	assert.Equal(t, LangEN, NormalizeLang(""))
	assert.Equal(t, LangEN, NormalizeLang("fr"))
}

func TestPriceValue(t *testing.T) {
	tests := []struct {
		price    string
		expected float64
	}{
		{"$85", 85},
		{"600 جنيه", 600},
		{"1,250.50 EG", 1250.50},
		{"free", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, PriceValue(tt.price), "price %q", tt.price)
	}
}

func TestOriginalPricePreservesCurrency(t *testing.T) {
	assert.Equal(t, "$102.00", OriginalPrice("$85"))
	assert.Equal(t, "720.00 جنيه", OriginalPrice("600 جنيه"))
	assert.Equal(t, "120.00 ج.م", OriginalPrice("100 ج.م"))
	assert.Equal(t, "60.00", OriginalPrice("50"))

	// Zero or unparseable prices pass through unchanged.
	assert.Equal(t, "free", OriginalPrice("free"))
	assert.Equal(t, DefaultPrice, OriginalPrice(""))
}
