package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Display languages supported by the storefront.
const (
	LangEN = "en"
	LangAR = "ar"
)

// Hardcoded last-resort defaults so a product card never renders blank.
const (
	DefaultTitle   = "Product"
	DefaultPrice   = "$0"
	DefaultBadgeEN = "NEW ARRIVAL"
	DefaultBadgeAR = "وصل حديثاً"
)

// DiscountPercent is the storefront-wide strike-through discount.
const DiscountPercent = 20

// NormalizeLang maps any input to a supported language, defaulting to English.
func NormalizeLang(lang string) string {
	if strings.ToLower(lang) == LangAR {
		return LangAR
	}
	return LangEN
}

// variant holds the three storage variants of one bilingual text field.
type variant struct {
	en, ar, legacy string
}

// resolve walks the fallback chain: exact language -> legacy untagged field ->
// other language. Empty string means the chain was exhausted.
func (v variant) resolve(lang string) string {
	exact, other := v.en, v.ar
	if NormalizeLang(lang) == LangAR {
		exact, other = v.ar, v.en
	}
	if exact != "" {
		return exact
	}
	if v.legacy != "" {
		return v.legacy
	}
	return other
}

// ResolveTitle returns the product title in the requested language, never
// empty.
func ResolveTitle(p *Product, lang string) string {
	if p == nil {
		return DefaultTitle
	}
	if s := (variant{p.TitleEN, p.TitleAR, p.Title}).resolve(lang); s != "" {
		return s
	}
	return DefaultTitle
}

// ResolveDescription returns the product description in the requested
// language, possibly empty.
func ResolveDescription(p *Product, lang string) string {
	if p == nil {
		return ""
	}
	return (variant{p.DescriptionEN, p.DescriptionAR, p.Description}).resolve(lang)
}

// ResolveShortDescription falls back to the full description when no short
// variant exists.
func ResolveShortDescription(p *Product, lang string) string {
	if p == nil {
		return ""
	}
	if s := (variant{p.ShortDescriptionEN, p.ShortDescriptionAR, p.ShortDescription}).resolve(lang); s != "" {
		return s
	}
	return ResolveDescription(p, lang)
}

// ResolveBadge returns the product badge, defaulting per language.
func ResolveBadge(p *Product, lang string) string {
	if p != nil {
		if s := (variant{p.BadgeEN, p.BadgeAR, p.Badge}).resolve(lang); s != "" {
			return s
		}
	}
	if NormalizeLang(lang) == LangAR {
		return DefaultBadgeAR
	}
	return DefaultBadgeEN
}

// ResolvePrice returns the display price string, never empty. Prices are
// free-text with an embedded currency symbol ("$85", "600 جنيه").
func ResolvePrice(p *Product, lang string) string {
	if p == nil {
		return DefaultPrice
	}
	if s := (variant{p.PriceEN, p.PriceAR, p.Price}).resolve(lang); s != "" {
		return s
	}
	return DefaultPrice
}

// ResolveFeatures returns the feature list for the requested language. Unlike
// the text chain, a present-but-empty list stops the fallback: an operator who
// cleared the English features should not see Arabic ones leak through.
func ResolveFeatures(p *Product, lang string) []string {
	if p == nil {
		return []string{}
	}
	exact, other := p.FeaturesEN, p.FeaturesAR
	if NormalizeLang(lang) == LangAR {
		exact, other = p.FeaturesAR, p.FeaturesEN
	}
	if exact != nil {
		return exact
	}
	if p.Features != nil {
		return p.Features
	}
	if other != nil {
		return other
	}
	return []string{}
}

// PriceValue extracts the numeric value from a free-text price by stripping
// every character except digits and the decimal point. Unparseable input
// yields 0.
func PriceValue(price string) float64 {
	var b strings.Builder
	for _, r := range price {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// OriginalPrice computes the pre-discount price (current + 20%) while
// preserving the currency notation of the input string.
func OriginalPrice(price string) string {
	if price == "" {
		return DefaultPrice
	}
	num := PriceValue(price)
	if num == 0 {
		return price
	}
	original := num * (1 + float64(DiscountPercent)/100)

	if strings.Contains(price, "$") {
		return fmt.Sprintf("$%.2f", original)
	}
	for _, currency := range []string{"جنيه", "ج.م", "EG"} {
		if strings.Contains(price, currency) {
			return fmt.Sprintf("%.2f %s", original, currency)
		}
	}
	return fmt.Sprintf("%.2f", original)
}
