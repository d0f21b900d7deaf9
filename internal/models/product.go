package models

// Seed products occupy ids 1-9. They are baseline catalog fixtures: the admin
// can hide them (removedIds) but can never edit or hard-delete them, so a
// cleared removedIds list always restores the original storefront.
const (
	SeedRangeMin = 1
	SeedRangeMax = 9
)

// Media type constants
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// MediaItem is one entry of a product's ordered media gallery.
type MediaItem struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Product represents a catalog entry. Text fields exist in three storage
// variants: English (_en), Arabic (_ar) and a legacy untagged field written by
// records that predate the bilingual split. Resolution across the variants is
// handled by the Resolve* helpers, never by readers poking at fields directly.
type Product struct {
	ID int `json:"id"`

	// English
	TitleEN            string   `json:"title_en,omitempty"`
	DescriptionEN      string   `json:"description_en,omitempty"`
	ShortDescriptionEN string   `json:"shortDescription_en,omitempty"`
	BadgeEN            string   `json:"badge_en,omitempty"`
	PriceEN            string   `json:"price_en,omitempty"`
	FeaturesEN         []string `json:"features_en,omitempty"`

	// Arabic
	TitleAR            string   `json:"title_ar,omitempty"`
	DescriptionAR      string   `json:"description_ar,omitempty"`
	ShortDescriptionAR string   `json:"shortDescription_ar,omitempty"`
	BadgeAR            string   `json:"badge_ar,omitempty"`
	PriceAR            string   `json:"price_ar,omitempty"`
	FeaturesAR         []string `json:"features_ar,omitempty"`

	// Legacy untagged fields, kept for backward compatibility with older
	// published snapshots and used as the mid-point of the fallback chain.
	Title            string   `json:"title,omitempty"`
	Description      string   `json:"description,omitempty"`
	ShortDescription string   `json:"shortDescription,omitempty"`
	Badge            string   `json:"badge,omitempty"`
	Price            string   `json:"price,omitempty"`
	Features         []string `json:"features,omitempty"`

	// Media gallery in display order. Legacy records carry images/image
	// instead; NormalizeMedia converts them on write and NormalizedMedia on
	// read.
	Media []MediaItem `json:"media,omitempty"`

	// Derived convenience fields for legacy readers: first image URL and all
	// image URLs in media order. Recomputed whenever media changes.
	Image  string   `json:"image,omitempty"`
	Images []string `json:"images,omitempty"`
}

// IsSeed reports whether the product id falls in the protected seed range.
func IsSeed(id int) bool {
	return id >= SeedRangeMin && id <= SeedRangeMax
}

// Snapshot is the full catalog state at a point in time: which seed products
// are hidden plus every product created through the admin panel.
type Snapshot struct {
	RemovedIDs     []int     `json:"removedIds"`
	CustomProducts []Product `json:"customProducts"`
}

// EmptySnapshot returns the zero-value catalog used whenever a stored or
// fetched snapshot is absent or unparseable.
func EmptySnapshot() Snapshot {
	return Snapshot{RemovedIDs: []int{}, CustomProducts: []Product{}}
}

// Normalize coerces nil slices so callers can range and marshal without nil
// checks. Malformed input is repaired, never rejected.
func (s *Snapshot) Normalize() {
	if s.RemovedIDs == nil {
		s.RemovedIDs = []int{}
	}
	if s.CustomProducts == nil {
		s.CustomProducts = []Product{}
	}
}

// IsEmpty reports whether the snapshot carries no state at all. A remote file
// in this shape is indistinguishable from a misconfigured placeholder, which
// is why the reconciler refuses to let it wipe a populated cache.
func (s Snapshot) IsEmpty() bool {
	return len(s.RemovedIDs) == 0 && len(s.CustomProducts) == 0
}

// Clone returns a deep copy so the reconciler can hand out state without
// sharing backing arrays with callers.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		RemovedIDs:     make([]int, len(s.RemovedIDs)),
		CustomProducts: make([]Product, len(s.CustomProducts)),
	}
	copy(out.RemovedIDs, s.RemovedIDs)
	for i, p := range s.CustomProducts {
		out.CustomProducts[i] = p.Clone()
	}
	return out
}

// Clone returns a deep copy of the product.
func (p Product) Clone() Product {
	out := p
	out.FeaturesEN = copyStrings(p.FeaturesEN)
	out.FeaturesAR = copyStrings(p.FeaturesAR)
	out.Features = copyStrings(p.Features)
	out.Images = copyStrings(p.Images)
	if p.Media != nil {
		out.Media = make([]MediaItem, len(p.Media))
		copy(out.Media, p.Media)
	}
	return out
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
