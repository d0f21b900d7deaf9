package models

// ProductPatch is a partial product update. Pointer fields distinguish "not
// sent" from "set to empty" so the shallow merge only touches submitted
// fields.
type ProductPatch struct {
	TitleEN            *string      `json:"title_en"`
	DescriptionEN      *string      `json:"description_en"`
	ShortDescriptionEN *string      `json:"shortDescription_en"`
	BadgeEN            *string      `json:"badge_en"`
	PriceEN            *string      `json:"price_en"`
	FeaturesEN         *[]string    `json:"features_en"`
	TitleAR            *string      `json:"title_ar"`
	DescriptionAR      *string      `json:"description_ar"`
	ShortDescriptionAR *string      `json:"shortDescription_ar"`
	BadgeAR            *string      `json:"badge_ar"`
	PriceAR            *string      `json:"price_ar"`
	FeaturesAR         *[]string    `json:"features_ar"`
	Title              *string      `json:"title"`
	Description        *string      `json:"description"`
	ShortDescription   *string      `json:"shortDescription"`
	Badge              *string      `json:"badge"`
	Price              *string      `json:"price"`
	Features           *[]string    `json:"features"`
	Media              *[]MediaItem `json:"media"`
	Image              *string      `json:"image"`
	Images             *[]string    `json:"images"`
}

// Apply shallow-merges the patch onto the product. Nil feature lists sent
// explicitly are coerced to empty slices rather than rejected.
func (patch *ProductPatch) Apply(p *Product) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStrings := func(dst *[]string, src *[]string) {
		if src != nil {
			if *src == nil {
				*dst = []string{}
			} else {
				*dst = *src
			}
		}
	}

	setString(&p.TitleEN, patch.TitleEN)
	setString(&p.DescriptionEN, patch.DescriptionEN)
	setString(&p.ShortDescriptionEN, patch.ShortDescriptionEN)
	setString(&p.BadgeEN, patch.BadgeEN)
	setString(&p.PriceEN, patch.PriceEN)
	setStrings(&p.FeaturesEN, patch.FeaturesEN)

	setString(&p.TitleAR, patch.TitleAR)
	setString(&p.DescriptionAR, patch.DescriptionAR)
	setString(&p.ShortDescriptionAR, patch.ShortDescriptionAR)
	setString(&p.BadgeAR, patch.BadgeAR)
	setString(&p.PriceAR, patch.PriceAR)
	setStrings(&p.FeaturesAR, patch.FeaturesAR)

	setString(&p.Title, patch.Title)
	setString(&p.Description, patch.Description)
	setString(&p.ShortDescription, patch.ShortDescription)
	setString(&p.Badge, patch.Badge)
	setString(&p.Price, patch.Price)
	setStrings(&p.Features, patch.Features)

	if patch.Media != nil {
		if *patch.Media == nil {
			p.Media = []MediaItem{}
		} else {
			p.Media = *patch.Media
		}
	}
	setString(&p.Image, patch.Image)
	setStrings(&p.Images, patch.Images)
}
