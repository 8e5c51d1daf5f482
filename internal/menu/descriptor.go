package menu

import "errors"

// Size tier names, in the order the add-to-cart fallback probes them.
const (
	SizeNormal = "normal"
	SizeMedium = "medium"
	SizeLarge  = "large"
	SizeVenti  = "venti"
)

var Sizes = []string{SizeNormal, SizeMedium, SizeLarge, SizeVenti}

// SizeTiers holds the display price of each size option. A product is
// multi-size only when all four tiers are present.
type SizeTiers struct {
	Normal string `json:"normal,omitempty"`
	Medium string `json:"medium,omitempty"`
	Large  string `json:"large,omitempty"`
	Venti  string `json:"venti,omitempty"`
}

func (t SizeTiers) Complete() bool {
	return t.Normal != "" && t.Medium != "" && t.Large != "" && t.Venti != ""
}

// Price returns the display price of one tier by size name.
func (t SizeTiers) Price(size string) (string, bool) {
	switch size {
	case SizeNormal:
		return t.Normal, t.Normal != ""
	case SizeMedium:
		return t.Medium, t.Medium != ""
	case SizeLarge:
		return t.Large, t.Large != ""
	case SizeVenti:
		return t.Venti, t.Venti != ""
	}
	return "", false
}

// Descriptor is the typed product read off a menu card: what the detail
// view needs to open, and what add-to-cart stages.
type Descriptor struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Price       string    `json:"price,omitempty"`
	Tiers       SizeTiers `json:"prices"`
}

func (d Descriptor) MultiSize() bool { return d.Tiers.Complete() }

var ErrNoName = errors.New("product name missing")

// FromAttrs adapts a raw card attribute map into a Descriptor. Only the
// name is required; every other field defaults to empty. Attribute keys
// mirror the card markup: "name", "description", "image", "price",
// "price-normal", "price-medium", "price-large", "price-venti".
func FromAttrs(attrs map[string]string) (Descriptor, error) {
	name := attrs["name"]
	if name == "" {
		return Descriptor{}, ErrNoName
	}

	return Descriptor{
		ID:          attrs["id"],
		Name:        name,
		Description: attrs["description"],
		Image:       attrs["image"],
		Price:       attrs["price"],
		Tiers: SizeTiers{
			Normal: attrs["price-normal"],
			Medium: attrs["price-medium"],
			Large:  attrs["price-large"],
			Venti:  attrs["price-venti"],
		},
	}, nil
}
