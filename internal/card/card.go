package card

import "sort"

// DefaultLocale is the locale every card must provide a variant for.
const DefaultLocale = "en"

// Variant represents one localized rendering of a card
type Variant struct {
	Name string `json:"name,omitempty"` // Localized name
	URL  string `json:"url"`          // Display URL for this locale
}

// Card represents a who-goes-first card
type Card struct {
	ID       string             // Stable card ID (e.g., pizza, walk-dog)
	Variants map[string]Variant // Locale -> variant
}

// Variant returns the variant for a locale, if the card has one.
func (c Card) Variant(locale string) (Variant, bool) {
	v, ok := c.Variants[locale]
	return v, ok
}

// Locales returns the card's locales in sorted order.
func (c Card) Locales() []string {
	locales := make([]string, 0, len(c.Variants))
	for l := range c.Variants {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	return locales
}

// Catalog maps card IDs to cards
type Catalog map[string]Card

// IDs returns the catalog's card IDs in catalog order (ascending).
func (c Catalog) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
