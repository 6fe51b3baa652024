// Package deck maintains the shuffled traversal order over a catalog of cards.
//
// A Deck is projected from a freshly loaded catalog, reconciled against the
// deck saved by the previous session, and advanced one card at a time.
package deck

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arcanaland/whogoesfirst/internal/card"
)

// ErrMissingDefaultLocale indicates a catalog card has no default-locale variant.
var ErrMissingDefaultLocale = errors.New("card has no default locale variant")

// ErrCorruptState indicates a saved deck could not be decoded.
var ErrCorruptState = errors.New("saved deck is corrupt")

// BeforeFirst is the position of the title card, shown before the first card.
const BeforeFirst = -1

// Deck is the persisted traversal state over a catalog.
//
// The JSON field names match the format the deck has always been saved in.
type Deck struct {
	PreferredLanguage string            `json:"preferredLanguage"`
	Items             map[string]string `json:"cards"`         // card ID -> display URL
	ItemLocales       map[string]string `json:"cardLanguages"` // card ID -> locale served
	Order             []string          `json:"deck"`
	Position          int               `json:"topCard"`
}

// Project selects a display URL for every card in the catalog.
//
// The preferred language variant is used when the card has one, otherwise the
// default locale variant. Order lists the card IDs in catalog order and the
// position is before the first card; Reconcile turns it into a playable deck.
func Project(catalog card.Catalog, preferredLanguage string) (Deck, error) {
	d := Deck{
		PreferredLanguage: preferredLanguage,
		Items:             make(map[string]string, len(catalog)),
		ItemLocales:       make(map[string]string, len(catalog)),
		Order:             catalog.IDs(),
		Position:          BeforeFirst,
	}

	for _, id := range d.Order {
		c := catalog[id]
		locale := card.DefaultLocale
		v, ok := c.Variant(locale)
		if !ok {
			return Deck{}, fmt.Errorf("card %s: %w", id, ErrMissingDefaultLocale)
		}
		if pv, ok := c.Variant(preferredLanguage); ok {
			locale, v = preferredLanguage, pv
		}

		d.Items[id] = v.URL
		d.ItemLocales[id] = locale
	}

	return d, nil
}

// Len returns the number of cards in the deck.
func (d *Deck) Len() int {
	return len(d.Order)
}

// Remaining returns how many cards are left to show in the current lap.
func (d *Deck) Remaining() int {
	return len(d.Order) - d.Position - 1
}

// Marshal encodes the deck for the persistence slot.
func (d *Deck) Marshal() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode deck: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a deck read from the persistence slot.
//
// The contents are trusted: no schema validation happens here, Reconcile
// repairs anything that no longer matches the catalog.
func Unmarshal(data []byte) (*Deck, error) {
	var d Deck
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return &d, nil
}
