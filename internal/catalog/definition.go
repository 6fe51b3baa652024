package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/whogoesfirst/internal/card"
)

// Definition describes a catalog: the languages it is published in and each
// card's translated name per language.
//
//	[languages.fr]
//	name = "français"
//	cards = "cartes"
//
//	[cards.award]
//	en = "award"
//	fr = "prix"
type Definition struct {
	Languages map[string]Language         `toml:"languages"`
	Cards     map[string]map[string]string `toml:"cards"` // card ID -> locale -> translated name
}

// Language configures how a language is published.
type Language struct {
	Name  string `toml:"name"`  // Display name, e.g. "English"
	Cards string `toml:"cards"` // Translated "cards" path segment
}

// LoadDefinition decodes a catalog definition file.
func LoadDefinition(path string) (*Definition, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("catalog definition not found: %s", path)
	}

	var def Definition
	if _, err := toml.DecodeFile(path, &def); err != nil {
		return nil, fmt.Errorf("error parsing catalog definition: %v", err)
	}
	return &def, nil
}

// Build turns the definition into a catalog, giving each variant the URL
// /<locale>/<cards segment>/<translated name>/.
func (d *Definition) Build() (card.Catalog, error) {
	catalog := make(card.Catalog, len(d.Cards))

	for _, id := range sortedKeys(d.Cards) {
		names := d.Cards[id]
		c := card.Card{ID: id, Variants: make(map[string]card.Variant, len(names))}

		for locale, name := range names {
			lang, ok := d.Languages[locale]
			if !ok {
				return nil, fmt.Errorf("card %s: undeclared language %s", id, locale)
			}
			if strings.TrimSpace(name) == "" {
				return nil, fmt.Errorf("card %s: empty %s name", id, locale)
			}
			c.Variants[locale] = card.Variant{
				Name: name,
				URL:  CardURL(locale, lang.Cards, name),
			}
		}

		if _, ok := c.Variants[card.DefaultLocale]; !ok {
			return nil, fmt.Errorf("card %s: missing %s name", id, card.DefaultLocale)
		}
		catalog[id] = c
	}

	return catalog, nil
}

// CardURL returns the display URL of a card variant.
func CardURL(locale, cardsSegment, name string) string {
	return "/" + locale + "/" + cardsSegment + "/" + name + "/"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
