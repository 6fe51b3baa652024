package validator

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/whogoesfirst/internal/card"
	"github.com/arcanaland/whogoesfirst/internal/catalog"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	CatalogPath string
	Results     ValidationResults

	def catalog.Definition
}

func NewValidator(catalogPath string) *Validator {
	return &Validator{
		CatalogPath: catalogPath,
		Results:     ValidationResults{},
	}
}

func (v *Validator) Validate() (ValidationResults, error) {
	if err := v.validateCatalogToml(); err != nil {
		return v.Results, err
	}

	v.validateLanguages()
	v.validateCards()
	v.validateURLs()
	v.validateCoverage()

	return v.Results, nil
}

func (v *Validator) validateCatalogToml() error {
	if _, err := os.Stat(v.CatalogPath); os.IsNotExist(err) {
		return fmt.Errorf("catalog definition not found: %s", v.CatalogPath)
	}

	if _, err := toml.DecodeFile(v.CatalogPath, &v.def); err != nil {
		return fmt.Errorf("error parsing catalog definition: %v", err)
	}
	return nil
}

// validateLanguages checks every declared language can be published
func (v *Validator) validateLanguages() {
	if len(v.def.Languages) == 0 {
		v.errorf("at least one language must be declared under [languages]")
		return
	}

	if _, ok := v.def.Languages[card.DefaultLocale]; !ok {
		v.errorf("default language %s is not declared", card.DefaultLocale)
	}

	for _, locale := range sortedKeys(v.def.Languages) {
		lang := v.def.Languages[locale]
		if strings.TrimSpace(lang.Cards) == "" {
			v.errorf("languages.%s.cards is required", locale)
		} else if strings.Contains(lang.Cards, "/") {
			v.errorf("languages.%s.cards must be a single path segment: %q", locale, lang.Cards)
		}
		if strings.TrimSpace(lang.Name) == "" {
			v.warnf("languages.%s.name is not set", locale)
		}
	}
}

// validateCards checks each card has a default name and only uses declared languages
func (v *Validator) validateCards() {
	if len(v.def.Cards) == 0 {
		v.errorf("catalog defines no cards")
		return
	}

	for _, id := range sortedKeys(v.def.Cards) {
		names := v.def.Cards[id]

		if _, ok := names[card.DefaultLocale]; !ok {
			v.errorf("card %s has no %s name", id, card.DefaultLocale)
		}

		for _, locale := range sortedKeys(names) {
			name := names[locale]
			if _, ok := v.def.Languages[locale]; !ok {
				v.errorf("card %s uses undeclared language %s", id, locale)
			}
			if strings.TrimSpace(name) == "" {
				v.errorf("card %s has an empty %s name", id, locale)
			} else if strings.ContainsAny(name, "/ ") {
				v.errorf("card %s %s name must be a single path segment: %q", id, locale, name)
			}
		}

		if id != strings.ToLower(id) {
			v.warnf("card id %s is not lower case", id)
		}
	}
}

// validateURLs checks no two cards are published at the same URL
func (v *Validator) validateURLs() {
	owners := make(map[string]string)

	for _, id := range sortedKeys(v.def.Cards) {
		names := v.def.Cards[id]
		for _, locale := range sortedKeys(names) {
			lang, ok := v.def.Languages[locale]
			if !ok || lang.Cards == "" || names[locale] == "" {
				continue // Already reported
			}

			url := catalog.CardURL(locale, lang.Cards, names[locale])
			if other, ok := owners[url]; ok {
				v.errorf("cards %s and %s share the URL %s", other, id, url)
				continue
			}
			owners[url] = id
		}
	}
}

// validateCoverage warns about languages no card is translated into
func (v *Validator) validateCoverage() {
	used := make(map[string]bool)
	for _, names := range v.def.Cards {
		for locale := range names {
			used[locale] = true
		}
	}

	for _, locale := range sortedKeys(v.def.Languages) {
		if !used[locale] {
			v.warnf("language %s is declared but no card is translated into it", locale)
		}
	}
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
