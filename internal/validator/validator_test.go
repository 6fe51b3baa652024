package validator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateShippedCatalog(t *testing.T) {
	results, err := NewValidator(filepath.Join("..", "catalog", "testdata", "catalog.toml")).Validate()
	require.NoError(t, err)
	assert.Empty(t, results.Errors)
	assert.Empty(t, results.Warnings)
}

func TestValidateReportsErrors(t *testing.T) {
	path := writeCatalog(t, `
[languages.en]
name = "English"
cards = "cards"

[languages.fr]
cards = "cartes"

[languages.de]
name = "Deutsch"
cards = "karten"

[cards.prix]
fr = "prix"

[cards.award]
en = "award"
es = "premio"

[cards.tv]
en = "award"

[cards.walk-dog]
en = "walk a dog"
`)

	results, err := NewValidator(path).Validate()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"card prix has no en name",
		"card award uses undeclared language es",
		"card walk-dog en name must be a single path segment: \"walk a dog\"",
		"cards award and tv share the URL /en/cards/award/",
	}, results.Errors)
	assert.ElementsMatch(t, []string{
		"languages.fr.name is not set",
		"language de is declared but no card is translated into it",
	}, results.Warnings)
}

func TestValidateEmptyCatalog(t *testing.T) {
	results, err := NewValidator(writeCatalog(t, "")).Validate()
	require.NoError(t, err)
	assert.Contains(t, results.Errors, "at least one language must be declared under [languages]")
	assert.Contains(t, results.Errors, "catalog defines no cards")
}

func TestValidateMissingDefaultLanguage(t *testing.T) {
	path := writeCatalog(t, `
[languages.fr]
name = "français"

[cards.prix]
fr = "prix"
`)

	results, err := NewValidator(path).Validate()
	require.NoError(t, err)
	assert.Contains(t, results.Errors, "default language en is not declared")
	assert.Contains(t, results.Errors, "languages.fr.cards is required")
	assert.Contains(t, results.Errors, "card prix has no en name")
}

func TestValidateMissingFile(t *testing.T) {
	_, err := NewValidator(filepath.Join(t.TempDir(), "missing.toml")).Validate()
	require.Error(t, err)
}

func TestValidateUnparseableFile(t *testing.T) {
	_, err := NewValidator(writeCatalog(t, "[languages.en\n")).Validate()
	require.Error(t, err)
}
