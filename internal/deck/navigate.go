package deck

import "fmt"

// Target is what should be displayed for the deck's current position.
type Target struct {
	ID        string // Card ID, empty for the title card
	URL       string // Display URL without the locale override fragment
	Locale    string // Locale the URL is served in
	Preferred string // Preferred language of the deck
	Override  bool   // Served locale differs from the preferred language
	Title     bool   // Position is before the first card
}

// String returns the display URL, with the locale override fragment appended
// when the card is not available in the preferred language.
func (t Target) String() string {
	if t.Override {
		return fmt.Sprintf("%s#!/?lang=%s", t.URL, t.Preferred)
	}
	return t.URL
}

// Advance moves to the next card. Past the last card the deck wraps to the
// title card and is reshuffled for a new lap.
func (d *Deck) Advance(rng Rand) {
	d.Position++
	if d.Position >= len(d.Order) {
		d.Position = BeforeFirst
		Shuffle(d.Order, 0, rng)
	}
}

// Current resolves the card on display.
func (d *Deck) Current() Target {
	if d.Position < 0 || d.Position >= len(d.Order) {
		return Target{
			URL:       "/" + d.PreferredLanguage + "/",
			Locale:    d.PreferredLanguage,
			Preferred: d.PreferredLanguage,
			Title:     true,
		}
	}

	id := d.Order[d.Position]
	locale := d.ItemLocales[id]
	return Target{
		ID:        id,
		URL:       d.Items[id],
		Locale:    locale,
		Preferred: d.PreferredLanguage,
		Override:  locale != d.PreferredLanguage,
	}
}
