package deck

import "sort"

// Reconcile merges the deck saved by a previous session into a freshly
// projected deck.
//
// Without a prior deck every card is shuffled and the position starts before
// the first card. With one, cards already shown keep their places and the card
// on display stays on display: cards removed from the catalog are dropped and
// the position moves back by one for each removed card at or before it. Cards
// new to the catalog are appended, then every card not yet shown is shuffled.
//
// The returned deck takes its language, URLs and locales from fresh.
func Reconcile(fresh Deck, prior *Deck, rng Rand) Deck {
	ids := catalogOrder(fresh)

	d := Deck{
		PreferredLanguage: fresh.PreferredLanguage,
		Items:             fresh.Items,
		ItemLocales:       fresh.ItemLocales,
		Position:          BeforeFirst,
	}

	if prior == nil {
		d.Order = ids
		Shuffle(d.Order, 0, rng)
		return d
	}

	pending := make(map[string]bool, len(ids))
	for _, id := range ids {
		pending[id] = true
	}

	position := clamp(prior.Position, BeforeFirst, len(prior.Order)-1)
	shown := position
	order := make([]string, 0, len(ids))
	for i, id := range prior.Order {
		if pending[id] {
			order = append(order, id)
			delete(pending, id)
			continue
		}
		// Removed at or before the card on display.
		if i <= shown {
			position--
		}
	}

	// New to the catalog.
	for _, id := range ids {
		if pending[id] {
			order = append(order, id)
		}
	}

	d.Order = order
	d.Position = clamp(position, BeforeFirst, len(order)-1)
	Shuffle(d.Order, d.Position+1, rng)
	return d
}

// catalogOrder returns the fresh deck's card IDs, falling back to ascending
// ID order when Order does not list exactly the deck's cards.
func catalogOrder(fresh Deck) []string {
	ids := make([]string, 0, len(fresh.Items))
	seen := make(map[string]bool, len(fresh.Items))
	for _, id := range fresh.Order {
		if _, ok := fresh.Items[id]; ok && !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	if len(ids) == len(fresh.Items) {
		return ids
	}

	ids = ids[:0]
	for id := range fresh.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
