package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arcanaland/whogoesfirst/internal/catalog"
	"github.com/arcanaland/whogoesfirst/internal/deck"
	"github.com/arcanaland/whogoesfirst/internal/session"
	"github.com/arcanaland/whogoesfirst/internal/store"
)

// openSlot opens the configured persistence slot. The caller closes it.
func openSlot() (store.Slot, error) {
	return store.Open(cfg.StateBackend, cfg.StateDir())
}

// openSession validates the configuration, then loads the catalog and
// reconciles it with the saved deck. The caller closes the returned slot.
func openSession(cmd *cobra.Command) (*session.Session, *deck.Deck, store.Slot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	loader, err := catalog.NewLoader(cfg.RootPath, catalog.WithLogger(logger))
	if err != nil {
		return nil, nil, nil, err
	}

	slot, err := openSlot()
	if err != nil {
		return nil, nil, nil, err
	}

	s := session.New(loader, slot,
		session.WithRand(session.NewRand(seed)),
		session.WithLogger(logger))

	// An explicit --lang wins; otherwise keep the language the deck was saved with.
	lang := cfg.PreferredLanguage
	if !cmd.Flags().Changed("lang") {
		lang, err = s.PreferredLanguage(cmd.Context(), cfg.PreferredLanguage)
		if err != nil {
			_ = slot.Close()
			return nil, nil, nil, err
		}
	}

	d, err := s.Open(cmd.Context(), lang)
	if err != nil {
		_ = slot.Close()
		return nil, nil, nil, err
	}
	return s, d, slot, nil
}
