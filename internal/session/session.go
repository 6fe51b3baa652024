// Package session runs one pass through the deck: it fetches the catalog,
// reconciles it with the saved deck, and saves the deck after every change.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arcanaland/whogoesfirst/internal/card"
	"github.com/arcanaland/whogoesfirst/internal/config"
	"github.com/arcanaland/whogoesfirst/internal/deck"
	"github.com/arcanaland/whogoesfirst/internal/store"
)

// ErrNotOpen is returned when the deck is used before Open.
var ErrNotOpen = errors.New("session is not open")

// Fetcher supplies the current card catalog.
type Fetcher interface {
	Fetch(ctx context.Context) (card.Catalog, error)
}

// Session owns the deck between loading and saving it.
type Session struct {
	fetcher Fetcher
	slot    store.Slot
	rng     deck.Rand
	logger  *zap.Logger

	deck *deck.Deck
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the shuffle source.
func WithRand(rng deck.Rand) Option {
	return func(s *Session) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a session reading the catalog from fetcher and keeping the deck
// in slot.
func New(fetcher Fetcher, slot store.Slot, opts ...Option) *Session {
	s := &Session{
		fetcher: fetcher,
		slot:    slot,
		rng:     NewRand(0),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRand returns a shuffle source. A zero seed seeds from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Saved returns the deck saved by the previous session, if any.
func (s *Session) Saved(ctx context.Context) (*deck.Deck, bool, error) {
	data, ok, err := s.slot.Load(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("load deck: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	d, err := deck.Unmarshal(data)
	if err != nil {
		return nil, false, err
	}
	return d, true, nil
}

// PreferredLanguage returns the language saved with the previous deck, or
// fallback when there is none.
func (s *Session) PreferredLanguage(ctx context.Context, fallback string) (string, error) {
	saved, ok, err := s.Saved(ctx)
	if err != nil {
		return "", err
	}
	if ok && saved.PreferredLanguage != "" {
		return saved.PreferredLanguage, nil
	}
	return fallback, nil
}

// Open fetches the catalog, reconciles it with the saved deck and saves the
// result.
func (s *Session) Open(ctx context.Context, preferredLanguage string) (*deck.Deck, error) {
	if strings.TrimSpace(preferredLanguage) == "" {
		return nil, config.ErrMissingPreferredLanguage
	}

	catalog, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	fresh, err := deck.Project(catalog, preferredLanguage)
	if err != nil {
		return nil, err
	}

	prior, ok, err := s.Saved(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Debug("No saved deck, starting a new one")
	}

	d := deck.Reconcile(fresh, prior, s.rng)
	s.logger.Debug("Deck reconciled",
		zap.String("lang", d.PreferredLanguage),
		zap.Int("cards", d.Len()),
		zap.Int("position", d.Position))

	s.deck = &d
	if err := s.save(ctx); err != nil {
		return nil, err
	}
	return s.deck, nil
}

// Deck returns the open deck.
func (s *Session) Deck() (*deck.Deck, error) {
	if s.deck == nil {
		return nil, ErrNotOpen
	}
	return s.deck, nil
}

// Current resolves the card on display.
func (s *Session) Current() (deck.Target, error) {
	if s.deck == nil {
		return deck.Target{}, ErrNotOpen
	}
	return s.deck.Current(), nil
}

// Next advances to the next card, saves the deck and returns what to display.
func (s *Session) Next(ctx context.Context) (deck.Target, error) {
	if s.deck == nil {
		return deck.Target{}, ErrNotOpen
	}

	s.deck.Advance(s.rng)
	if s.deck.Position == deck.BeforeFirst {
		s.logger.Debug("Deck finished, reshuffled", zap.Int("cards", s.deck.Len()))
	}

	if err := s.save(ctx); err != nil {
		return deck.Target{}, err
	}
	return s.deck.Current(), nil
}

// Reset forgets the saved deck.
func (s *Session) Reset(ctx context.Context) error {
	s.deck = nil
	if err := s.slot.Clear(ctx); err != nil {
		return fmt.Errorf("clear deck: %w", err)
	}
	return nil
}

func (s *Session) save(ctx context.Context) error {
	data, err := s.deck.Marshal()
	if err != nil {
		return err
	}
	if err := s.slot.Save(ctx, data); err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	return nil
}
