// Package catalog loads the card catalog the deck is built from, and builds
// and serves catalogs from a definition file.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/arcanaland/whogoesfirst/internal/card"
)

// CardsPath is where a catalog root serves its cards, relative to the root.
const CardsPath = "/api/v1/cards.json"

// ErrFetch is returned for any failure to retrieve or decode the catalog.
var ErrFetch = errors.New("fetch catalog")

// wireCatalog is the JSON shape of a served catalog: card ID -> locale -> variant.
type wireCatalog map[string]map[string]card.Variant

// Loader fetches the catalog from a root that is either an http(s) URL or a
// local directory laid out the same way.
type Loader struct {
	root   string
	client *http.Client
	logger *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithHTTPClient sets the client used for http(s) roots.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		if client != nil {
			l.client = client
		}
	}
}

// WithLogger sets the loader's logger.
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader returns a loader for root.
func NewLoader(root string, opts ...LoaderOption) (*Loader, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("catalog root path is required")
	}
	l := &Loader{
		root:   strings.TrimRight(root, "/"),
		client: http.DefaultClient,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Source returns the location the catalog is read from.
func (l *Loader) Source() string {
	if l.remote() {
		return l.root + CardsPath
	}
	return filepath.Join(l.root, filepath.FromSlash(strings.TrimPrefix(CardsPath, "/")))
}

func (l *Loader) remote() bool {
	return strings.HasPrefix(l.root, "http://") || strings.HasPrefix(l.root, "https://")
}

// Fetch retrieves and decodes the catalog. Every failure wraps ErrFetch.
func (l *Loader) Fetch(ctx context.Context) (card.Catalog, error) {
	source := l.Source()
	l.logger.Debug("Fetching catalog", zap.String("source", source))

	var (
		data []byte
		err  error
	)
	if l.remote() {
		data, err = l.get(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	catalog, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	l.logger.Debug("Catalog fetched", zap.Int("cards", len(catalog)))
	return catalog, nil
}

func (l *Loader) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Decode parses a served catalog.
func Decode(data []byte) (card.Catalog, error) {
	var wire wireCatalog
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	catalog := make(card.Catalog, len(wire))
	for id, variants := range wire {
		catalog[id] = card.Card{ID: id, Variants: variants}
	}
	return catalog, nil
}

// Encode renders a catalog in its served form.
func Encode(catalog card.Catalog) ([]byte, error) {
	wire := make(wireCatalog, len(catalog))
	for id, c := range catalog {
		variants := c.Variants
		if variants == nil {
			variants = map[string]card.Variant{}
		}
		wire[id] = variants
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return data, nil
}
