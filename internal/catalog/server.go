package catalog

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/arcanaland/whogoesfirst/internal/card"
)

// NewHandler serves catalog at CardsPath.
func NewHandler(catalog card.Catalog, logger *zap.Logger) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	body, err := Encode(catalog)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+CardsPath, func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("Serving catalog", zap.String("remote", r.RemoteAddr))
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(body); err != nil {
			logger.Warn("Failed to write catalog", zap.Error(err))
		}
	})
	return mux, nil
}
