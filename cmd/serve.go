package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/whogoesfirst/internal/catalog"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [catalog.toml]",
	Short: "Serve a catalog definition over HTTP",
	Long: `Serve builds the catalog described by a definition file and serves it at
` + catalog.CardsPath + `, so it can be used as a --root for drawing cards.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		def, err := catalog.LoadDefinition(args[0])
		if err != nil {
			return err
		}
		cards, err := def.Build()
		if err != nil {
			return fmt.Errorf("error building catalog: %v", err)
		}

		handler, err := catalog.NewHandler(cards, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()

		fmt.Fprintf(cmd.OutOrStdout(), "Serving %d cards at http://%s%s\n", len(cards), addr, catalog.CardsPath)

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		logger.Info("Shutting down catalog server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Catalog server shutdown failed", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Address to listen on")
}
