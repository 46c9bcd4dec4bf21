package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cppsniff/internal/controller"
	"cppsniff/internal/handler"
	"cppsniff/pkg/mcp"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Serve runs the HTTP API and the MCP server until ctx is cancelled or
// either of them fails
func (app *application) Serve(ctx context.Context) error {
	smellController := controller.NewSmellController(app.processor, app.logger)
	router := handler.SetupRouter(smellController, app.logger)
	mcpServer := mcp.NewCommentedCodeServer(app.processor, app.cfg, app.logger)

	address := fmt.Sprintf(":%d", app.cfg.Server.Port)
	srv := &http.Server{Addr: address, Handler: router}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info("Starting server", zap.String("address", address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return mcpServer.ListenAndServe(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		app.logger.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
