package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prasetyowira/certqr/api"
	"github.com/prasetyowira/certqr/config"
	"github.com/prasetyowira/certqr/constant"
	"github.com/prasetyowira/certqr/domain/certificate"
	appLogger "github.com/prasetyowira/certqr/infrastructure/logger"
	"github.com/prasetyowira/certqr/infrastructure/qrcode"
	"github.com/spf13/cobra"
)

func (a *app) serveCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registry, rendered pages and QR codes over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("db") {
				dbPath = a.cfg.DatabaseURL
			}

			service, reg, err := a.newService(dbPath)
			if err != nil {
				return err
			}
			defer reg.close()

			return runServer(newServer(a.cfg, service))
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", `Registry database (default $DATABASE_URL, "" disables the registry)`)

	return cmd
}

// newServer builds the HTTP server for the API and the output directory preview
func newServer(cfg config.Config, service *certificate.Service) *http.Server {
	handler := api.NewHandler(service, qrcode.NewGenerator(cfg.QRModuleSize), cfg.BaseURL, cfg.OutputDir)
	router := api.NewRouter(handler, cfg.AuthUser, cfg.AuthPass, cfg.OutputDir)
	router.SetupRoutes()

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// runServer serves until SIGINT or SIGTERM, then shuts down gracefully
func runServer(server *http.Server) error {
	errCh := make(chan error, 1)

	go func() {
		appLogger.Info(constant.MsgServerStarting, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Data: map[string]interface{}{
				constant.DataPort: server.Addr,
			},
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error(constant.MsgServerFailedToStart, appLogger.LoggerInfo{
				ContextFunction: constant.CtxMain,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeAppServerStart,
					Message: err.Error(),
					Type:    constant.ErrTypeApp,
				},
				Data: map[string]interface{}{
					constant.DataPort: server.Addr,
				},
			})
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	appLogger.Info(constant.MsgServerShuttingDown, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error(constant.MsgServerShutdownError, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppServerShutdown,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
		})
		return err
	}

	appLogger.Info(constant.MsgServerStopped, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})
	return nil
}
