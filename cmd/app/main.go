package main

import (
	"fmt"
	"os"

	"github.com/prasetyowira/certqr/config"
	"github.com/prasetyowira/certqr/constant"
	"github.com/prasetyowira/certqr/domain/certificate"
	"github.com/prasetyowira/certqr/infrastructure/cache"
	"github.com/prasetyowira/certqr/infrastructure/db"
	appLogger "github.com/prasetyowira/certqr/infrastructure/logger"
	"github.com/prasetyowira/certqr/infrastructure/qrcode"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "certqr"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds what every command shares once the root command has run
type app struct {
	envFile  string
	logLevel string
	cfg      config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Generate verifiable training certificates with QR codes",
		Long: `certqr renders a certificate verification page and a QR code that points at
the page's public URL. Publish the output directory on any static host
(GitHub Pages works) and share the PNG; scanning it opens the certificate.

Configuration comes from the environment (and .env): BASE_URL, OUTPUT_DIR,
DATABASE_URL, PORT, AUTH_USER, AUTH_PASS, CACHE_SIZE, LOG_LEVEL, QR_MODULE_SIZE.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			appLogger.Close()
		},
	}

	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Env file to load (default .env)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		a.generateCmd(),
		a.batchCmd(),
		a.listCmd(),
		a.serveCmd(),
		versionCmd(),
	)

	return cmd
}

// setup loads and validates the configuration and starts the logger
func (a *app) setup(cmd *cobra.Command) error {
	if a.envFile != "" {
		a.cfg = config.LoadConfig(a.envFile)
	} else {
		a.cfg = config.LoadConfig()
	}
	if a.logLevel != "" {
		a.cfg.LogLevel = a.logLevel
	}

	appLogger.Initialize(a.cfg.LogLevel)

	if err := a.cfg.Validate(); err != nil {
		appLogger.Error(constant.MsgInvalidConfig, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppConfig,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
		})
		return err
	}

	appLogger.Debug(constant.MsgApplicationStarting, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
		Data: map[string]interface{}{
			constant.DataCommand:     cmd.Name(),
			constant.DataOutputDir:   a.cfg.OutputDir,
			constant.DataDBPath:      a.cfg.DatabaseURL,
			constant.DataEnvironment: a.cfg.LogLevel,
		},
	})
	return nil
}

// registry wraps the optional SQLite repository so callers can always defer close
type registry struct {
	repo *db.SQLiteRepository
}

func (r registry) close() {
	if r.repo != nil {
		_ = r.repo.Close()
	}
}

// newService wires the certificate service. An empty dbPath runs without a
// registry: certificates are still written but nothing is recorded.
func (a *app) newService(dbPath string) (*certificate.Service, registry, error) {
	codes := qrcode.NewGenerator(a.cfg.QRModuleSize)
	pages := cache.NewNamespaceLRU[[]byte](a.cfg.CacheSize)

	if dbPath == "" {
		return certificate.NewService(codes, nil, pages), registry{}, nil
	}

	repo, err := db.NewSQLiteRepository(dbPath)
	if err != nil {
		appLogger.Error(constant.MsgFailedToInitDB, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppDBInit,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
			Data: map[string]interface{}{
				constant.DataDBPath: dbPath,
			},
		})
		return nil, registry{}, fmt.Errorf("open registry %s: %w", dbPath, err)
	}

	return certificate.NewService(codes, repo, pages), registry{repo: repo}, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Printing the version needs no configuration
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	}
}
