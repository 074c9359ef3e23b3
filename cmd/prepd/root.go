package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"prepd/internal/config"
	"prepd/internal/devmem"
	"prepd/internal/httpapi"
	"prepd/internal/registry"
	"prepd/pkg/types"
)

const mb = 1 << 20

// service adapts the manager and registry to the HTTP layer.
type service struct {
	mgr    *devmem.Manager
	models []types.Model
}

func (s *service) ListModels() []types.Model {
	return append([]types.Model(nil), s.models...)
}

func (s *service) Status() types.StatusResponse { return s.mgr.Status() }
func (s *service) Ready() bool                  { return s.mgr != nil }

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "prepd",
		Short:         "Device-memory manager daemon for sampling preparation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var (
		cfgPath   string
		addr      string
		modelsDir string
		budgetMB  int
		marginMB  int
		logLevel  string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve /models, /status, /healthz, and /metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Config{}
			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			// Flags override file values when set.
			if addr != "" {
				cfg.Addr = addr
			}
			if modelsDir != "" {
				cfg.ModelsDir = modelsDir
			}
			if budgetMB > 0 {
				cfg.BudgetMB = budgetMB
			}
			if marginMB > 0 {
				cfg.MarginMB = marginMB
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if cfg.Addr == "" {
				cfg.Addr = ":8080"
			}

			logger := newLogger(cfg.LogLevel)
			httpapi.SetLogger(logger)

			var models []types.Model
			if cfg.ModelsDir != "" {
				resources, err := registry.LoadDir(cfg.ModelsDir)
				if err != nil {
					return err
				}
				models = registry.Models(resources)
				logger.Info().Int("models", len(models)).Str("dir", cfg.ModelsDir).Msg("registry loaded")
			}

			mgr := devmem.New(devmem.Config{
				BudgetBytes: uint64(cfg.BudgetMB) * mb,
				MarginBytes: uint64(cfg.MarginMB) * mb,
				Logger:      logger,
			})

			mux := httpapi.NewMux(&service{mgr: mgr, models: models}, httpapi.Options{
				CORSOrigins: cfg.CORSOrigins,
			})
			srv := &http.Server{Addr: cfg.Addr, Handler: mux}

			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", cfg.Addr).Msg("prepd listening")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return err
			case <-stop:
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn().Err(err).Msg("graceful shutdown")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "Path to config file (.yaml/.json/.toml)")
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address, e.g. :8080")
	cmd.Flags().StringVar(&modelsDir, "models-dir", "", "Directory to scan for model weight files")
	cmd.Flags().IntVar(&budgetMB, "budget-mb", 0, "Device memory budget in MB (0=unlimited)")
	cmd.Flags().IntVar(&marginMB, "margin-mb", 0, "Reserved memory margin in MB")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug|info|warn|error")
	return cmd
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
