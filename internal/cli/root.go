package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-ticker/internal/config"
	"github.com/BuzzLyutic/task-ticker/internal/repo"
	"github.com/BuzzLyutic/task-ticker/internal/service"
	"github.com/BuzzLyutic/task-ticker/internal/storage"
)

// app собирает зависимости одной команды.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	storage storage.Storage
	store   *service.TaskStore
}

func newRootCmd(version string) *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:           "taskticker",
		Short:         "Task Ticker - your friendly neighborhood task list",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.StorageDriver, "storage", cfg.StorageDriver, "storage backend: file, sqlite, postgres or memory")
	flags.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for file and sqlite storage")
	flags.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "postgres connection string")
	flags.StringVar(&cfg.StorageKey, "key", cfg.StorageKey, "storage key the task list is kept under")
	flags.BoolVar(&cfg.Dev, "dev", cfg.Dev, "human-readable debug logging")

	root.AddCommand(newServeCmd(&cfg))
	root.AddCommand(newListCmd(&cfg))
	root.AddCommand(newAddCmd(&cfg))
	root.AddCommand(newToggleCmd(&cfg))
	root.AddCommand(newRmCmd(&cfg))

	return root
}

// Execute runs the command line and reports the error on stderr.
func Execute(version string) error {
	if err := newRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// openApp wires storage, repository and store without hydrating.
func openApp(ctx context.Context, cfg config.Config) (*app, error) {
	logger, err := newLogger(cfg.Dev)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	s, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Sync()
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}
	logger.Debug("Storage opened", zap.String("driver", cfg.StorageDriver))

	return &app{
		cfg:     cfg,
		logger:  logger,
		storage: s,
		store:   service.NewTaskStore(repo.NewTaskRepo(s, cfg.StorageKey, logger), logger),
	}, nil
}

func (a *app) Close() {
	if err := a.storage.Close(); err != nil {
		a.logger.Warn("failed to close storage", zap.Error(err))
	}
	a.logger.Sync()
}
