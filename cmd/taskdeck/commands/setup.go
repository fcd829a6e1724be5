package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/errclass"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/session"
	"github.com/taskdeck/taskdeck/internal/storage"
	"go.uber.org/zap"
)

// newSession wires a Session from configuration for one CLI invocation
func newSession(cmd *cobra.Command) (*session.Session, *zap.Logger, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewDevelopmentLogger(cfg.DebugMode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	kv, err := openStorage(cfg)
	if err != nil {
		return nil, nil, err
	}

	client := api.NewClient(cfg.BackendURL, cfg.APIToken, cfg.HTTPTimeout, log)
	sess := session.New(client, kv, log, session.Options{
		FilterKey:      cfg.FilterKey,
		RollbackDelay:  cfg.RollbackDelay,
		HealthInterval: cfg.HealthInterval,
		RetryPolicy: errclass.Policy{
			MaxAttempts:     uint(cfg.RetryAttempts),
			InitialInterval: cfg.RetryInterval,
		},
	})
	return sess, log, nil
}

func openStorage(cfg *config.Config) (storage.KV, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		return storage.NewMemory(), nil
	case config.StorageFile:
		return storage.NewFile(cfg.StoragePath)
	case config.StorageSQLite:
		return storage.OpenSQLite(cfg.StoragePath)
	case config.StorageRedis:
		return storage.NewRedis(cfg.RedisURL, "taskdeck")
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}

func formatTask(entry models.OptimisticTask) string {
	mark := " "
	if entry.Completed {
		mark = "x"
	}
	suffix := ""
	if entry.Pending {
		suffix = " (pending)"
	}
	line := fmt.Sprintf("[%s] %s  %s (%s)", mark, entry.ID, entry.Title, entry.Priority)
	if len(entry.Tags) > 0 {
		line += "  #" + strings.Join(entry.Tags, " #")
	}
	return line + suffix
}
