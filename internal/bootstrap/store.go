// Package bootstrap builds the shared runtime dependencies used by the
// server and importer binaries.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/salesrep/internal/config"
	"github.com/mamadbah2/salesrep/internal/repository"
	"github.com/mamadbah2/salesrep/internal/repository/memory"
	"github.com/mamadbah2/salesrep/internal/repository/mongodb"
)

// OpenStore returns the store selected by STORE_DRIVER.
func OpenStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (repository.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		logger.Warn("using in-memory store, data is lost on exit")
		return memory.NewRepository(), nil
	case config.StoreMongo:
		repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, logger)
		if err != nil {
			return nil, fmt.Errorf("init mongodb repository: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
