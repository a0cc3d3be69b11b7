package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-seating-api/internal/models"
	"github.com/noah-isme/classroom-seating-api/pkg/cache"
	"github.com/noah-isme/classroom-seating-api/pkg/config"
	"github.com/noah-isme/classroom-seating-api/pkg/database"
	"github.com/noah-isme/classroom-seating-api/pkg/storage"
)

// ClassroomStore is the single-key contract every backend implements.
type ClassroomStore interface {
	Load(ctx context.Context) ([]models.SavedClassroom, error)
	Replace(ctx context.Context, classrooms []models.SavedClassroom) error
}

// OpenedStore bundles a backend with its connection lifecycle.
type OpenedStore struct {
	Backend string
	Store   ClassroomStore
	// Ping is nil for backends without a connection.
	Ping    func(ctx context.Context) error
	Close   func() error
}

// OpenClassroomStore connects the backend selected by cfg.Store.Backend.
func OpenClassroomStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*OpenedStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	noClose := func() error { return nil }

	switch cfg.Store.Backend {
	case config.StoreBackendRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return &OpenedStore{
			Backend: cfg.Store.Backend,
			Store:   NewRedisClassroomRepository(client, cfg.Store.Key, logger),
			Ping:    func(ctx context.Context) error { return client.Ping(ctx).Err() },
			Close:   client.Close,
		}, nil
	case config.StoreBackendPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		repo := NewPostgresClassroomRepository(db, cfg.Store.Key)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("prepare app_state table: %w", err)
		}
		return &OpenedStore{
			Backend: cfg.Store.Backend,
			Store:   repo,
			Ping:    db.PingContext,
			Close:   db.Close,
		}, nil
	default:
		local, err := storage.NewLocalStorage(cfg.Store.StorageDir)
		if err != nil {
			return nil, fmt.Errorf("prepare storage dir: %w", err)
		}
		repo := NewFileClassroomRepository(local, cfg.Store.Key)
		logger.Info("classroom store on disk", zap.String("path", local.Path(repo.filename)))
		return &OpenedStore{
			Backend: config.StoreBackendFile,
			Store:   repo,
			Close:   noClose,
		}, nil
	}
}
