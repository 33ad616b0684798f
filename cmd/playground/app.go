package main

import (
	"context"
	"io"
	"log/slog"

	"mongoplay/internal/playground/backup"
	"mongoplay/internal/playground/config"
	"mongoplay/internal/playground/database"
	"mongoplay/internal/playground/repository"
	"mongoplay/internal/playground/service"

	"go.mongodb.org/mongo-driver/mongo"
)

// app holds the connected layers shared by the database commands.
type app struct {
	client  *mongo.Client
	db      *mongo.Database
	users   *repository.MongoUserRepository
	admin   *repository.MongoAdminRepository
	backups *backup.Service
}

func connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	client, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.DBName)
	logger.Debug("connected to mongodb", "db", cfg.DBName)
	return &app{
		client:  client,
		db:      db,
		users:   repository.NewMongoUserRepository(db, cfg.UsersCollection, cfg.SessionsCollection, cfg.SessionTTL),
		admin:   repository.NewMongoAdminRepository(db),
		backups: backup.NewService(db, logger),
	}, nil
}

func (a *app) close(logger *slog.Logger) {
	if err := a.client.Disconnect(context.Background()); err != nil {
		logger.Error("Failed to disconnect DB", "error", err)
	}
}

func runnerOptions(cfg *config.Config) service.Options {
	return service.Options{
		AllowDestructive:   cfg.AllowDestructive,
		Cluster:            cfg.ClusterMode,
		WorkDir:            cfg.WorkDir,
		ProfileSlowMS:      cfg.ProfileSlowMS,
		SessionTTL:         cfg.SessionTTL,
		UsersCollection:    cfg.UsersCollection,
		SessionsCollection: cfg.SessionsCollection,
	}
}

func (a *app) runner(opts service.Options, logger *slog.Logger, out io.Writer) *service.Runner {
	return service.NewRunner(a.users, a.users, a.admin, a.backups, opts, logger, out)
}
