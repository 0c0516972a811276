package app

import (
	"context"
	"errors"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/config"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/connection"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/storage"

	"github.com/gin-gonic/gin"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and mounts every route on router. The
// returned cleanup releases the connections.
func BuildApp(router *gin.Engine, cfg *config.Config) (func(), error) {
	log := zap.L().Named("app")
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("close resource failed", zap.Error(err))
			}
		}
	}

	gormDB, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	closers = append(closers, sqlDB.Close)

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries)
	if err != nil {
		cleanup()
		return nil, err
	}
	closers = append(closers, rdb.Close)

	var writer *kafkago.Writer
	if cfg.Kafka.Broker != "" {
		writer, err = connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Database.MaxRetries)
		if err != nil {
			cleanup()
			return nil, err
		}
		closers = append(closers, writer.Close)
	} else {
		log.Warn("kafka broker not configured, login details will not be sent")
	}

	var store *storage.MinioStore
	if cfg.Minio.Endpoint != "" {
		client, err := connection.ConnectMinio(context.Background(), connection.MinioConfig{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			UseSSL:    cfg.Minio.UseSSL,
		}, cfg.Minio.Bucket)
		if err != nil {
			cleanup()
			return nil, err
		}
		store = storage.NewMinioStore(client, cfg.Minio.Bucket, cfg.Import.MaxUploadBytes)
	} else {
		log.Warn("object storage not configured, only direct uploads are accepted")
	}

	if cfg.Auth.JWTSecret == "" {
		cleanup()
		return nil, errors.New("JWT_SECRET is required")
	}

	if err := registerModules(router, cfg, modules{
		gormDB: gormDB,
		sqlDB:  sqlDB,
		rdb:    rdb,
		writer: writer,
		store:  store,
	}); err != nil {
		cleanup()
		return nil, err
	}

	log.Info("application built")
	return cleanup, nil
}
