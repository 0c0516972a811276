package app

import (
	"database/sql"
	"net/http"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/account"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/config"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/contract"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/contractimport"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/contractparse"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/customer"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/docextract"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/geocode"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/messaging/kafka"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/middleware"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/notification"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/rbac"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/counter"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/dbutil"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type modules struct {
	gormDB *gorm.DB
	sqlDB  *sql.DB
	rdb    *redis.Client
	writer *kafkago.Writer
	store  *storage.MinioStore
}

func registerModules(router *gin.Engine, cfg *config.Config, m modules) error {
	logger := zap.L()
	backoff := dbutil.Backoff{
		Initial:     cfg.Import.RetryInitialBackoff,
		Multiplier:  2,
		MaxAttempts: cfg.Import.RetryAttempts,
	}

	// --- Repositories ---
	accountRepo := account.NewRepository(m.gormDB)
	contractRepo := contract.NewRepository(m.gormDB)
	counterRepo := counter.NewRepository(m.gormDB)
	customerRepo := customer.NewRepository(m.gormDB)
	outboxRepo := kafka.NewOutboxRepository(m.sqlDB)

	// --- RBAC Core ---
	policies, inheritance := rbac.DefaultPolicies()
	rbacService, err := rbac.NewService(policies, inheritance, logger)
	if err != nil {
		return err
	}

	// --- Services ---
	resolver := customer.NewResolver(customerRepo, counterRepo, logger).WithBackoff(backoff)
	contractService := contract.NewService(m.sqlDB, contractRepo, resolver, outboxRepo, backoff, logger)
	provisioner := account.NewProvisioner(accountRepo,
		account.WithBackoff(backoff),
		account.WithLogger(logger),
	)
	geocoder := geocode.NewClient(geocode.Config{
		BaseURL:   cfg.Geocoder.BaseURL,
		UserAgent: cfg.Geocoder.UserAgent,
		Timeout:   cfg.Geocoder.Timeout,
		CacheTTL:  cfg.Geocoder.CacheTTL,
	}, m.rdb, logger)
	parser := contractparse.NewParser(contractparse.Options{
		MaxSectionSpan: cfg.Import.MaxSectionSpan,
		AddressWindow:  cfg.Import.AddressWindow,
		PhoneWindow:    cfg.Import.PhoneWindow,
		EmailWindow:    cfg.Import.EmailWindow,
		LocationWindow: cfg.Import.LocationWindow,
	}, logger)

	opts := []contractimport.Option{
		contractimport.WithGeocoder(geocoder),
		contractimport.WithAccountProvisioner(provisioner),
		contractimport.WithDeleteSource(cfg.Import.DeleteSourceAfterImport),
		contractimport.WithLogger(logger),
	}
	if m.store != nil {
		opts = append(opts, contractimport.WithObjectStore(m.store))
	}
	if m.writer != nil {
		notifier := notification.NewKafkaNotifier(m.writer, cfg.Kafka.LoginInfoTopic, cfg.Kafka.LoginURL, logger)
		opts = append(opts, contractimport.WithNotifier(notifier))
	}
	importService := contractimport.NewService(docextract.NewExtractor(logger), parser, contractService, opts...)

	// --- Handlers ---
	importHandler := contractimport.NewHandler(importService, cfg.Import.MaxUploadBytes, logger)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	router.GET("/healthz", middleware.RateLimitByIP(5, 10), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		contractimport.RegisterRoutes(api, importHandler, rbacService, cfg.Auth.JWTSecret, m.rdb, logger)
	}

	return nil
}
