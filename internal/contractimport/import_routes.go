package contractimport

import (
	"time"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/middleware"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyTTL = 24 * time.Hour

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	jwtSecret string,
	rdb redis.Cmdable,
	logger *zap.Logger,
) {
	contracts := r.Group("/contracts")
	contracts.Use(middleware.AuthMiddleware(jwtSecret))
	contracts.Use(middleware.ContextLogger(logger))
	{
		contracts.POST("/import",
			middleware.RateLimitByUser(0.2, 3),
			rbac.Authorize(rbacService, rbac.ResourceContract, rbac.ActionImport),
			middleware.Idempotency(rdb, idempotencyTTL, logger),
			handler.Import,
		)
	}
}
