package rbac

import (
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/middleware"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/apperror"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize lets the request through when the caller's role, set by
// middleware.AuthMiddleware, may perform action on resource.
func Authorize(service Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := service.Enforce(EnforceRequest{
			Role:     c.GetString(middleware.ContextRole),
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			response.Error(c, apperror.ErrInternal.HTTPStatus, apperror.ErrInternal.Code, apperror.ErrInternal.Message, nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, apperror.ErrForbidden.HTTPStatus, apperror.ErrForbidden.Code, apperror.ErrForbidden.Message, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
