package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func TestAuthMiddleware(t *testing.T) {
	valid := signToken(t, jwt.MapClaims{"user_id": "u-1", "role": "manager", "exp": time.Now().Add(time.Hour).Unix()})
	expired := signToken(t, jwt.MapClaims{"user_id": "u-1", "exp": time.Now().Add(-time.Hour).Unix()})
	noUser := signToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"missing token", "", http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"no user id", "Bearer " + noUser, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", AuthMiddleware(testSecret), func(c *gin.Context) {
				assert.Equal(t, "u-1", c.GetString(ContextUserID))
				assert.Equal(t, "MANAGER", c.GetString(ContextRole))
				assert.Equal(t, "u-1", contextutil.GetUserID(c.Request.Context()))
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRateLimitByUser(t *testing.T) {
	r := gin.New()
	r.POST("/x", func(c *gin.Context) { c.Set(ContextUserID, "u-1") }, RateLimitByUser(rate.Every(time.Hour), 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitByIP_SeparatesClients(t *testing.T) {
	r := gin.New()
	r.GET("/healthz", RateLimitByIP(rate.Every(time.Hour), 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1234"))
}

func TestContextLogger_PropagatesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ContextLogger(zap.NewNop()))
	r.GET("/x", func(c *gin.Context) {
		assert.Equal(t, "rid-1", contextutil.GetRequestID(c.Request.Context()))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rid-1", w.Header().Get("X-Request-ID"))
}

func TestIdempotency(t *testing.T) {
	const ttl = 24 * time.Hour
	cacheKey := IdempotencyKey("/import", "u-1", "key-1")

	newRouter := func(calls *int) (*gin.Engine, redismock.ClientMock) {
		rdb, mock := redismock.NewClientMock()
		r := gin.New()
		r.POST("/import", func(c *gin.Context) { c.Set(ContextUserID, "u-1") }, Idempotency(rdb, ttl, zap.NewNop()), func(c *gin.Context) {
			*calls++
			c.String(http.StatusCreated, "done")
		})
		return r, mock
	}

	post := func(r *gin.Engine) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/import", nil)
		req.Header.Set(IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("first request runs handler and stores response", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(&calls)

		stored, err := json.Marshal(cachedResponse{
			Status:      http.StatusCreated,
			ContentType: "text/plain; charset=utf-8",
			Body:        []byte("done"),
		})
		require.NoError(t, err)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "1", idempotencyLockTTL).SetVal(true)
		mock.ExpectSet(cacheKey, stored, ttl).SetVal("OK")
		mock.ExpectDel(cacheKey + ":lock").SetVal(1)

		w := post(r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat request is replayed", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(&calls)

		stored, _ := json.Marshal(cachedResponse{Status: http.StatusCreated, ContentType: "text/plain", Body: []byte("done")})
		mock.ExpectGet(cacheKey).SetVal(string(stored))

		w := post(r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "done", w.Body.String())
		assert.Equal(t, "true", w.Header().Get(ReplayedHeader))
		assert.Zero(t, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent request is rejected", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(&calls)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "1", idempotencyLockTTL).SetVal(false)

		w := post(r)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Zero(t, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
