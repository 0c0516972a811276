package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const address = "12 Lê Lợi, Quận 1, TP. Hồ Chí Minh"

func newServer(t *testing.T, body string, status int, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, address, r.URL.Query().Get("q"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeocode_CacheMissCallsServiceAndStores(t *testing.T) {
	var hits int32
	srv := newServer(t, `[{"lat":"10.7731","lon":"106.7030"}]`, http.StatusOK, &hits)
	rdb, mock := redismock.NewClientMock()

	key := CacheKey(address)
	stored, err := json.Marshal(cachedPoint{Found: true, Lat: 10.7731, Lng: 106.7030})
	require.NoError(t, err)

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, stored, time.Hour).SetVal("OK")

	c := NewClient(Config{BaseURL: srv.URL, UserAgent: "test-agent", CacheTTL: time.Hour}, rdb, zap.NewNop())
	coords, err := c.Geocode(context.Background(), address)

	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.InDelta(t, 10.7731, coords.Latitude, 1e-9)
	assert.InDelta(t, 106.7030, coords.Longitude, 1e-9)
	assert.EqualValues(t, 1, hits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGeocode_CacheHitSkipsService(t *testing.T) {
	var hits int32
	srv := newServer(t, `[]`, http.StatusOK, &hits)
	rdb, mock := redismock.NewClientMock()

	cached, _ := json.Marshal(cachedPoint{Found: true, Lat: 1, Lng: 2})
	mock.ExpectGet(CacheKey(address)).SetVal(string(cached))

	c := NewClient(Config{BaseURL: srv.URL, UserAgent: "test-agent"}, rdb, zap.NewNop())
	coords, err := c.Geocode(context.Background(), address)

	require.NoError(t, err)
	assert.Equal(t, 2.0, coords.Longitude)
	assert.Zero(t, hits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGeocode_NoResultWithoutCache(t *testing.T) {
	var hits int32
	srv := newServer(t, `[]`, http.StatusOK, &hits)

	coords, err := NewClient(Config{BaseURL: srv.URL, UserAgent: "test-agent"}, nil, zap.NewNop()).
		Geocode(context.Background(), address)

	require.NoError(t, err)
	assert.Nil(t, coords)
}

func TestGeocode_ServiceError(t *testing.T) {
	var hits int32
	srv := newServer(t, `oops`, http.StatusBadGateway, &hits)

	_, err := NewClient(Config{BaseURL: srv.URL, UserAgent: "test-agent"}, nil, zap.NewNop()).
		Geocode(context.Background(), address)

	assert.ErrorContains(t, err, "unexpected status 502")
}

func TestCacheKey_NormalisesWhitespaceAndCase(t *testing.T) {
	assert.Equal(t, CacheKey("12  Lê Lợi\tQuận 1"), CacheKey("12 lê lợi quận 1"))
}
