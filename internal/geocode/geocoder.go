package geocode

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/contractimport"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var _ contractimport.Geocoder = (*Client)(nil)

const cacheKeyPrefix = "geocode:"

type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	CacheTTL  time.Duration
}

// Client resolves addresses through a Nominatim-compatible search API.
// Results, including misses, are cached in Redis when rdb is set.
type Client struct {
	cfg    Config
	http   *http.Client
	rdb    redis.Cmdable
	sf     *singleflight.Group
	logger *zap.Logger
}

type cachedPoint struct {
	Found bool    `json:"found"`
	Lat   float64 `json:"lat,omitempty"`
	Lng   float64 `json:"lng,omitempty"`
}

type searchHit struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func NewClient(cfg Config, rdb redis.Cmdable, logger ...*zap.Logger) *Client {
	l := zap.L().Named("geocode.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("geocode.client")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func CacheKey(address string) string {
	sum := sha1.Sum([]byte(normalize(address)))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func normalize(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}

func (c *Client) Geocode(ctx context.Context, address string) (*contractimport.Coordinates, error) {
	if strings.TrimSpace(address) == "" {
		return nil, nil
	}
	key := CacheKey(address)
	log := contextutil.GetLogger(ctx, c.logger)

	if c.rdb != nil {
		if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
			var p cachedPoint
			if err := json.Unmarshal(raw, &p); err == nil {
				log.Debug("geocode cache hit", zap.String("key", key))
				return p.coordinates(), nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Warn("geocode cache read failed", zap.Error(err))
		}
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		p, err := c.search(ctx, address)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(cachedPoint).coordinates(), nil
}

func (c *Client) search(ctx context.Context, address string) (cachedPoint, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")
	q.Set("countrycodes", "vn")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/search?"+q.Encode(), nil)
	if err != nil {
		return cachedPoint{}, err
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return cachedPoint{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return cachedPoint{}, fmt.Errorf("geocode request: unexpected status %d", resp.StatusCode)
	}

	var hits []searchHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return cachedPoint{}, fmt.Errorf("geocode decode: %w", err)
	}
	if len(hits) == 0 {
		return cachedPoint{}, nil
	}

	lat, err := strconv.ParseFloat(hits[0].Lat, 64)
	if err != nil {
		return cachedPoint{}, fmt.Errorf("geocode latitude %q: %w", hits[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(hits[0].Lon, 64)
	if err != nil {
		return cachedPoint{}, fmt.Errorf("geocode longitude %q: %w", hits[0].Lon, err)
	}
	return cachedPoint{Found: true, Lat: lat, Lng: lng}, nil
}

func (c *Client) store(ctx context.Context, key string, p cachedPoint) {
	if c.rdb == nil {
		return
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.cfg.CacheTTL).Err(); err != nil {
		c.logger.Warn("geocode cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (p cachedPoint) coordinates() *contractimport.Coordinates {
	if !p.Found {
		return nil
	}
	return &contractimport.Coordinates{Latitude: p.Lat, Longitude: p.Lng}
}
