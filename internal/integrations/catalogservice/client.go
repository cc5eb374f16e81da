package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с CatalogService
// Ответы каталога кэшируются с небольшим TTL: карточки активностей и
// бизнесов меняются редко, а резолвер дергает их на каждый запрос.
// Бронирования и шаблоны доступности НЕ кэшируются никогда.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *gocache.Cache
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
// cacheTTL = 0 отключает кэширование
func NewClient(baseURL string, timeout time.Duration, cacheTTL time.Duration, log Logger) *Client {
	var c *gocache.Cache
	if cacheTTL > 0 {
		c = gocache.New(cacheTTL, 2*cacheTTL)
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache: c,
		log:   log,
	}
}

// GetActivity получает активность по ID
func (c *Client) GetActivity(ctx context.Context, activityID int64) (*Activity, error) {
	cacheKey := fmt.Sprintf("activity:%d", activityID)
	if c.cache != nil {
		if cached, found := c.cache.Get(cacheKey); found {
			return cached.(*Activity), nil
		}
	}

	url := fmt.Sprintf("%s/internal/activities/%d", c.baseURL, activityID)

	var activity Activity
	if err := c.getJSON(ctx, url, &activity, ErrActivityNotFound); err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.SetDefault(cacheKey, &activity)
	}

	return &activity, nil
}

// GetBusiness получает бизнес по ID
func (c *Client) GetBusiness(ctx context.Context, businessID int64) (*Business, error) {
	cacheKey := fmt.Sprintf("business:%d", businessID)
	if c.cache != nil {
		if cached, found := c.cache.Get(cacheKey); found {
			return cached.(*Business), nil
		}
	}

	url := fmt.Sprintf("%s/internal/businesses/%d", c.baseURL, businessID)

	var business Business
	if err := c.getJSON(ctx, url, &business, ErrBusinessNotFound); err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.SetDefault(cacheKey, &business)
	}

	return &business, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
// notFoundErr возвращается при статусе 404
func (c *Client) getJSON(ctx context.Context, url string, dest interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
