package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с CatalogService (суда и впечатления)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// ListAssets получает активные суда, попадающие в scope
func (c *Client) ListAssets(ctx context.Context, scope domain.AssetScope) ([]Asset, error) {
	if scope.AssetID != nil {
		asset, err := c.GetAsset(ctx, *scope.AssetID)
		if err == ErrAssetNotFound {
			return []Asset{}, nil
		}
		if err != nil {
			return nil, err
		}
		return []Asset{*asset}, nil
	}

	query := url.Values{}
	query.Set("active", "true")
	if scope.ExperienceID != nil {
		query.Set("experienceId", strconv.FormatInt(*scope.ExperienceID, 10))
	}

	var list AssetListResponse
	if err := c.get(ctx, "/internal/assets?"+query.Encode(), &list); err != nil {
		return nil, err
	}
	return list.Assets, nil
}

// ListAssetIDs получает id судов, попадающих в scope
func (c *Client) ListAssetIDs(ctx context.Context, scope domain.AssetScope) ([]int64, error) {
	assets, err := c.ListAssets(ctx, scope)
	if err != nil {
		c.log.Error("ListAssetIDs: catalog request failed: %v", err)
		return nil, err
	}

	ids := make([]int64, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.ID)
	}
	return ids, nil
}

// GetAsset получает судно по ID
func (c *Client) GetAsset(ctx context.Context, assetID int64) (*Asset, error) {
	var asset Asset
	if err := c.get(ctx, fmt.Sprintf("/internal/assets/%d", assetID), &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrAssetNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
