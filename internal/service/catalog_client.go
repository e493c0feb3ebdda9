package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"sourcexpet_admin_v1/internal/api/dto"
	"sourcexpet_admin_v1/internal/model"
)

// ==================== 配置 ====================

// CatalogClientConfig 目录 API 客户端配置
type CatalogClientConfig struct {
	BaseURL string // /api 根地址
	Timeout time.Duration
	Debug   bool
}

// ==================== 客户端 ====================

// CatalogClient 商品目录 REST 客户端
// 提交管线只认状态码，这里不做任何重试
type CatalogClient struct {
	client  *resty.Client
	baseURL string
}

// NewCatalogClient 创建目录客户端
func NewCatalogClient(cfg *CatalogClientConfig) *CatalogClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "SourceXpet-Admin/1.0")

	if cfg.Debug {
		client.SetDebug(true)
	}

	return &CatalogClient{
		client:  client,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}
}

func (c *CatalogClient) url(path string) string {
	return c.baseURL + path
}

// ==================== 接口方法 ====================

// List 拉取商品列表
func (c *CatalogClient) List(ctx context.Context) ([]dto.ProductRecord, error) {
	var records []dto.ProductRecord

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&records).
		Get(c.url("/product-sourcing"))

	if err != nil {
		return nil, &RequestError{Cause: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &RequestError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	return records, nil
}

// Get 按 id 拉取单条商品
func (c *CatalogClient) Get(ctx context.Context, id int64) (*dto.ProductRecord, error) {
	var record dto.ProductRecord

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&record).
		Get(c.url(fmt.Sprintf("/product-sourcing/%d", id)))

	if err != nil {
		return nil, &RequestError{Cause: err}
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &RequestError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	return &record, nil
}

// Create 创建商品，服务端约定返回 201
func (c *CatalogClient) Create(ctx context.Context, draft model.ProductDraft) (*dto.ProductRecord, error) {
	var record dto.ProductRecord

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(draft).
		SetResult(&record).
		Post(c.url("/product-sourcing"))

	if err != nil {
		return nil, &RequestError{Cause: err}
	}
	if resp.StatusCode() != http.StatusCreated {
		return nil, &RequestError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	return &record, nil
}

// Update 按 id 整体更新商品，服务端约定返回 200
func (c *CatalogClient) Update(ctx context.Context, id int64, draft model.ProductDraft) (*dto.ProductRecord, error) {
	var record dto.ProductRecord

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(draft).
		SetResult(&record).
		Put(c.url(fmt.Sprintf("/product-sourcing/%d", id)))

	if err != nil {
		return nil, &RequestError{Cause: err}
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &RequestError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	return &record, nil
}

// Delete 按 id 删除商品
func (c *CatalogClient) Delete(ctx context.Context, id int64) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Delete(c.url(fmt.Sprintf("/product-sourcing/%d", id)))

	if err != nil {
		return &RequestError{Cause: err}
	}
	if resp.StatusCode() == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusNoContent {
		return &RequestError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	return nil
}
