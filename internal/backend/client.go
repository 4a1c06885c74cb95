// Package backend is the REST client for the ordem-servico API. It owns all
// transport concerns: JSON encoding in the backend's wire shapes, timeouts,
// and mapping of transport and HTTP failures onto the typed error taxonomy.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tecelar/internal/config"
	"tecelar/internal/domain"
	"tecelar/internal/dto"
	apperrors "tecelar/internal/errors"
)

type Client struct {
	http      *http.Client
	baseURL   string
	maxUpload int64
	logger    *zap.Logger
}

func New(cfg config.BackendConfig, logger *zap.Logger) *Client {
	maxUpload := cfg.UploadMaxBytes
	if maxUpload <= 0 {
		maxUpload = 60 * 1024 * 1024
	}

	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		maxUpload: maxUpload,
		logger:    logger,
	}
}

func (c *Client) CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	var resp dto.OrdemServico
	if err := c.doJSON(ctx, "create order", http.MethodPost, "/api/ordens", dto.FromOrder(order), &resp); err != nil {
		return nil, err
	}
	created := resp.ToOrder()
	return &created, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var resp []dto.OrdemServico
	if err := c.doJSON(ctx, "list orders", http.MethodGet, "/api/ordens", nil, &resp); err != nil {
		return nil, err
	}
	return toOrders(resp), nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var resp dto.OrdemServico
	path := fmt.Sprintf("/api/ordens/%d", id)
	if err := c.doJSON(ctx, "get order", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	order := resp.ToOrder()
	return &order, nil
}

func (c *Client) UpdateOrder(ctx context.Context, id int64, order domain.Order) (*domain.Order, error) {
	var resp dto.OrdemServico
	path := fmt.Sprintf("/api/ordens/%d", id)
	if err := c.doJSON(ctx, "update order", http.MethodPut, path, dto.FromOrder(order), &resp); err != nil {
		return nil, err
	}
	updated := resp.ToOrder()
	return &updated, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/ordens/%d", id)
	return c.doJSON(ctx, "delete order", http.MethodDelete, path, nil, nil)
}

func (c *Client) SearchByClient(ctx context.Context, client string) ([]domain.Order, error) {
	var resp []dto.OrdemServico
	path := "/api/ordens/buscar?cliente=" + url.QueryEscape(client)
	if err := c.doJSON(ctx, "search orders", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return toOrders(resp), nil
}

// GeneratePDF renders a persisted order on the server and returns the raw
// PDF bytes.
func (c *Client) GeneratePDF(ctx context.Context, id int64) ([]byte, error) {
	path := fmt.Sprintf("/api/ordens/%d/pdf", id)
	return c.doBinary(ctx, "generate pdf", path, nil)
}

// GeneratePDFPreview renders an order that has not been saved.
func (c *Client) GeneratePDFPreview(ctx context.Context, order domain.Order) ([]byte, error) {
	return c.doBinary(ctx, "generate pdf preview", "/api/ordens/pdf/preview", dto.FromOrder(order))
}

func toOrders(resp []dto.OrdemServico) []domain.Order {
	orders := make([]domain.Order, 0, len(resp))
	for _, o := range resp {
		orders = append(orders, o.ToOrder())
	}
	return orders
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, body, out any) error {
	respBody, err := c.do(ctx, op, method, path, body, "application/json")
	if err != nil {
		return err
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return apperrors.NewInternalError(op+": decoding response", err)
	}
	return nil
}

func (c *Client) doBinary(ctx context.Context, op, path string, body any) ([]byte, error) {
	return c.do(ctx, op, http.MethodPost, path, body, "application/pdf")
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, accept string) ([]byte, error) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID), zap.String("method", method), zap.String("path", path))

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.NewInternalError(op+": encoding request", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, apperrors.NewInternalError(op+": building request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", accept)

	logger.Debug("backend request")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("backend unreachable", zap.Error(err))
		return nil, apperrors.NewNetworkError(op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("reading backend response", zap.Error(err))
		return nil, apperrors.NewNetworkError(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("backend error response", zap.Int("status", resp.StatusCode), zap.ByteString("body", respBody))

		if resp.StatusCode == http.StatusNotFound {
			message := op + ": not found"
			var erro dto.ErroResponse
			if json.Unmarshal(respBody, &erro) == nil && erro.Erro != "" {
				message = erro.Erro
			}
			return nil, apperrors.NewNotFoundError(message)
		}

		return nil, apperrors.NewServerError(op, resp.StatusCode, string(respBody))
	}

	logger.Debug("backend response", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(respBody)))
	return respBody, nil
}
