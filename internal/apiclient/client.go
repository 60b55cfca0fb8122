// Пакет apiclient - HTTP-клиент удалённого сервиса заказов.
// Каждый ответ - конверт {statusCode, message, data}; любой statusCode != 200
// и любая транспортная ошибка возвращаются как domain.ErrOperationFailed.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/Gunvolt24/foodorder/internal/ports"
	"github.com/Gunvolt24/foodorder/pkg/ctxmeta"
	"github.com/Gunvolt24/foodorder/pkg/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Проверка, что Client удовлетворяет интерфейсу APIClient.
var _ ports.APIClient = (*Client)(nil)

// maxBody - ограничение на размер ответа.
const maxBody = 4 << 20

// TokenSource - откуда брать токен для Authorization.
type TokenSource func() string

// Config - параметры клиента.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client - клиент поверх net/http с OTEL-транспортом.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	log     ports.Logger
}

// New - конструктор. token может быть nil (запросы без авторизации).
func New(cfg Config, token TokenSource, log ports.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		token: token,
		log:   log,
	}
}

func (c *Client) Get(ctx context.Context, path string) (domain.Envelope, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (domain.Envelope, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (domain.Envelope, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (domain.Envelope, error) {
	start := time.Now()
	defer func() {
		metrics.APIRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}()

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return domain.Envelope{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.APIRequests.WithLabelValues(method, "transport").Inc()
		c.log.Warnf(ctx, "api %s %s transport error: %v", method, path, err)
		return domain.Envelope{}, fmt.Errorf("%w: %s %s: %v", domain.ErrOperationFailed, method, path, err)
	}
	defer resp.Body.Close()

	var env domain.Envelope
	if decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&env); decodeErr != nil {
		metrics.APIRequests.WithLabelValues(method, "transport").Inc()
		c.log.Warnf(ctx, "api %s %s bad envelope http_status=%d err=%v", method, path, resp.StatusCode, decodeErr)
		return domain.Envelope{}, fmt.Errorf("%w: %s %s: http %d", domain.ErrOperationFailed, method, path, resp.StatusCode)
	}

	if !env.OK() {
		metrics.APIRequests.WithLabelValues(method, "failed").Inc()
		c.log.Warnf(ctx, "api %s %s status=%d message=%q", method, path, env.StatusCode, env.Message)
		return env, &domain.APIError{Method: method, Path: path, StatusCode: env.StatusCode, Message: env.Message}
	}

	metrics.APIRequests.WithLabelValues(method, "ok").Inc()
	return env, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		req.Header.Set("X-Request-ID", rid)
	}
	return req, nil
}
