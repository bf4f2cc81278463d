package pdfsink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"driveflow-docs-go/internal/pkg/metrics"
)

// PageSize описывает размер страницы в пунктах (1/72 дюйма)
type PageSize struct {
	Width  float64
	Height float64
}

// A4Portrait соответствует холсту шаблонов
var A4Portrait = PageSize{Width: 595, Height: 842}

// Client выполняет конвертацию HTML в PDF через внешний рендерер
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient создает новый клиент рендерера
func NewClient(baseURL string) *Client {
	transport := &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
		MaxConnsPerHost:     100,
		ForceAttemptHTTP2:   true,
		WriteBufferSize:     64 * 1024,
		ReadBufferSize:      64 * 1024,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   30 * time.Second,
	}

	return &Client{
		baseURL: baseURL,
		client:  client,
	}
}

// ConvertHTMLToPDF отправляет HTML-разметку рендереру и возвращает PDF
func (c *Client) ConvertHTMLToPDF(ctx context.Context, html []byte, size PageSize) ([]byte, error) {
	start := time.Now()
	defer func() {
		metrics.RendererRequestDuration.WithLabelValues("convert").Observe(time.Since(start).Seconds())
	}()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	// Рендерер требует имя файла index.html для входной точки
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		metrics.RendererRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(html); err != nil {
		metrics.RendererRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to write html content: %w", err)
	}

	// Размер страницы передается в дюймах
	fields := map[string]string{
		"paperWidth":        inches(size.Width),
		"paperHeight":       inches(size.Height),
		"marginTop":         "0",
		"marginBottom":      "0",
		"marginLeft":        "0",
		"marginRight":       "0",
		"preferCssPageSize": "true",
		"printBackground":   "true",
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			metrics.RendererRequestsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}

	if err := writer.Close(); err != nil {
		metrics.RendererRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/forms/chromium/convert/html", body)
	if err != nil {
		metrics.RendererRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Connection", "keep-alive")

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RendererRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RendererRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("conversion failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	responseBuf := new(bytes.Buffer)
	if _, err := io.Copy(responseBuf, resp.Body); err != nil {
		metrics.RendererRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	metrics.RendererRequestsTotal.WithLabelValues("success").Inc()
	return responseBuf.Bytes(), nil
}

// HealthCheck выполняет проверку здоровья рендерера
func (c *Client) HealthCheck(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.RendererRequestDuration.WithLabelValues("health").Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RendererRequestsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RendererRequestsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("health check failed: status code %d", resp.StatusCode)
	}

	return nil
}

// inches переводит пункты в дюймы для параметров рендерера
func inches(points float64) string {
	return strconv.FormatFloat(points/72.0, 'f', 4, 64)
}
