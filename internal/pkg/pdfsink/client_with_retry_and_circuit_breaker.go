package pdfsink

import (
	"context"
	"time"

	"driveflow-docs-go/internal/pkg/circuitbreaker"
	"driveflow-docs-go/internal/pkg/logger"
	"driveflow-docs-go/internal/pkg/retry"
)

// ClientWithRetryAndCircuitBreaker комбинирует retry и circuit breaker механизмы
type ClientWithRetryAndCircuitBreaker struct {
	client  *Client
	cb      *circuitbreaker.CircuitBreaker
	retrier *retry.Retrier
}

// NewClientWithRetryAndCircuitBreaker создает нового клиента с retry и circuit breaker механизмами
func NewClientWithRetryAndCircuitBreaker(baseURL string) *ClientWithRetryAndCircuitBreaker {
	// Инициализируем логгер, если он еще не инициализирован
	if logger.Log == nil {
		if err := logger.Init("info"); err != nil {
			panic(err)
		}
	}

	client := NewClient(baseURL)

	cb := circuitbreaker.NewCircuitBreaker(circuitbreaker.Config{
		Name:             "renderer",
		FailureThreshold: getEnvIntWithDefault("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 10),
		ResetTimeout:     getEnvDurationWithDefault("CIRCUIT_BREAKER_RESET_TIMEOUT", 5*time.Second),
		HalfOpenMaxCalls: getEnvIntWithDefault("CIRCUIT_BREAKER_HALF_OPEN_MAX_CALLS", 5),
		SuccessThreshold: getEnvIntWithDefault("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 3),
	})

	retrier := retry.New(
		"renderer",
		logger.Log,
		retry.WithMaxAttempts(getEnvIntWithDefault("RENDERER_RETRY_MAX_ATTEMPTS", 5)),
		retry.WithInitialDelay(getEnvDurationWithDefault("RENDERER_RETRY_INITIAL_DELAY", 50*time.Millisecond)),
		retry.WithMaxDelay(getEnvDurationWithDefault("RENDERER_RETRY_MAX_DELAY", 1*time.Second)),
		retry.WithBackoffFactor(float64(getEnvIntWithDefault("RENDERER_RETRY_BACKOFF_FACTOR", 2))),
	)

	return &ClientWithRetryAndCircuitBreaker{
		client:  client,
		cb:      cb,
		retrier: retrier,
	}
}

// ConvertHTMLToPDF конвертирует HTML в PDF с использованием retry и circuit breaker механизмов
func (c *ClientWithRetryAndCircuitBreaker) ConvertHTMLToPDF(ctx context.Context, html []byte, size PageSize) ([]byte, error) {
	var result []byte
	err := c.retrier.Do(ctx, func(ctx context.Context) error {
		return c.cb.Execute(ctx, func() error {
			var err error
			result, err = c.client.ConvertHTMLToPDF(ctx, html, size)
			return err
		})
	})
	return result, err
}

// HealthCheck выполняет проверку здоровья рендерера
func (c *ClientWithRetryAndCircuitBreaker) HealthCheck(ctx context.Context) error {
	return c.client.HealthCheck(ctx)
}

// State возвращает текущее состояние Circuit Breaker
func (c *ClientWithRetryAndCircuitBreaker) State() circuitbreaker.State {
	return c.cb.State()
}

// IsHealthy возвращает true, если Circuit Breaker в здоровом состоянии
func (c *ClientWithRetryAndCircuitBreaker) IsHealthy() bool {
	return c.cb.IsHealthy()
}
