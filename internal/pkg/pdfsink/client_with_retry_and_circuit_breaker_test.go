package pdfsink

import (
	"context"
	"testing"
	"time"

	"driveflow-docs-go/internal/pkg/circuitbreaker"
)

func TestClientWithRetryAndCircuitBreaker_ConvertHTMLToPDF(t *testing.T) {
	// Клиент с недоступным URL для проверки retry и circuit breaker
	client := NewClientWithRetryAndCircuitBreaker("http://127.0.0.1:1")

	if state := client.State(); state != circuitbreaker.StateClosed {
		t.Errorf("Expected initial state to be Closed, got %v", state)
	}

	html := []byte("<html><body>test</body></html>")

	start := time.Now()
	for i := 0; i < 6; i++ {
		_, err := client.ConvertHTMLToPDF(context.Background(), html, A4Portrait)
		if err == nil {
			t.Error("Expected error from unreachable renderer")
		}
	}
	duration := time.Since(start)

	if state := client.State(); state != circuitbreaker.StateOpen {
		t.Errorf("Expected state to be Open after failures, got %v", state)
	}

	// Время выполнения должно включать задержки retry
	expectedMinDuration := 50 * time.Millisecond
	if duration < expectedMinDuration {
		t.Errorf("Expected duration >= %v, got %v", expectedMinDuration, duration)
	}

	// Запросы при открытом Circuit Breaker отклоняются без обращения к рендереру
	_, err := client.ConvertHTMLToPDF(context.Background(), html, A4Portrait)
	if err == nil {
		t.Error("Expected error from open circuit breaker")
	}
}
