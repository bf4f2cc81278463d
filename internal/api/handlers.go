package api

import (
	"encoding/json"
	"net/http"
	"time"

	"driveflow-docs-go/internal/api/handlers"
	"driveflow-docs-go/internal/domain/docs"
	"driveflow-docs-go/internal/domain/rental"
	"driveflow-docs-go/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers содержит все обработчики API
type Handlers struct {
	Templates *handlers.TemplateHandler
	Rentals   *handlers.RentalHandler
}

// NewHandlers создает новые обработчики
func NewHandlers(docsService docs.Service, rentalService rental.Service) *Handlers {
	return &Handlers{
		Templates: handlers.NewTemplateHandler(docsService, rentalService),
		Rentals:   handlers.NewRentalHandler(rentalService),
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	rendererState := h.Templates.RendererState()
	isHealthy := h.Templates.IsRendererHealthy()

	status := "healthy"
	if !isHealthy {
		status = "unhealthy"
	}

	response := gin.H{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"details": gin.H{
			"circuit_breakers": gin.H{
				"renderer": gin.H{
					"status": isHealthy,
					"state":  rendererState.String(),
				},
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if !isHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Failed to encode health response", zap.Error(err))
	}
}
