package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"driveflow-docs-go/internal/domain/docs"
	"driveflow-docs-go/internal/domain/rental"
	"driveflow-docs-go/internal/domain/template"
	"driveflow-docs-go/internal/pkg/circuitbreaker"
	"driveflow-docs-go/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type TemplateHandler struct {
	service  docs.Service
	rentals  rental.Service
	validate *validator.Validate
}

func NewTemplateHandler(service docs.Service, rentals rental.Service) *TemplateHandler {
	return &TemplateHandler{
		service:  service,
		rentals:  rentals,
		validate: validator.New(),
	}
}

// CreateTemplateRequest описывает создание шаблона из стандартного набора
type CreateTemplateRequest struct {
	Category string `json:"category" validate:"required"`
	Locale   string `json:"locale"`
	Blank    bool   `json:"blank"`
	Name     string `json:"name"`
}

// SaveTemplateRequest описывает полное сохранение шаблона
type SaveTemplateRequest struct {
	Template template.Template `json:"template" validate:"required"`
	Locale   string            `json:"locale"`
}

// AddElementRequest описывает добавление элемента на холст. Seed задает
// стартовое содержимое: текст для текстовых видов, имя пресета для checklist.
type AddElementRequest struct {
	Kind string `json:"kind" validate:"required"`
	Seed string `json:"seed"`
}

// RenderRequest описывает входные данные рендеринга: либо идентификатор
// бронирования, либо инлайновый контекст данных
type RenderRequest struct {
	ReservationID string                `json:"reservationId"`
	Data          *template.DataContext `json:"data"`
}

// List возвращает сохраненные шаблоны, опционально по категории
func (h *TemplateHandler) List(c *gin.Context) {
	category := c.Query("category")
	if category != "" && !template.IsAllowedCategory(template.Category(category)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown category: %s", category)})
		return
	}

	templates, err := h.service.ListTemplates(c.Request.Context(), category)
	if err != nil {
		logger.Error("Failed to list templates", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list templates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// Get возвращает шаблон по id. Для испорченного блоба возвращается
// стандартный шаблон категории, о чем сообщает флаг fallback.
func (h *TemplateHandler) Get(c *gin.Context) {
	id := c.Param("id")
	stored, err := h.service.GetTemplate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, template.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		if errors.Is(err, template.ErrCorruptTemplate) {
			fallback := fallbackFromID(id)
			logger.Warn("serving default template for corrupt blob", zap.String("id", id))
			c.JSON(http.StatusOK, gin.H{"template": fallback, "locale": template.LocaleFR, "fallback": true})
			return
		}
		logger.Error("Failed to load template", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": stored.Template, "locale": stored.Locale})
}

// Create создает шаблон из стандартного набора категории или пустой холст
func (h *TemplateHandler) Create(c *gin.Context) {
	var req CreateTemplateRequest
	if err := h.bind(c, &req); err != nil {
		return
	}

	category := template.Category(req.Category)
	if !template.IsAllowedCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown category: %s", req.Category)})
		return
	}
	locale := req.Locale
	if locale == "" {
		locale = template.LocaleFR
	}

	var t template.Template
	if req.Blank {
		t = template.Blank(category)
	} else {
		t = template.Default(category, locale)
	}
	if req.Name != "" {
		t.Name = req.Name
	}

	if err := h.service.SaveTemplate(c.Request.Context(), t, locale); err != nil {
		logger.Error("Failed to save template", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save template"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"template": t, "locale": locale})
}

// Update сохраняет присланную версию шаблона целиком
func (h *TemplateHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req SaveTemplateRequest
	if err := h.bind(c, &req); err != nil {
		return
	}
	if req.Template.ID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "template id mismatch"})
		return
	}
	if err := validateTemplate(req.Template); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.SaveTemplate(c.Request.Context(), req.Template, req.Locale); err != nil {
		logger.Error("Failed to save template", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": req.Template})
}

// Delete удаляет шаблон
func (h *TemplateHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteTemplate(c.Request.Context(), id); err != nil {
		if errors.Is(err, template.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		logger.Error("Failed to delete template", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete template"})
		return
	}
	c.Status(http.StatusNoContent)
}

// AddElement добавляет элемент указанного вида и возвращает обновленный шаблон
func (h *TemplateHandler) AddElement(c *gin.Context) {
	id := c.Param("id")

	var req AddElementRequest
	if err := h.bind(c, &req); err != nil {
		return
	}
	kind := template.Kind(req.Kind)
	if !template.IsAllowedKind(kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown element kind: %s", req.Kind)})
		return
	}

	stored, ok := h.loadForEdit(c, id)
	if !ok {
		return
	}

	updated, elementID := template.AddElement(stored.Template, kind, req.Seed)
	if err := h.service.SaveTemplate(c.Request.Context(), updated, stored.Locale); err != nil {
		logger.Error("Failed to save template", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": updated, "elementId": elementID})
}

// UpdateElement применяет частичное изменение к элементу. Неизвестный
// элемент — no-op с текущим состоянием в ответе.
func (h *TemplateHandler) UpdateElement(c *gin.Context) {
	id := c.Param("id")
	elementID := c.Param("elementId")

	var patch template.ElementPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request format: %v", err)})
		return
	}
	if err := validatePatch(patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stored, ok := h.loadForEdit(c, id)
	if !ok {
		return
	}

	updated := template.UpdateElement(stored.Template, elementID, patch)
	if err := h.service.SaveTemplate(c.Request.Context(), updated, stored.Locale); err != nil {
		logger.Error("Failed to save template", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": updated})
}

// RemoveElement убирает элемент с холста. Неизвестный элемент — no-op.
func (h *TemplateHandler) RemoveElement(c *gin.Context) {
	id := c.Param("id")
	elementID := c.Param("elementId")

	stored, ok := h.loadForEdit(c, id)
	if !ok {
		return
	}

	updated := template.RemoveElement(stored.Template, elementID)
	if err := h.service.SaveTemplate(c.Request.Context(), updated, stored.Locale); err != nil {
		logger.Error("Failed to save template", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": updated})
}

// Render возвращает список инструкций отрисовки шаблона
func (h *TemplateHandler) Render(c *gin.Context) {
	id := c.Param("id")

	data, ok := h.resolveData(c)
	if !ok {
		return
	}

	ops, err := h.service.Render(c.Request.Context(), id, data)
	if err != nil {
		h.renderError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ops": ops})
}

// Print возвращает PDF документа
func (h *TemplateHandler) Print(c *gin.Context) {
	id := c.Param("id")
	start := time.Now()

	data, ok := h.resolveData(c)
	if !ok {
		return
	}

	pdf, err := h.service.Print(c.Request.Context(), id, data)
	if err != nil {
		h.renderError(c, id, err)
		return
	}

	c.Header("X-Processing-Time", fmt.Sprintf("%.3f", time.Since(start).Seconds()))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ExportDocx возвращает документ в формате DOCX
func (h *TemplateHandler) ExportDocx(c *gin.Context) {
	id := c.Param("id")

	data, ok := h.resolveData(c)
	if !ok {
		return
	}

	docxData, err := h.service.ExportDocx(c.Request.Context(), id, data)
	if err != nil {
		h.renderError(c, id, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.docx", id))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", docxData)
}

// RendererState возвращает состояние Circuit Breaker внешнего рендерера
func (h *TemplateHandler) RendererState() circuitbreaker.State {
	return h.service.RendererState()
}

// IsRendererHealthy возвращает true, если внешний рендерер доступен
func (h *TemplateHandler) IsRendererHealthy() bool {
	return h.service.IsRendererHealthy()
}

// bind разбирает JSON тело и валидирует его
func (h *TemplateHandler) bind(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		if err.Error() == "EOF" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
			return err
		}
		if strings.Contains(err.Error(), "invalid character") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON format"})
			return err
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request format: %v", err)})
		return err
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("validation error: %v", err)})
		return err
	}
	return nil
}

// resolveData строит контекст данных рендеринга из тела запроса
func (h *TemplateHandler) resolveData(c *gin.Context) (template.DataContext, bool) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request format: %v", err)})
		return template.DataContext{}, false
	}

	if req.ReservationID != "" {
		data, err := h.rentals.BuildDataContext(c.Request.Context(), req.ReservationID)
		if err != nil {
			if errors.Is(err, rental.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("reservation data not found: %v", err)})
				return template.DataContext{}, false
			}
			logger.Error("Failed to build data context", zap.String("reservation_id", req.ReservationID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build data context"})
			return template.DataContext{}, false
		}
		return data, true
	}

	if req.Data == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "either reservationId or data is required"})
		return template.DataContext{}, false
	}
	data := *req.Data
	if data.Now.IsZero() {
		data.Now = time.Now()
	}
	return data, true
}

// renderError отображает ошибки рендеринга и экспорта в HTTP статусы
func (h *TemplateHandler) renderError(c *gin.Context, id string, err error) {
	status := determineErrorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Document operation failed", zap.String("template_id", id), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// determineErrorStatus переводит ошибку домена в HTTP статус
func determineErrorStatus(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	if errors.Is(err, template.ErrTemplateNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// validateTemplate проверяет контракт геометрии и стиля всех элементов
func validateTemplate(t template.Template) error {
	if !template.IsAllowedCategory(t.Category) {
		return fmt.Errorf("unknown category: %s", t.Category)
	}
	for _, el := range t.Elements {
		if !template.IsAllowedKind(el.Kind) {
			return fmt.Errorf("element %s: unknown kind %s", el.ID, el.Kind)
		}
		if err := el.Geometry.Validate(el.Kind); err != nil {
			return fmt.Errorf("element %s: %w", el.ID, err)
		}
		if err := el.Style.Validate(); err != nil {
			return fmt.Errorf("element %s: %w", el.ID, err)
		}
	}
	return nil
}

// validatePatch проверяет контракт тех полей патча, которые заданы
func validatePatch(patch template.ElementPatch) error {
	if patch.X != nil && *patch.X < 0 {
		return fmt.Errorf("x must be non-negative, got %v", *patch.X)
	}
	if patch.Y != nil && *patch.Y < 0 {
		return fmt.Errorf("y must be non-negative, got %v", *patch.Y)
	}
	if patch.Width != nil && *patch.Width <= 0 {
		return fmt.Errorf("width must be positive, got %v", *patch.Width)
	}
	if patch.Opacity != nil && (*patch.Opacity < 0 || *patch.Opacity > 1) {
		return fmt.Errorf("opacity must be within [0, 1], got %v", *patch.Opacity)
	}
	if patch.BorderWidth != nil && *patch.BorderWidth < 0 {
		return fmt.Errorf("border width must be non-negative, got %v", *patch.BorderWidth)
	}
	if patch.Padding != nil && *patch.Padding < 0 {
		return fmt.Errorf("padding must be non-negative, got %v", *patch.Padding)
	}
	return nil
}

// loadForEdit загружает шаблон для операции изменения
func (h *TemplateHandler) loadForEdit(c *gin.Context, id string) (*docs.StoredTemplate, bool) {
	stored, err := h.service.GetTemplate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, template.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return nil, false
		}
		logger.Error("Failed to load template", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load template"})
		return nil, false
	}
	return stored, true
}

// fallbackFromID восстанавливает категорию из идентификатора стандартного
// шаблона вида tpl-<category>-<locale>; иначе возвращает пустой контракт
func fallbackFromID(id string) template.Template {
	for _, category := range template.AllCategories() {
		if strings.HasPrefix(id, "tpl-"+string(category)+"-") {
			locale := strings.TrimPrefix(id, "tpl-"+string(category)+"-")
			return template.Default(category, locale)
		}
	}
	return template.Blank(template.CategoryQuote)
}
