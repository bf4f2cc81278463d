package docs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"driveflow-docs-go/internal/domain/template"
	"driveflow-docs-go/internal/pkg/cache"
	"driveflow-docs-go/internal/pkg/circuitbreaker"
	"driveflow-docs-go/internal/pkg/docxexport"
	"driveflow-docs-go/internal/pkg/logger"
	"driveflow-docs-go/internal/pkg/metrics"
	"driveflow-docs-go/internal/pkg/pdfsink"
	"driveflow-docs-go/internal/pkg/storage"
	"driveflow-docs-go/internal/pkg/tracing"

	"go.uber.org/zap"
)

type ServiceImpl struct {
	db       *storage.PostgresDB
	renderer *pdfsink.ClientWithRetryAndCircuitBreaker
	exporter *docxexport.Exporter
	previews *cache.Cache
}

func NewService(db *storage.PostgresDB, rendererURL string) Service {
	return &ServiceImpl{
		db:       db,
		renderer: pdfsink.NewClientWithRetryAndCircuitBreaker(rendererURL),
		exporter: docxexport.NewExporter(),
		previews: cache.NewCache(10 * time.Minute),
	}
}

func (s *ServiceImpl) ListTemplates(ctx context.Context, category string) ([]StoredTemplate, error) {
	rows, err := s.db.ListTemplates(ctx, category)
	if err != nil {
		metrics.TemplateOpsTotal.WithLabelValues("list", "error").Inc()
		return nil, err
	}

	out := make([]StoredTemplate, 0, len(rows))
	for _, row := range rows {
		t, err := template.Deserialize(row.Body)
		if err != nil {
			// Испорченный блоб не валит весь список
			logger.Warn("skipping corrupt template", zap.String("id", row.ID), zap.Error(err))
			continue
		}
		out = append(out, StoredTemplate{Template: t, Locale: row.Locale})
	}

	metrics.TemplateOpsTotal.WithLabelValues("list", "success").Inc()
	return out, nil
}

func (s *ServiceImpl) GetTemplate(ctx context.Context, id string) (*StoredTemplate, error) {
	row, err := s.db.LoadTemplate(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			metrics.TemplateOpsTotal.WithLabelValues("get", "not_found").Inc()
			return nil, template.ErrTemplateNotFound
		}
		metrics.TemplateOpsTotal.WithLabelValues("get", "error").Inc()
		return nil, err
	}

	t, err := template.Deserialize(row.Body)
	if err != nil {
		metrics.TemplateOpsTotal.WithLabelValues("get", "corrupt").Inc()
		return nil, err
	}

	metrics.TemplateOpsTotal.WithLabelValues("get", "success").Inc()
	return &StoredTemplate{Template: t, Locale: row.Locale}, nil
}

func (s *ServiceImpl) SaveTemplate(ctx context.Context, t template.Template, locale string) error {
	if locale == "" {
		locale = template.LocaleFR
	}

	body, err := template.Serialize(t)
	if err != nil {
		metrics.TemplateOpsTotal.WithLabelValues("save", "error").Inc()
		return err
	}

	err = s.db.SaveTemplate(ctx, storage.TemplateRow{
		ID:       t.ID,
		Name:     t.Name,
		Category: string(t.Category),
		Locale:   locale,
		Body:     body,
	})
	if err != nil {
		metrics.TemplateOpsTotal.WithLabelValues("save", "error").Inc()
		return err
	}

	metrics.TemplateOpsTotal.WithLabelValues("save", "success").Inc()
	return nil
}

func (s *ServiceImpl) DeleteTemplate(ctx context.Context, id string) error {
	if err := s.db.DeleteTemplate(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			metrics.TemplateOpsTotal.WithLabelValues("delete", "not_found").Inc()
			return template.ErrTemplateNotFound
		}
		metrics.TemplateOpsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}
	metrics.TemplateOpsTotal.WithLabelValues("delete", "success").Inc()
	return nil
}

// SeedDefaults записывает стандартные шаблоны всех категорий в обеих локалях.
// Уже сохраненные шаблоны не трогаются.
func (s *ServiceImpl) SeedDefaults(ctx context.Context) error {
	for _, category := range template.AllCategories() {
		for _, locale := range []string{template.LocaleFR, template.LocaleAR} {
			t := template.Default(category, locale)

			if _, err := s.db.LoadTemplate(ctx, t.ID); err == nil {
				continue
			} else if !errors.Is(err, storage.ErrNotFound) {
				return err
			}

			if err := s.SaveTemplate(ctx, t, locale); err != nil {
				return fmt.Errorf("failed to seed %s/%s: %w", category, locale, err)
			}
			logger.Info("seeded default template",
				zap.String("category", string(category)),
				zap.String("locale", locale),
			)
		}
	}
	return nil
}

func (s *ServiceImpl) Render(ctx context.Context, id string, data template.DataContext) ([]template.DrawOp, error) {
	ctx, span := tracing.StartSpan(ctx, "Docs.Render")
	defer span.End()

	stored, err := s.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ops := template.Render(stored.Template, data, stored.Locale)
	category := string(stored.Template.Category)
	metrics.RenderDuration.WithLabelValues(category).Observe(time.Since(start).Seconds())
	metrics.RenderTotal.WithLabelValues(category, "success").Inc()

	return ops, nil
}

func (s *ServiceImpl) Print(ctx context.Context, id string, data template.DataContext) ([]byte, error) {
	ctx, span := tracing.StartSpan(ctx, "Docs.Print")
	defer span.End()

	stored, err := s.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	category := string(stored.Template.Category)

	key, err := previewKey(id, stored.Locale, data)
	if err == nil {
		if pdf, cacheErr := s.previews.Get(ctx, key); cacheErr == nil {
			return pdf, nil
		}
	}

	start := time.Now()
	ops := template.Render(stored.Template, data, stored.Locale)
	html := template.ComposeHTML(stored.Template, ops)

	pdf, err := s.renderer.ConvertHTMLToPDF(ctx, []byte(html), pdfsink.PageSize{
		Width:  stored.Template.CanvasWidth,
		Height: stored.Template.CanvasHeight,
	})
	if err != nil {
		metrics.PDFExportTotal.WithLabelValues("error").Inc()
		logger.Error("PDF export failed",
			zap.String("template_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to convert to PDF: %w", err)
	}

	metrics.PDFExportTotal.WithLabelValues("success").Inc()
	metrics.PDFExportDuration.WithLabelValues(category).Observe(time.Since(start).Seconds())
	metrics.PDFFileSizeBytes.WithLabelValues(category).Observe(float64(len(pdf)))

	if key != "" {
		s.previews.Set(key, pdf)
	}

	logger.Info("PDF export completed",
		zap.String("template_id", id),
		zap.String("category", category),
		zap.Int("size_bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)),
	)
	return pdf, nil
}

func (s *ServiceImpl) ExportDocx(ctx context.Context, id string, data template.DataContext) ([]byte, error) {
	ctx, span := tracing.StartSpan(ctx, "Docs.ExportDocx")
	defer span.End()

	stored, err := s.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	ops := template.Render(stored.Template, data, stored.Locale)
	docxData, err := s.exporter.Export(stored.Template, ops)
	if err != nil {
		metrics.DocxExportTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to export DOCX: %w", err)
	}

	metrics.DocxExportTotal.WithLabelValues("success").Inc()
	return docxData, nil
}

func (s *ServiceImpl) RendererState() circuitbreaker.State {
	return s.renderer.State()
}

func (s *ServiceImpl) IsRendererHealthy() bool {
	return s.renderer.IsHealthy()
}

// previewKey строит ключ кэша из шаблона и контекста данных. Момент
// рендеринга в ключе не участвует: каждый запрос несет свежий Now, и с ним
// в хэше ключ никогда не повторялся бы. Дата меняется куда медленнее TTL
// кэша, поэтому устаревший current_date в попадании невозможен.
func previewKey(id, locale string, data template.DataContext) (string, error) {
	data.Now = time.Time{}
	payload, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(append([]byte(id+"|"+locale+"|"), payload...))
	return hex.EncodeToString(sum[:]), nil
}
